package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/packagetracker/tracker/internal/core/ports"
)

// TrackingHandler serves the derived tracking view.
type TrackingHandler struct {
	service ports.TrackingService
}

func NewTrackingHandler(service ports.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// Get handles GET /v1/tracking/:tracking_number. Every call re-fetches the
// tracking document and runs the notification engine against the saved copy.
//
// @Summary      Track a package
// @Tags         tracking
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_number  path      string  true  "Tracking number"
// @Success      200              {object}  trackingResponse
// @Failure      401              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /v1/tracking/{tracking_number} [get]
func (h *TrackingHandler) Get(c echo.Context) error {
	trackingNumber := strings.TrimSpace(c.Param("tracking_number"))
	if trackingNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tracking number is required")
	}

	view, err := h.service.Track(c.Request().Context(), trackingNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTrackingResponse(view))
}
