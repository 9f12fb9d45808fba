package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/packagetracker/tracker/internal/core/ports"
	"github.com/packagetracker/tracker/internal/core/tracking"
)

const streamHeartbeat = 15 * time.Second

// RefreshQueue is the interface the handler uses to schedule background refreshes.
type RefreshQueue interface {
	EnqueueBatch(ctx context.Context, trackingNumbers []string) (int, error)
}

// SavedPackageHandler handles the saved package list.
type SavedPackageHandler struct {
	service ports.SavedPackageService
	queue   RefreshQueue
}

func NewSavedPackageHandler(service ports.SavedPackageService, queue RefreshQueue) *SavedPackageHandler {
	return &SavedPackageHandler{service: service, queue: queue}
}

// List handles GET /v1/saved-packages.
//
// @Summary      List saved packages
// @Tags         saved-packages
// @Produce      json
// @Security     BearerAuth
// @Param        q       query     string  false  "Case-insensitive match on name or tracking number"
// @Param        filter  query     string  false  "all, shipped, in_transit, delivering_soon or delivered"
// @Success      200     {object}  savedPackageListResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/saved-packages [get]
func (h *SavedPackageHandler) List(c echo.Context) error {
	var req listPackagesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	items, err := h.service.List(c.Request().Context(), ports.ListSavedInput{
		Query:  req.Query,
		Filter: tracking.Filter(req.Filter),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSavedPackageList(items))
}

// Create handles POST /v1/saved-packages. Saving an existing tracking
// number replaces its name and refreshes its status.
//
// @Summary      Save a package
// @Tags         saved-packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      savePackageRequest  true  "Display name and tracking number"
// @Success      201   {object}  savedPackageResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/saved-packages [post]
func (h *SavedPackageHandler) Create(c echo.Context) error {
	var req savePackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.Save(c.Request().Context(), req.Name, req.TrackingNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSavedPackageResponse(*item))
}

// Get handles GET /v1/saved-packages/:tracking_number.
//
// @Summary      Get a saved package
// @Tags         saved-packages
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_number  path      string  true  "Tracking number"
// @Success      200              {object}  savedPackageResponse
// @Failure      404              {object}  errorResponse
// @Router       /v1/saved-packages/{tracking_number} [get]
func (h *SavedPackageHandler) Get(c echo.Context) error {
	item, err := h.service.Get(c.Request().Context(), c.Param("tracking_number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSavedPackageResponse(*item))
}

// Rename handles PATCH /v1/saved-packages/:tracking_number.
//
// @Summary      Rename a saved package
// @Tags         saved-packages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tracking_number  path      string                true  "Tracking number"
// @Param        body             body      renamePackageRequest  true  "New display name"
// @Success      200              {object}  savedPackageResponse
// @Failure      404              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/saved-packages/{tracking_number} [patch]
func (h *SavedPackageHandler) Rename(c echo.Context) error {
	var req renamePackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	item, err := h.service.Rename(c.Request().Context(), c.Param("tracking_number"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSavedPackageResponse(*item))
}

// Delete handles DELETE /v1/saved-packages/:tracking_number.
//
// @Summary      Remove a saved package
// @Tags         saved-packages
// @Security     BearerAuth
// @Param        tracking_number  path  string  true  "Tracking number"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/saved-packages/{tracking_number} [delete]
func (h *SavedPackageHandler) Delete(c echo.Context) error {
	if err := h.service.Remove(c.Request().Context(), c.Param("tracking_number")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Analytics handles GET /v1/saved-packages/analytics.
//
// @Summary      Saved package counts by delivery state
// @Tags         saved-packages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  tracking.Summary
// @Router       /v1/saved-packages/analytics [get]
func (h *SavedPackageHandler) Analytics(c echo.Context) error {
	summary, err := h.service.Analytics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// DueSoon handles GET /v1/saved-packages/due-soon.
//
// @Summary      Packages expected today or tomorrow
// @Tags         saved-packages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  savedPackageListResponse
// @Router       /v1/saved-packages/due-soon [get]
func (h *SavedPackageHandler) DueSoon(c echo.Context) error {
	items, err := h.service.DueSoon(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSavedPackageList(items))
}

// Stream handles GET /v1/saved-packages/stream as server-sent events. A
// "packages" event carrying the full list is sent on connect and after
// every change.
//
// @Summary      Live saved package list
// @Tags         saved-packages
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {object}  savedPackageListResponse
// @Router       /v1/saved-packages/stream [get]
func (h *SavedPackageHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	snapshots, err := h.service.Stream(ctx)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case items, ok := <-snapshots:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(toSavedPackageList(items))
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "event: packages\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

// Refresh handles POST /v1/saved-packages/refresh. Every saved tracking
// number is queued for a background re-fetch; status changes raise
// notifications as they are found.
//
// @Summary      Refresh all saved packages
// @Tags         saved-packages
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  refreshResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/saved-packages/refresh [post]
func (h *SavedPackageHandler) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	items, err := h.service.List(ctx, ports.ListSavedInput{})
	if err != nil {
		return err
	}

	numbers := make([]string, 0, len(items))
	for _, it := range items {
		numbers = append(numbers, it.TrackingNumber)
	}

	queued, err := h.queue.EnqueueBatch(ctx, numbers)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable,
			fmt.Sprintf("refresh queue full after %d of %d packages", queued, len(numbers)))
	}
	return c.JSON(http.StatusAccepted, refreshResponse{Message: "refresh scheduled", Queued: queued})
}
