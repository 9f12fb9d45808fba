package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/ports"
	"github.com/packagetracker/tracker/internal/core/tracking"
)

type stubTrackingService struct {
	trackFn func(ctx context.Context, tn string) (*ports.TrackingView, error)
}

func (s *stubTrackingService) Track(ctx context.Context, tn string) (*ports.TrackingView, error) {
	return s.trackFn(ctx, tn)
}

func (s *stubTrackingService) Refresh(context.Context, string) error { return nil }

func TestTrackingHandler_Get(t *testing.T) {
	e := newEcho()
	stub := &stubTrackingService{
		trackFn: func(ctx context.Context, tn string) (*ports.TrackingView, error) {
			return &ports.TrackingView{
				Info:            domain.TrackingInfo{TrackingNumber: tn, Status: "In Transit", ETA: "2024-06-03"},
				CurrentStatus:   "In Transit",
				Progress:        0.5,
				ProgressPercent: 50,
				Timeline: []tracking.TimelineEntry{
					{Date: "2024-06-01", Status: "In Transit", DisplayStatus: "In Transit (Today)", Phase: tracking.PhaseToday, Marker: tracking.MarkerClock},
				},
			}, nil
		},
	}
	h := NewTrackingHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("tracking_number")
	c.SetParamValues("TN1")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["progress_percent"] != float64(50) || resp["current_status"] != "In Transit" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if history, ok := resp["history"].([]any); !ok || len(history) != 0 {
		t.Fatalf("expected empty history array, got %v", resp["history"])
	}
	timeline := resp["timeline"].([]any)
	if entry := timeline[0].(map[string]any); entry["marker"] != "clock" || entry["display_status"] != "In Transit (Today)" {
		t.Fatalf("unexpected timeline entry: %+v", entry)
	}
}

func TestTrackingHandler_Get_NotFound(t *testing.T) {
	e := newEcho()
	h := NewTrackingHandler(&stubTrackingService{
		trackFn: func(ctx context.Context, tn string) (*ports.TrackingView, error) {
			return nil, domain.ErrTrackingNotFound
		},
	})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("tracking_number")
	c.SetParamValues("NOPE")

	if err := h.Get(c); !errors.Is(err, domain.ErrTrackingNotFound) {
		t.Fatalf("expected ErrTrackingNotFound, got %v", err)
	}
}

func TestTrackingHandler_Get_Blank(t *testing.T) {
	e := newEcho()
	h := NewTrackingHandler(&stubTrackingService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("tracking_number")
	c.SetParamValues("  ")

	if got := httpCode(t, h.Get(c)); got != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
}
