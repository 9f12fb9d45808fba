package handler

import (
	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/ports"
)

// --- Service result → HTTP response ---

func toTrackingResponse(v *ports.TrackingView) trackingResponse {
	history := v.Info.History
	if history == nil {
		history = []domain.TrackEvent{}
	}
	return trackingResponse{
		TrackingNumber:  v.Info.TrackingNumber,
		Status:          v.Info.Status,
		CurrentStatus:   v.CurrentStatus,
		LastLocation:    v.Info.LastLocation,
		ETA:             v.Info.ETA,
		Delivered:       v.Delivered,
		Progress:        v.Progress,
		ProgressPercent: v.ProgressPercent,
		History:         history,
		Timeline:        v.Timeline,
		Links: trackingLinks{
			Self:  "/v1/tracking/" + v.Info.TrackingNumber,
			Saved: "/v1/saved-packages/" + v.Info.TrackingNumber,
		},
	}
}

func toSavedPackageResponse(it ports.SavedPackageItem) savedPackageResponse {
	return savedPackageResponse{
		ID:             it.ID,
		Name:           it.Name,
		TrackingNumber: it.TrackingNumber,
		Status:         it.Status,
		Label:          it.Label,
		ETA:            it.ETA,
		Links: savedPackageLinks{
			Self:     "/v1/saved-packages/" + it.TrackingNumber,
			Tracking: "/v1/tracking/" + it.TrackingNumber,
		},
	}
}

func toSavedPackageList(items []ports.SavedPackageItem) savedPackageListResponse {
	out := make([]savedPackageResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toSavedPackageResponse(it))
	}
	return savedPackageListResponse{Count: len(out), Items: out}
}
