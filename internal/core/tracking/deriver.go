// Package tracking derives display-ready facts from a shipment's event
// history. Every function is pure and takes "today" explicitly.
//
// Dates that fail to parse never cause an error: they are treated as not
// yet reached, and ETA checks fail closed.
package tracking

import (
	"github.com/packagetracker/tracker/internal/core/domain"
)

// TimelineHorizonDays bounds how far into the future a timeline shows events.
const TimelineHorizonDays = 7

// CurrentStatus returns the status of the most recent event dated on or
// before today. When several events share that date the last one in input
// order wins. Without any qualifying event it returns "Order Created".
func CurrentStatus(history []domain.TrackEvent, today domain.Date) string {
	var (
		latest domain.Date
		status string
		found  bool
	)
	for _, ev := range history {
		d, ok := ev.ParsedDate()
		if !ok || d.After(today) {
			continue
		}
		if !found || !d.Before(latest) {
			latest, status, found = d, ev.Status, true
		}
	}
	if !found {
		return domain.StatusOrderCreated
	}
	return status
}

// Progress returns the fraction of events dated on or before today.
// An empty history has no progress data and yields 0.
func Progress(history []domain.TrackEvent, today domain.Date) float64 {
	if len(history) == 0 {
		return 0
	}
	completed := 0
	for _, ev := range history {
		if d, ok := ev.ParsedDate(); ok && !d.After(today) {
			completed++
		}
	}
	return float64(completed) / float64(len(history))
}

// ProgressPercent truncates Progress to a whole percentage.
func ProgressPercent(progress float64) int {
	return int(progress * 100)
}

// DisplayStatus labels an event for timeline rendering relative to today.
func DisplayStatus(ev domain.TrackEvent, today domain.Date) string {
	d, ok := ev.ParsedDate()
	if !ok {
		return ev.Status
	}
	switch {
	case d.Before(today):
		return ev.Status
	case d.Equal(today):
		return ev.Status + " (Today)"
	case ev.Status == domain.StatusArrivedAtHub:
		return "Expected at Hub"
	default:
		return "Expected " + ev.Status
	}
}

// IsDeliveredByETA reports whether eta is on or before today.
// A malformed eta is never delivered.
func IsDeliveredByETA(eta string, today domain.Date) bool {
	d, ok := domain.ParseAPIDate(eta)
	if !ok {
		return false
	}
	return !d.After(today)
}

// IsDeliveringSoon reports whether eta is today or tomorrow.
func IsDeliveringSoon(eta string, today domain.Date) bool {
	d, ok := domain.ParseAPIDate(eta)
	if !ok {
		return false
	}
	return d.Equal(today) || d.Equal(today.AddDays(1))
}
