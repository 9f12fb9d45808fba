package tracking

import "github.com/packagetracker/tracker/internal/core/domain"

// Phase places a timeline entry relative to today.
type Phase string

const (
	PhaseCompleted Phase = "completed"
	PhaseToday     Phase = "today"
	PhaseUpcoming  Phase = "upcoming"
)

// Marker names the icon drawn next to a timeline entry.
type Marker string

const (
	MarkerCheck   Marker = "check"
	MarkerClock   Marker = "clock"
	MarkerPackage Marker = "package"
	MarkerTruck   Marker = "truck"
)

// TimelineEntry is one rendered row of a shipment timeline.
type TimelineEntry struct {
	Date          string `json:"date"`
	Status        string `json:"status"`
	DisplayStatus string `json:"display_status"`
	Location      string `json:"location"`
	Phase         Phase  `json:"phase"`
	Marker        Marker `json:"marker"`
}

// Timeline renders history in input order, dropping events dated more than
// TimelineHorizonDays after today. Events with malformed dates are kept as
// upcoming entries.
func Timeline(history []domain.TrackEvent, today domain.Date) []TimelineEntry {
	horizon := today.AddDays(TimelineHorizonDays)
	entries := make([]TimelineEntry, 0, len(history))
	for _, ev := range history {
		d, ok := ev.ParsedDate()
		if ok && d.After(horizon) {
			continue
		}
		phase := PhaseUpcoming
		if ok {
			phase = phaseOf(d, today)
		}
		entries = append(entries, TimelineEntry{
			Date:          ev.Date,
			Status:        ev.Status,
			DisplayStatus: DisplayStatus(ev, today),
			Location:      ev.Location,
			Phase:         phase,
			Marker:        markerOf(phase, ev.Status),
		})
	}
	return entries
}

func phaseOf(d, today domain.Date) Phase {
	switch {
	case d.Before(today):
		return PhaseCompleted
	case d.Equal(today):
		return PhaseToday
	default:
		return PhaseUpcoming
	}
}

func markerOf(phase Phase, status string) Marker {
	switch {
	case phase == PhaseCompleted:
		return MarkerCheck
	case phase == PhaseToday:
		return MarkerClock
	case status == domain.StatusOrderCreated:
		return MarkerPackage
	default:
		return MarkerTruck
	}
}
