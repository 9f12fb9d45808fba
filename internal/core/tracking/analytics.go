package tracking

import (
	"strings"

	"github.com/packagetracker/tracker/internal/core/domain"
)

// Summary aggregates saved packages by delivery state.
type Summary struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	InTransit int `json:"in_transit"`
	Pending   int `json:"pending"`
}

// Analytics classifies saved packages. When a package's eta cannot be
// parsed its classification falls back to a plain status match.
func Analytics(pkgs []domain.SavedPackage, today domain.Date) Summary {
	s := Summary{Total: len(pkgs)}
	for _, p := range pkgs {
		eta, ok := domain.ParseAPIDate(p.ETA)
		if !ok {
			switch {
			case p.Status == domain.StatusArrivedAtHub:
				s.Delivered++
			case p.Status == domain.StatusInTransit:
				s.InTransit++
			case isPending(p.Status):
				s.Pending++
			}
			continue
		}
		if !eta.After(today) {
			s.Delivered++
			continue
		}
		switch {
		case p.Status == domain.StatusInTransit:
			s.InTransit++
		case isPending(p.Status):
			s.Pending++
		}
	}
	return s
}

func isPending(status string) bool {
	return status == domain.StatusOrderCreated || status == domain.StatusShipped
}

// Display labels for saved packages.
const (
	LabelDelivered      = "Delivered"
	LabelDeliveringSoon = "Delivering Soon"
)

// SavedLabel is the status shown for a saved package: delivered and
// delivering-soon override the stored status.
func SavedLabel(p domain.SavedPackage, today domain.Date) string {
	switch {
	case IsDeliveredByETA(p.ETA, today):
		return LabelDelivered
	case IsDeliveringSoon(p.ETA, today):
		return LabelDeliveringSoon
	default:
		return p.Status
	}
}

// Filter selects saved packages by delivery state.
type Filter string

const (
	FilterAll            Filter = "all"
	FilterShipped        Filter = "shipped"
	FilterInTransit      Filter = "in_transit"
	FilterDeliveringSoon Filter = "delivering_soon"
	FilterDelivered      Filter = "delivered"
)

// Matches reports whether p passes f. Unknown filters match everything.
func (f Filter) Matches(p domain.SavedPackage, today domain.Date) bool {
	delivered := IsDeliveredByETA(p.ETA, today)
	switch f {
	case FilterShipped:
		return p.Status == domain.StatusShipped && !delivered
	case FilterInTransit:
		return p.Status == domain.StatusInTransit && !delivered
	case FilterDeliveringSoon:
		return IsDeliveringSoon(p.ETA, today) && !delivered
	case FilterDelivered:
		return delivered
	default:
		return true
	}
}

// Search keeps packages whose name or tracking number contains query,
// ignoring case, and which pass f.
func Search(pkgs []domain.SavedPackage, query string, f Filter, today domain.Date) []domain.SavedPackage {
	q := strings.ToLower(query)
	out := make([]domain.SavedPackage, 0, len(pkgs))
	for _, p := range pkgs {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.TrackingNumber), q) {
			continue
		}
		if f.Matches(p, today) {
			out = append(out, p)
		}
	}
	return out
}

// DueSoon returns the packages expected today or tomorrow.
func DueSoon(pkgs []domain.SavedPackage, today domain.Date) []domain.SavedPackage {
	out := make([]domain.SavedPackage, 0)
	for _, p := range pkgs {
		if IsDeliveringSoon(p.ETA, today) {
			out = append(out, p)
		}
	}
	return out
}
