package tracking

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/packagetracker/tracker/internal/core/domain"
)

func kinds(d Decision) []domain.NotificationKind {
	out := make([]domain.NotificationKind, 0, len(d.Notifications))
	for _, n := range d.Notifications {
		out = append(out, n.Kind)
	}
	return out
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name        string
		baseline    Baseline
		newStatus   string
		wantChanged bool
		wantKinds   []domain.NotificationKind
	}{
		{
			name:        "status change",
			baseline:    Baseline{Status: "Shipped", Known: true},
			newStatus:   "In Transit",
			wantChanged: true,
			wantKinds:   []domain.NotificationKind{domain.NotificationStatusChanged},
		},
		{
			name:        "change into terminal fires both",
			baseline:    Baseline{Status: "In Transit", Known: true},
			newStatus:   "Arrived at Hub",
			wantChanged: true,
			wantKinds:   []domain.NotificationKind{domain.NotificationStatusChanged, domain.NotificationDelivered},
		},
		{
			name:      "unchanged non terminal is silent",
			baseline:  Baseline{Status: "In Transit", Known: true},
			newStatus: "In Transit",
			wantKinds: []domain.NotificationKind{},
		},
		{
			name:      "unchanged terminal repeats delivered",
			baseline:  Baseline{Status: "Arrived at Hub", Known: true},
			newStatus: "Arrived at Hub",
			wantKinds: []domain.NotificationKind{domain.NotificationDelivered},
		},
		{
			name:      "unknown baseline does not diff",
			baseline:  Baseline{},
			newStatus: "In Transit",
			wantKinds: []domain.NotificationKind{},
		},
		{
			name:      "unknown baseline still reports delivery",
			baseline:  Baseline{},
			newStatus: "Arrived at Hub",
			wantKinds: []domain.NotificationKind{domain.NotificationDelivered},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide("TN1", tc.baseline, tc.newStatus)
			if d.StatusChanged != tc.wantChanged {
				t.Errorf("StatusChanged = %v, want %v", d.StatusChanged, tc.wantChanged)
			}
			if diff := cmp.Diff(tc.wantKinds, kinds(d)); diff != "" {
				t.Errorf("notification kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecide_NotificationText(t *testing.T) {
	d := Decide("PKG42", Baseline{Status: "In Transit", Known: true}, "Arrived at Hub")

	want := []domain.Notification{
		{
			Kind:           domain.NotificationStatusChanged,
			TrackingNumber: "PKG42",
			Status:         "Arrived at Hub",
			Title:          "Package Update",
			Body:           "Your package PKG42 is now Arrived at Hub",
		},
		{
			Kind:           domain.NotificationDelivered,
			TrackingNumber: "PKG42",
			Status:         "Arrived at Hub",
			Title:          "Delivered 🎉",
			Body:           "Your package PKG42 has been delivered",
		},
	}
	if diff := cmp.Diff(want, d.Notifications); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}
