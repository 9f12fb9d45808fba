package tracking

import "github.com/packagetracker/tracker/internal/core/domain"

// Baseline is the last status persisted for a tracking number. Known is
// false when nothing has been saved for it yet.
type Baseline struct {
	Status string
	Known  bool
}

// Decision is the outcome of comparing a freshly fetched status with its baseline.
type Decision struct {
	// StatusChanged means the baseline must be updated to the new status.
	StatusChanged bool
	Notifications []domain.Notification
}

// Decide compares newStatus against the baseline. A status change is only
// detected against a known baseline; the terminal status raises a delivered
// notification on every evaluation, alongside any change notification.
func Decide(trackingNumber string, baseline Baseline, newStatus string) Decision {
	var d Decision
	if baseline.Known && baseline.Status != newStatus {
		d.StatusChanged = true
		d.Notifications = append(d.Notifications, domain.StatusChangedNotification(trackingNumber, newStatus))
	}
	if newStatus == domain.StatusArrivedAtHub {
		d.Notifications = append(d.Notifications, domain.DeliveredNotification(trackingNumber))
	}
	return d
}
