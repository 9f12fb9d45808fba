package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/ports"
	"github.com/packagetracker/tracker/internal/core/tracking"
	"github.com/packagetracker/tracker/internal/pkg/metrics"
)

// StatusSync is the notification engine: it diffs a fetched status against
// the saved baseline, records the new status and emits notifications. Each
// evaluation holds the tracking number's lock from read to write.
type StatusSync struct {
	repo     ports.SavedPackageRepository
	notifier ports.Notifier
	locker   ports.KeyLocker
	log      zerolog.Logger
}

// NewStatusSync returns a StatusSync. A nil locker falls back to a StripedLocker.
func NewStatusSync(
	repo ports.SavedPackageRepository,
	notifier ports.Notifier,
	locker ports.KeyLocker,
	log zerolog.Logger,
) *StatusSync {
	if locker == nil {
		locker = NewStripedLocker(0)
	}
	return &StatusSync{repo: repo, notifier: notifier, locker: locker, log: log}
}

// Sync evaluates newStatus for trackingNumber. Storage failures abort the
// evaluation before any notification is emitted; notifier failures are
// logged and do not fail the call.
func (s *StatusSync) Sync(ctx context.Context, trackingNumber, newStatus string) (*ports.SyncResult, error) {
	unlock, err := s.locker.Lock(ctx, trackingNumber)
	if err != nil {
		metrics.StatusSyncTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("status sync: lock %s: %w", trackingNumber, err)
	}
	defer unlock()

	var baseline tracking.Baseline
	saved, err := s.repo.GetByTrackingNumber(ctx, trackingNumber)
	switch {
	case err == nil:
		baseline = tracking.Baseline{Status: saved.Status, Known: true}
	case errors.Is(err, domain.ErrSavedPackageNotFound):
	default:
		metrics.StatusSyncTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("status sync: load baseline: %w", err)
	}

	decision := tracking.Decide(trackingNumber, baseline, newStatus)

	if decision.StatusChanged {
		if err := s.repo.UpdateStatus(ctx, trackingNumber, newStatus); err != nil {
			metrics.StatusSyncTotal.WithLabelValues("error").Inc()
			return nil, fmt.Errorf("status sync: update status: %w", err)
		}
		s.log.Info().
			Str("tracking_number", trackingNumber).
			Str("from", baseline.Status).
			Str("to", newStatus).
			Msg("saved package status changed")
	}

	for _, n := range decision.Notifications {
		if err := s.notifier.Notify(ctx, n); err != nil {
			metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "failed").Inc()
			s.log.Warn().Err(err).
				Str("tracking_number", trackingNumber).
				Str("kind", string(n.Kind)).
				Msg("notification not delivered")
			continue
		}
		metrics.NotificationsTotal.WithLabelValues(string(n.Kind), "sent").Inc()
	}

	metrics.StatusSyncTotal.WithLabelValues(syncOutcome(baseline, decision)).Inc()

	return &ports.SyncResult{
		Baseline:      baseline,
		StatusChanged: decision.StatusChanged,
		Notifications: decision.Notifications,
	}, nil
}

func syncOutcome(b tracking.Baseline, d tracking.Decision) string {
	switch {
	case !b.Known:
		return "no_baseline"
	case d.StatusChanged:
		return "changed"
	default:
		return "unchanged"
	}
}
