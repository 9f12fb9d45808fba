package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/ports"
	"github.com/packagetracker/tracker/internal/core/tracking"
	"github.com/packagetracker/tracker/internal/pkg/metrics"
)

type TrackingService struct {
	source  ports.TrackingSource
	syncer  ports.StatusSyncer
	today   Today
	fetches singleflight.Group
	log     zerolog.Logger
}

func NewTrackingService(source ports.TrackingSource, syncer ports.StatusSyncer, today Today, log zerolog.Logger) *TrackingService {
	if today == nil {
		today = SystemToday(time.UTC)
	}
	return &TrackingService{source: source, syncer: syncer, today: today, log: log}
}

// Track fetches trackingNumber, runs the notification engine against the
// saved baseline and returns the derived view. A failed fetch returns
// before any status comparison. A failed sync is logged; the view is still
// returned.
func (s *TrackingService) Track(ctx context.Context, trackingNumber string) (*ports.TrackingView, error) {
	info, err := s.fetch(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	if _, err := s.syncer.Sync(ctx, trackingNumber, info.Status); err != nil {
		s.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("status sync failed")
	}

	today := s.today()
	progress := tracking.Progress(info.History, today)
	return &ports.TrackingView{
		Info:            *info,
		CurrentStatus:   tracking.CurrentStatus(info.History, today),
		Progress:        progress,
		ProgressPercent: tracking.ProgressPercent(progress),
		Delivered:       tracking.IsDeliveredByETA(info.ETA, today),
		Timeline:        tracking.Timeline(info.History, today),
	}, nil
}

// Refresh fetches trackingNumber and runs the notification engine.
func (s *TrackingService) Refresh(ctx context.Context, trackingNumber string) error {
	info, err := s.fetch(ctx, trackingNumber)
	if err != nil {
		return err
	}
	if _, err := s.syncer.Sync(ctx, trackingNumber, info.Status); err != nil {
		return fmt.Errorf("refresh %s: %w", trackingNumber, err)
	}
	return nil
}

// fetch collapses concurrent fetches of the same tracking number into one
// remote read. The shared read is detached from the first caller's
// cancellation so other waiters are not failed by it.
func (s *TrackingService) fetch(ctx context.Context, trackingNumber string) (*domain.TrackingInfo, error) {
	start := time.Now()
	v, err, _ := s.fetches.Do(trackingNumber, func() (any, error) {
		return s.source.Get(context.WithoutCancel(ctx), trackingNumber)
	})
	metrics.TrackingFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, domain.ErrTrackingNotFound) {
			metrics.TrackingFetchTotal.WithLabelValues("not_found").Inc()
			return nil, err
		}
		metrics.TrackingFetchTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("tracking fetch failed")
		return nil, fmt.Errorf("fetch tracking %s: %w", trackingNumber, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	metrics.TrackingFetchTotal.WithLabelValues("ok").Inc()

	info := *v.(*domain.TrackingInfo)
	if info.TrackingNumber == "" {
		info.TrackingNumber = trackingNumber
	}
	return &info, nil
}
