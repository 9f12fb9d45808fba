package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/ports"
	"github.com/packagetracker/tracker/internal/core/tracking"
)

// unknownStatus is stored when the tracking document carries no status.
const unknownStatus = "Unknown"

type SavedPackageService struct {
	repo   ports.SavedPackageRepository
	source ports.TrackingSource
	today  Today
	log    zerolog.Logger
}

func NewSavedPackageService(repo ports.SavedPackageRepository, source ports.TrackingSource, today Today, log zerolog.Logger) *SavedPackageService {
	if today == nil {
		today = SystemToday(time.UTC)
	}
	return &SavedPackageService{repo: repo, source: source, today: today, log: log}
}

// Save bookmarks trackingNumber under name, copying its current status and
// eta from the tracking store. Saving an already saved number only renames
// it; a newer remote status is picked up by the next Track or Refresh.
func (s *SavedPackageService) Save(ctx context.Context, name, trackingNumber string) (*ports.SavedPackageItem, error) {
	info, err := s.source.Get(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("save package: %w", err)
	}

	status := info.Status
	if status == "" {
		status = unknownStatus
	}

	saved, err := s.repo.Insert(ctx, domain.SavedPackage{
		Name:           name,
		TrackingNumber: trackingNumber,
		Status:         status,
		ETA:            info.ETA,
	})
	if err != nil {
		s.log.Error().Err(err).Str("tracking_number", trackingNumber).Msg("failed to save package")
		return nil, fmt.Errorf("save package: %w", err)
	}

	s.log.Info().Str("tracking_number", trackingNumber).Int64("id", saved.ID).Msg("package saved")
	item := s.label(saved, s.today())
	return &item, nil
}

func (s *SavedPackageService) Get(ctx context.Context, trackingNumber string) (*ports.SavedPackageItem, error) {
	p, err := s.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	item := s.label(*p, s.today())
	return &item, nil
}

// List applies the search query and filter to every saved package.
func (s *SavedPackageService) List(ctx context.Context, in ports.ListSavedInput) ([]ports.SavedPackageItem, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list saved packages: %w", err)
	}
	today := s.today()
	filter := in.Filter
	if filter == "" {
		filter = tracking.FilterAll
	}
	return s.labelAll(tracking.Search(all, in.Query, filter, today), today), nil
}

func (s *SavedPackageService) Rename(ctx context.Context, trackingNumber, name string) (*ports.SavedPackageItem, error) {
	p, err := s.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateName(ctx, trackingNumber, name); err != nil {
		return nil, fmt.Errorf("rename saved package: %w", err)
	}
	p.Name = name
	item := s.label(*p, s.today())
	return &item, nil
}

func (s *SavedPackageService) Remove(ctx context.Context, trackingNumber string) error {
	p, err := s.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, *p); err != nil {
		return fmt.Errorf("remove saved package: %w", err)
	}
	s.log.Info().Str("tracking_number", trackingNumber).Msg("package removed")
	return nil
}

func (s *SavedPackageService) Analytics(ctx context.Context) (tracking.Summary, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return tracking.Summary{}, fmt.Errorf("saved package analytics: %w", err)
	}
	return tracking.Analytics(all, s.today()), nil
}

// DueSoon lists packages expected today or tomorrow.
func (s *SavedPackageService) DueSoon(ctx context.Context) ([]ports.SavedPackageItem, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("due soon packages: %w", err)
	}
	today := s.today()
	return s.labelAll(tracking.DueSoon(all, today), today), nil
}

// Stream relabels every snapshot from the repository watch. The returned
// channel closes when ctx is cancelled.
func (s *SavedPackageService) Stream(ctx context.Context) (<-chan []ports.SavedPackageItem, error) {
	src, err := s.repo.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("watch saved packages: %w", err)
	}

	out := make(chan []ports.SavedPackageItem)
	go func() {
		defer close(out)
		for snapshot := range src {
			select {
			case out <- s.labelAll(snapshot, s.today()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *SavedPackageService) label(p domain.SavedPackage, today domain.Date) ports.SavedPackageItem {
	return ports.SavedPackageItem{SavedPackage: p, Label: tracking.SavedLabel(p, today)}
}

func (s *SavedPackageService) labelAll(pkgs []domain.SavedPackage, today domain.Date) []ports.SavedPackageItem {
	out := make([]ports.SavedPackageItem, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, s.label(p, today))
	}
	return out
}
