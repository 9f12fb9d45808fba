package service

import (
	"context"
	"sync"

	"github.com/packagetracker/tracker/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub saved package repository
// ---------------------------------------------------------------------------

type stubSavedRepo struct {
	mu        sync.Mutex
	rows      []domain.SavedPackage
	nextID    int64
	getErr    error // if set, GetByTrackingNumber returns this error
	updateErr error // if set, UpdateStatus returns this error
	updates   []string
}

func newStubSavedRepo(rows ...domain.SavedPackage) *stubSavedRepo {
	r := &stubSavedRepo{}
	for _, p := range rows {
		r.nextID++
		p.ID = r.nextID
		r.rows = append(r.rows, p)
	}
	return r
}

func (r *stubSavedRepo) Insert(_ context.Context, p domain.SavedPackage) (domain.SavedPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].TrackingNumber == p.TrackingNumber {
			r.rows[i].Name = p.Name
			return r.rows[i], nil
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.rows = append(r.rows, p)
	return p, nil
}

func (r *stubSavedRepo) Delete(_ context.Context, p domain.SavedPackage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == p.ID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubSavedRepo) GetAll(_ context.Context) ([]domain.SavedPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.SavedPackage(nil), r.rows...), nil
}

func (r *stubSavedRepo) Watch(ctx context.Context) (<-chan []domain.SavedPackage, error) {
	all, _ := r.GetAll(ctx)
	ch := make(chan []domain.SavedPackage, 1)
	ch <- all
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

func (r *stubSavedRepo) GetByStatus(_ context.Context, status string) ([]domain.SavedPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SavedPackage
	for _, p := range r.rows {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubSavedRepo) GetByTrackingNumber(_ context.Context, tn string) (*domain.SavedPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, p := range r.rows {
		if p.TrackingNumber == tn {
			clone := p
			return &clone, nil
		}
	}
	return nil, domain.ErrSavedPackageNotFound
}

func (r *stubSavedRepo) UpdateStatus(_ context.Context, tn, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, tn+":"+status)
	for i := range r.rows {
		if r.rows[i].TrackingNumber == tn {
			r.rows[i].Status = status
		}
	}
	return nil
}

func (r *stubSavedRepo) UpdateName(_ context.Context, tn, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].TrackingNumber == tn {
			r.rows[i].Name = name
		}
	}
	return nil
}

func (r *stubSavedRepo) status(tn string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.TrackingNumber == tn {
			return p.Status
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// Stub tracking source and notifier
// ---------------------------------------------------------------------------

type stubSource struct {
	mu    sync.Mutex
	docs  map[string]*domain.TrackingInfo
	err   error
	calls int
}

func newStubSource(docs ...*domain.TrackingInfo) *stubSource {
	s := &stubSource{docs: make(map[string]*domain.TrackingInfo)}
	for _, d := range docs {
		s.docs[d.TrackingNumber] = d
	}
	return s
}

func (s *stubSource) Get(_ context.Context, tn string) (*domain.TrackingInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	d, ok := s.docs[tn]
	if !ok {
		return nil, domain.ErrTrackingNotFound
	}
	clone := *d
	return &clone, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) kinds() []domain.NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.NotificationKind, 0, len(n.sent))
	for _, m := range n.sent {
		out = append(out, m.Kind)
	}
	return out
}
