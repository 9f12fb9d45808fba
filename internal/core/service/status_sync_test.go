package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/packagetracker/tracker/internal/core/domain"
)

func newSync(repo *stubSavedRepo, n *recordingNotifier) *StatusSync {
	return NewStatusSync(repo, n, NewStripedLocker(4), zerolog.Nop())
}

func saved(tn, status string) domain.SavedPackage {
	return domain.SavedPackage{Name: "parcel " + tn, TrackingNumber: tn, Status: status, ETA: "2024-06-03"}
}

func TestStatusSync_StatusChanged(t *testing.T) {
	repo := newStubSavedRepo(saved("TN1", "Shipped"))
	n := &recordingNotifier{}

	res, err := newSync(repo, n).Sync(context.Background(), "TN1", "In Transit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.StatusChanged {
		t.Error("expected status change")
	}
	if got := n.kinds(); len(got) != 1 || got[0] != domain.NotificationStatusChanged {
		t.Fatalf("expected exactly one status_changed notification, got %v", got)
	}
	if n.sent[0].Body != "Your package TN1 is now In Transit" {
		t.Errorf("unexpected body: %q", n.sent[0].Body)
	}
	if repo.status("TN1") != "In Transit" {
		t.Errorf("expected persisted status In Transit, got %q", repo.status("TN1"))
	}
}

func TestStatusSync_ArrivedFiresBoth(t *testing.T) {
	repo := newStubSavedRepo(saved("TN1", "In Transit"))
	n := &recordingNotifier{}

	if _, err := newSync(repo, n).Sync(context.Background(), "TN1", "Arrived at Hub"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := n.kinds()
	if len(got) != 2 || got[0] != domain.NotificationStatusChanged || got[1] != domain.NotificationDelivered {
		t.Fatalf("expected status_changed then delivered, got %v", got)
	}
	if repo.status("TN1") != "Arrived at Hub" {
		t.Errorf("expected persisted terminal status, got %q", repo.status("TN1"))
	}
}

func TestStatusSync_UnchangedIsSilent(t *testing.T) {
	repo := newStubSavedRepo(saved("TN1", "In Transit"))
	n := &recordingNotifier{}

	res, err := newSync(repo, n).Sync(context.Background(), "TN1", "In Transit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.StatusChanged || len(n.sent) != 0 || len(repo.updates) != 0 {
		t.Fatalf("expected no change, got result=%+v notifications=%v updates=%v", res, n.sent, repo.updates)
	}
}

func TestStatusSync_TerminalRepeatsDelivered(t *testing.T) {
	repo := newStubSavedRepo(saved("TN1", "Arrived at Hub"))
	n := &recordingNotifier{}
	s := newSync(repo, n)

	for i := 0; i < 3; i++ {
		if _, err := s.Sync(context.Background(), "TN1", "Arrived at Hub"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(n.sent) != 3 {
		t.Fatalf("expected a delivered notification per fetch, got %d", len(n.sent))
	}
	if len(repo.updates) != 0 {
		t.Errorf("expected no status writes, got %v", repo.updates)
	}
}

func TestStatusSync_NoBaseline(t *testing.T) {
	repo := newStubSavedRepo()
	n := &recordingNotifier{}

	res, err := newSync(repo, n).Sync(context.Background(), "TN9", "In Transit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Baseline.Known || res.StatusChanged {
		t.Errorf("expected unknown baseline without change, got %+v", res)
	}
	if len(n.sent) != 0 || len(repo.updates) != 0 {
		t.Errorf("expected nothing to happen, got notifications=%v updates=%v", n.sent, repo.updates)
	}
}

func TestStatusSync_BaselineLoadError(t *testing.T) {
	repo := newStubSavedRepo(saved("TN1", "Shipped"))
	repo.getErr = errors.New("disk unavailable")
	n := &recordingNotifier{}

	if _, err := newSync(repo, n).Sync(context.Background(), "TN1", "Arrived at Hub"); err == nil {
		t.Fatal("expected error when baseline cannot be read")
	}
	if len(n.sent) != 0 {
		t.Errorf("expected no notifications on storage failure, got %v", n.sent)
	}
}

func TestStatusSync_UpdateError(t *testing.T) {
	repo := newStubSavedRepo(saved("TN1", "Shipped"))
	repo.updateErr = errors.New("read-only database")
	n := &recordingNotifier{}

	if _, err := newSync(repo, n).Sync(context.Background(), "TN1", "In Transit"); err == nil {
		t.Fatal("expected error when status cannot be written")
	}
	if len(n.sent) != 0 {
		t.Errorf("expected no notifications when persistence fails, got %v", n.sent)
	}
}

func TestStatusSync_NotifierErrorIsNotFatal(t *testing.T) {
	repo := newStubSavedRepo(saved("TN1", "Shipped"))
	n := &recordingNotifier{err: errors.New("sink down")}

	res, err := newSync(repo, n).Sync(context.Background(), "TN1", "In Transit")
	if err != nil {
		t.Fatalf("expected notifier failure to be swallowed, got %v", err)
	}
	if !res.StatusChanged || repo.status("TN1") != "In Transit" {
		t.Errorf("expected status persisted despite notifier failure")
	}
}

func TestStatusSync_ConcurrentFetchesNotifyOnce(t *testing.T) {
	repo := newStubSavedRepo(saved("TN1", "Shipped"))
	n := &recordingNotifier{}
	s := newSync(repo, n)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Sync(context.Background(), "TN1", "In Transit"); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(n.sent) != 1 {
		t.Fatalf("expected exactly one notification across concurrent fetches, got %d", len(n.sent))
	}
	if len(repo.updates) != 1 {
		t.Fatalf("expected exactly one status write, got %v", repo.updates)
	}
}

func TestStatusSync_LockCancelled(t *testing.T) {
	locker := NewStripedLocker(1)
	unlock, err := locker.Lock(context.Background(), "TN1")
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStatusSync(newStubSavedRepo(saved("TN1", "Shipped")), &recordingNotifier{}, locker, zerolog.Nop())
	if _, err := s.Sync(ctx, "TN1", "In Transit"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
