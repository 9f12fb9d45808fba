package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/pkg/metrics"
)

const selectColumns = `SELECT id, name, tracking_number, status, eta FROM saved_packages`

// SavedPackageRepository stores bookmarked packages in SQLite and pushes a
// fresh snapshot of the table to every watcher after each mutation.
type SavedPackageRepository struct {
	db  *sql.DB
	log zerolog.Logger

	// pubMu orders snapshot reads with their delivery so watchers never
	// see an older snapshot after a newer one.
	pubMu   sync.Mutex
	mu      sync.Mutex
	subs    map[int]chan []domain.SavedPackage
	nextSub int
}

func NewSavedPackageRepository(db *sql.DB, log zerolog.Logger) *SavedPackageRepository {
	return &SavedPackageRepository{
		db:   db,
		log:  log,
		subs: make(map[int]chan []domain.SavedPackage),
	}
}

// Insert upserts on tracking number. A resave only updates the name; status
// and eta change through UpdateStatus alone.
func (r *SavedPackageRepository) Insert(ctx context.Context, p domain.SavedPackage) (domain.SavedPackage, error) {
	const q = `
INSERT INTO saved_packages (name, tracking_number, status, eta)
VALUES (?, ?, ?, ?)
ON CONFLICT(tracking_number) DO UPDATE SET
	name = excluded.name
RETURNING id, name, tracking_number, status, eta`

	var out domain.SavedPackage
	err := r.db.QueryRowContext(ctx, q, p.Name, p.TrackingNumber, p.Status, p.ETA).
		Scan(&out.ID, &out.Name, &out.TrackingNumber, &out.Status, &out.ETA)
	if err != nil {
		return domain.SavedPackage{}, fmt.Errorf("insert saved package: %w", err)
	}
	r.changed(ctx, "insert")
	return out, nil
}

// Delete removes the row with p's id. Deleting a missing row is a no-op.
func (r *SavedPackageRepository) Delete(ctx context.Context, p domain.SavedPackage) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_packages WHERE id = ?`, p.ID)
	if err != nil {
		return fmt.Errorf("delete saved package: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		r.changed(ctx, "delete")
	}
	return nil
}

func (r *SavedPackageRepository) GetAll(ctx context.Context) ([]domain.SavedPackage, error) {
	return r.query(ctx, selectColumns+` ORDER BY id`)
}

func (r *SavedPackageRepository) GetByStatus(ctx context.Context, status string) ([]domain.SavedPackage, error) {
	return r.query(ctx, selectColumns+` WHERE status = ? ORDER BY id`, status)
}

func (r *SavedPackageRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.SavedPackage, error) {
	var p domain.SavedPackage
	err := r.db.QueryRowContext(ctx, selectColumns+` WHERE tracking_number = ?`, trackingNumber).
		Scan(&p.ID, &p.Name, &p.TrackingNumber, &p.Status, &p.ETA)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSavedPackageNotFound
		}
		return nil, fmt.Errorf("get saved package: %w", err)
	}
	return &p, nil
}

func (r *SavedPackageRepository) UpdateStatus(ctx context.Context, trackingNumber, status string) error {
	return r.update(ctx, "update_status", `UPDATE saved_packages SET status = ? WHERE tracking_number = ?`, status, trackingNumber)
}

func (r *SavedPackageRepository) UpdateName(ctx context.Context, trackingNumber, name string) error {
	return r.update(ctx, "update_name", `UPDATE saved_packages SET name = ? WHERE tracking_number = ?`, name, trackingNumber)
}

// Watch registers a subscriber. The first value is the current table; later
// values replace any snapshot the subscriber has not read yet.
func (r *SavedPackageRepository) Watch(ctx context.Context) (<-chan []domain.SavedPackage, error) {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	snapshot, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ch := make(chan []domain.SavedPackage, 1)
	ch <- snapshot

	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = ch
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		delete(r.subs, id)
		close(ch)
		r.mu.Unlock()
	}()
	return ch, nil
}

func (r *SavedPackageRepository) update(ctx context.Context, op, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return domain.ErrSavedPackageNotFound
	}
	r.changed(ctx, op)
	return nil
}

func (r *SavedPackageRepository) query(ctx context.Context, q string, args ...any) ([]domain.SavedPackage, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query saved packages: %w", err)
	}
	defer rows.Close()

	out := make([]domain.SavedPackage, 0)
	for rows.Next() {
		var p domain.SavedPackage
		if err := rows.Scan(&p.ID, &p.Name, &p.TrackingNumber, &p.Status, &p.ETA); err != nil {
			return nil, fmt.Errorf("scan saved package: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *SavedPackageRepository) changed(ctx context.Context, op string) {
	metrics.SavedPackagesChangesTotal.WithLabelValues(op).Inc()
	r.publish(context.WithoutCancel(ctx))
}

func (r *SavedPackageRepository) publish(ctx context.Context) {
	r.pubMu.Lock()
	defer r.pubMu.Unlock()

	r.mu.Lock()
	n := len(r.subs)
	r.mu.Unlock()
	if n == 0 {
		return
	}

	snapshot, err := r.GetAll(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("saved packages snapshot failed")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
