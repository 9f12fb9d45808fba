// Package notify holds notification sinks that do not need a broker.
package notify

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/ports"
)

// LogNotifier writes each notification as a structured log line.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, msg domain.Notification) error {
	n.log.Info().
		Str("kind", string(msg.Kind)).
		Str("tracking_number", msg.TrackingNumber).
		Str("status", msg.Status).
		Str("title", msg.Title).
		Msg(msg.Body)
	return nil
}

// Fanout delivers to every sink and joins their errors.
type Fanout []ports.Notifier

func (f Fanout) Notify(ctx context.Context, msg domain.Notification) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
