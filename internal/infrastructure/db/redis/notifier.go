package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/packagetracker/tracker/internal/core/domain"
)

const (
	DefaultStream    = "tracker:notifications"
	defaultStreamLen = 10000
)

// StreamNotifier appends notifications to a Redis stream for downstream
// push delivery.
type StreamNotifier struct {
	client *redis.Client
	stream string
}

func NewStreamNotifier(client *redis.Client, stream string) *StreamNotifier {
	if stream == "" {
		stream = DefaultStream
	}
	return &StreamNotifier{client: client, stream: stream}
}

func (n *StreamNotifier) Notify(ctx context.Context, msg domain.Notification) error {
	err := n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		MaxLen: defaultStreamLen,
		Approx: true,
		Values: map[string]any{
			"id":              uuid.NewString(),
			"kind":            string(msg.Kind),
			"tracking_number": msg.TrackingNumber,
			"status":          msg.Status,
			"title":           msg.Title,
			"body":            msg.Body,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
