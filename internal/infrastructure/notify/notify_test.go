package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/packagetracker/tracker/internal/core/domain"
)

type failingNotifier struct{ calls int }

func (f *failingNotifier) Notify(context.Context, domain.Notification) error {
	f.calls++
	return errors.New("unreachable")
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	if err := n.Notify(context.Background(), domain.StatusChangedNotification("TN1", "Shipped")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"kind":"status_changed"`) || !strings.Contains(out, "Your package TN1 is now Shipped") {
		t.Errorf("unexpected log line: %s", out)
	}
}

func TestFanout_DeliversToAllAndJoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	bad := &failingNotifier{}
	f := Fanout{bad, NewLogNotifier(zerolog.New(&buf))}

	err := f.Notify(context.Background(), domain.DeliveredNotification("TN1"))
	if err == nil {
		t.Fatal("expected joined error")
	}
	if bad.calls != 1 || buf.Len() == 0 {
		t.Errorf("expected both sinks to be called")
	}
}
