// Package realtime carries change notifications between the parts of the
// service that write progress and the parts that react to it.
package realtime

import (
	"context"
	"time"
)

type EventType string

const (
	EventLessonCompleted  EventType = "lesson_completed"
	EventAttemptSubmitted EventType = "attempt_submitted"
	EventProgressImported EventType = "progress_imported"
)

// Event says that a user's progress inputs changed. Receivers re-fetch and
// recompute; the event carries no derived data.
type Event struct {
	Type    EventType `json:"type"`
	UserID  string    `json:"user_id"`
	Subject string    `json:"subject,omitempty"` // lesson or test id
	At      time.Time `json:"at"`
}

type Handler func(ctx context.Context, e Event)

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Bus delivers published events to every active subscription. Subscribe
// returns once the subscription is live; delivery stops when ctx is done.
type Bus interface {
	Publisher
	Subscribe(ctx context.Context, h Handler) error
	Close() error
}
