package ports

import "context"

// EventPublisher delivers domain events to interested consumers.
// Publishing is best-effort from the orchestrator's point of view: a publish
// failure never fails the action that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}
