package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChangeAction names the mutation a TaskChangedEvent reports.
type ChangeAction string

// Task mutations.
const (
	ActionCreated ChangeAction = "created"
	ActionUpdated ChangeAction = "updated"
	ActionDeleted ChangeAction = "deleted"
)

// TaskChangedEvent reports a committed task mutation.
type TaskChangedEvent struct {
	ID         uuid.UUID    `json:"id"`
	Action     ChangeAction `json:"action"`
	TaskID     int64        `json:"task_id"`
	ActorID    int64        `json:"actor_id,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewTaskChangedEvent stamps a new event with a fresh ID and the current time.
func NewTaskChangedEvent(action ChangeAction, taskID, actorID int64) *TaskChangedEvent {
	return &TaskChangedEvent{
		ID:         uuid.New(),
		Action:     action,
		TaskID:     taskID,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	}
}

// EventHandler processes emitted events.
type EventHandler interface {
	HandleEvent(ctx context.Context, event *TaskChangedEvent) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *TaskChangedEvent) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TaskChangedEvent) error {
	return f(ctx, event)
}

// EventEmitter publishes events to registered handlers.
type EventEmitter interface {
	EmitEvent(ctx context.Context, event *TaskChangedEvent) error
}
