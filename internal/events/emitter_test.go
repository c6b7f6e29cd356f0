package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []*TaskChangedEvent
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *TaskChangedEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	t.Run("no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(ctx, NewTaskChangedEvent(ActionCreated, 1, 7)))
	})

	t.Run("delivers to every handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		h1, h2 := &recordingHandler{}, &recordingHandler{}
		emitter.RegisterHandler(h1)
		emitter.RegisterHandler(h2)

		event := NewTaskChangedEvent(ActionUpdated, 3, 7)
		require.NoError(t, emitter.EmitEvent(ctx, event))

		assert.Equal(t, []*TaskChangedEvent{event}, h1.events)
		assert.Equal(t, []*TaskChangedEvent{event}, h2.events)
	})

	t.Run("failing handler does not block others", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		errA, errB := errors.New("handler a"), errors.New("handler b")
		failingA := &recordingHandler{err: errA}
		ok := &recordingHandler{}
		failingB := &recordingHandler{err: errB}
		emitter.RegisterHandler(failingA)
		emitter.RegisterHandler(ok)
		emitter.RegisterHandler(failingB)

		err := emitter.EmitEvent(ctx, NewTaskChangedEvent(ActionDeleted, 9, 7))

		assert.ErrorIs(t, err, errA)
		assert.ErrorIs(t, err, errB)
		assert.Len(t, ok.events, 1)
	})

	t.Run("handler func adapter", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		var got ChangeAction
		emitter.RegisterHandler(HandlerFunc(func(_ context.Context, e *TaskChangedEvent) error {
			got = e.Action
			return nil
		}))

		require.NoError(t, emitter.EmitEvent(ctx, NewTaskChangedEvent(ActionCreated, 1, 0)))
		assert.Equal(t, ActionCreated, got)
	})
}

func TestNewTaskChangedEvent(t *testing.T) {
	a := NewTaskChangedEvent(ActionCreated, 5, 2)
	b := NewTaskChangedEvent(ActionCreated, 5, 2)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, int64(5), a.TaskID)
	assert.Equal(t, int64(2), a.ActorID)
	assert.False(t, a.OccurredAt.IsZero())
}
