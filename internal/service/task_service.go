package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/domain/page"
	"github.com/phrazzld/taskr-api/internal/domain/search"
	"github.com/phrazzld/taskr-api/internal/events"
	"github.com/phrazzld/taskr-api/internal/platform/cache"
	"github.com/phrazzld/taskr-api/internal/platform/logger"
	"github.com/phrazzld/taskr-api/internal/store"
)

// TaskPage is the envelope returned by List and Search.
type TaskPage = page.Page[domain.Task]

// SearchRequest holds the raw search and pagination query parameters.
type SearchRequest struct {
	search.Params
	Page     string
	PageSize string
}

// TaskService provides task CRUD and search. actorID identifies the
// authenticated requester; it scopes cache entries and is recorded on
// change events.
type TaskService interface {
	// List returns one page of all tasks in store order.
	List(ctx context.Context, actorID int64, rawPage, rawPageSize string) (TaskPage, error)

	// Get returns a single task.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Create stores a new task, defaulting omitted fields.
	Create(ctx context.Context, actorID int64, input domain.TaskInput) (*domain.Task, error)

	// Update overwrites the fields present in input.
	Update(ctx context.Context, actorID int64, id int64, input domain.TaskInput) (*domain.Task, error)

	// Delete removes a task.
	Delete(ctx context.Context, actorID int64, id int64) error

	// Search filters, sorts and paginates tasks.
	Search(ctx context.Context, actorID int64, req SearchRequest) (TaskPage, error)
}

// TaskServiceConfig wires a TaskService. DB, Memoizer and Emitter are
// optional: without DB updates run outside a transaction, without
// Memoizer every read hits the store, without Emitter no events are sent.
type TaskServiceConfig struct {
	Tasks           store.TaskStore
	DB              *sql.DB
	Memoizer        *cache.Memoizer
	Emitter         events.EventEmitter
	Engine          *search.Engine
	DefaultPageSize int
	Logger          *slog.Logger
	Now             func() time.Time
}

type taskServiceImpl struct {
	tasks           store.TaskStore
	db              *sql.DB
	memo            *cache.Memoizer
	emitter         events.EventEmitter
	engine          *search.Engine
	defaultPageSize int
	logger          *slog.Logger
	now             func() time.Time
}

// NewTaskService creates a TaskService from cfg.
func NewTaskService(cfg TaskServiceConfig) (TaskService, error) {
	if cfg.Tasks == nil {
		return nil, errors.New("task store cannot be nil")
	}

	svc := &taskServiceImpl{
		tasks:           cfg.Tasks,
		db:              cfg.DB,
		memo:            cfg.Memoizer,
		emitter:         cfg.Emitter,
		engine:          cfg.Engine,
		defaultPageSize: cfg.DefaultPageSize,
		logger:          cfg.Logger,
		now:             cfg.Now,
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.memo == nil {
		svc.memo = cache.NewMemoizer(nil, svc.logger)
	}
	if svc.engine == nil {
		svc.engine = search.NewEngine(0, 0)
	}
	if svc.now == nil {
		svc.now = time.Now
	}

	return svc, nil
}

// log prefers the request-scoped logger so entries carry the trace ID.
func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger).With("component", "task_service")
}

func (s *taskServiceImpl) List(
	ctx context.Context,
	actorID int64,
	rawPage, rawPageSize string,
) (TaskPage, error) {
	req, err := page.ParseRequest(rawPage, rawPageSize, s.defaultPageSize)
	if err != nil {
		return TaskPage{}, err
	}

	key := fmt.Sprintf("list:%d:%d:%d", actorID, req.Page, req.Size)
	var out TaskPage
	err = s.memo.GetOrCompute(ctx, key, &out, func(ctx context.Context) (any, error) {
		tasks, err := s.tasks.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		return page.Paginate(tasks, req)
	})
	if err != nil {
		s.log(ctx).Error("failed to list tasks", "error", err)
		return TaskPage{}, err
	}

	return out, nil
}

func (s *taskServiceImpl) Search(ctx context.Context, actorID int64, sr SearchRequest) (TaskPage, error) {
	req, err := page.ParseRequest(sr.Page, sr.PageSize, s.defaultPageSize)
	if err != nil {
		return TaskPage{}, err
	}

	query, err := search.ParseQuery(sr.Params)
	if err != nil {
		return TaskPage{}, err
	}

	key := fmt.Sprintf("search:%d:%d:%d:%s", actorID, req.Page, req.Size, query.Key())
	var out TaskPage
	err = s.memo.GetOrCompute(ctx, key, &out, func(ctx context.Context) (any, error) {
		tasks, err := s.tasks.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		matched, err := s.engine.Search(tasks, query)
		if err != nil {
			return nil, err
		}
		return page.Paginate(matched, req)
	})
	if err != nil {
		s.log(ctx).Error("task search failed", "error", err, "query", query.Key())
		return TaskPage{}, err
	}

	return out, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, s.mapStoreError(ctx, "get", id, err)
	}
	return task, nil
}

func (s *taskServiceImpl) Create(ctx context.Context, actorID int64, input domain.TaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(input, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.log(ctx).Error("failed to create task", "error", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.log(ctx).Info("task created", "task_id", task.ID, "actor_id", actorID)
	s.publish(ctx, events.ActionCreated, task.ID, actorID)
	return task, nil
}

func (s *taskServiceImpl) Update(
	ctx context.Context,
	actorID int64,
	id int64,
	input domain.TaskInput,
) (*domain.Task, error) {
	var updated *domain.Task

	err := s.inTx(ctx, func(ctx context.Context, tasks store.TaskStore) error {
		task, err := tasks.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := task.Apply(input); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
		if err := tasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidPayload) {
			return nil, err
		}
		return nil, s.mapStoreError(ctx, "update", id, err)
	}

	s.log(ctx).Info("task updated", "task_id", id, "actor_id", actorID)
	s.publish(ctx, events.ActionUpdated, id, actorID)
	return updated, nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, actorID int64, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return s.mapStoreError(ctx, "delete", id, err)
	}

	s.log(ctx).Info("task deleted", "task_id", id, "actor_id", actorID)
	s.publish(ctx, events.ActionDeleted, id, actorID)
	return nil
}

// inTx runs fn against a transaction-bound store when a DB is configured.
func (s *taskServiceImpl) inTx(ctx context.Context, fn func(context.Context, store.TaskStore) error) error {
	if s.db == nil {
		return fn(ctx, s.tasks)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.tasks.WithTx(tx))
	})
}

// publish announces a committed mutation. The write already succeeded, so
// delivery failures are logged rather than returned.
func (s *taskServiceImpl) publish(ctx context.Context, action events.ChangeAction, taskID, actorID int64) {
	event := events.NewTaskChangedEvent(action, taskID, actorID)

	if s.emitter == nil {
		// No subscribers; drop listings directly.
		if err := s.memo.InvalidateAll(ctx); err != nil {
			s.log(ctx).Error("failed to invalidate task cache", "error", err, "task_id", taskID)
		}
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.log(ctx).Error("failed to publish task change",
			"error", err,
			"event_id", event.ID,
			"action", action,
			"task_id", taskID)
	}
}

func (s *taskServiceImpl) mapStoreError(ctx context.Context, op string, id int64, err error) error {
	if store.IsNotFoundError(err) {
		s.log(ctx).Debug("task not found", "operation", op, "task_id", id)
		return fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	s.log(ctx).Error("task store failure", "operation", op, "task_id", id, "error", err)
	return fmt.Errorf("failed to %s task %d: %w", op, id, err)
}
