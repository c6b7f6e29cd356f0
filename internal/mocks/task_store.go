package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/store"
)

// MockTaskStore implements store.TaskStore with an in-memory map.
type MockTaskStore struct {
	ListFn   func(ctx context.Context) ([]domain.Task, error)
	GetFn    func(ctx context.Context, id int64) (*domain.Task, error)
	CreateFn func(ctx context.Context, task *domain.Task) error
	UpdateFn func(ctx context.Context, task *domain.Task) error
	DeleteFn func(ctx context.Context, id int64) error

	// ListCalls counts List invocations, including overridden ones.
	ListCalls int

	mu     sync.Mutex
	tasks  map[int64]domain.Task
	nextID int64
	txUsed bool
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a store seeded with tasks. Tasks without an ID
// are numbered from 1 in argument order.
func NewMockTaskStore(tasks ...domain.Task) *MockTaskStore {
	m := &MockTaskStore{tasks: make(map[int64]domain.Task)}
	for _, t := range tasks {
		if t.ID == 0 {
			m.nextID++
			t.ID = m.nextID
		} else if t.ID > m.nextID {
			m.nextID = t.ID
		}
		m.tasks[t.ID] = t
	}
	return m
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get implements the TaskStore interface
func (m *MockTaskStore) Get(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &t, nil
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	task.ID = m.nextID
	m.tasks[task.ID] = *task
	return nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	m.tasks[task.ID] = *task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Snapshot returns the stored task with id, bypassing any overrides.
func (m *MockTaskStore) Snapshot(id int64) (domain.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	return t, ok
}

// UsedTx reports whether WithTx was called.
func (m *MockTaskStore) UsedTx() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txUsed
}

// WithTx records the call and returns the same mock.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	m.mu.Lock()
	m.txUsed = true
	m.mu.Unlock()
	return m
}
