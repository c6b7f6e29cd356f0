package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/taskr-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Single-row writes are atomic; the store serializes conflicting writes.
type TaskStore interface {
	// List returns every task in ID order.
	List(ctx context.Context) ([]domain.Task, error)

	// Get retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id int64) (*domain.Task, error)

	// Create inserts task and sets its store-assigned ID.
	Create(ctx context.Context, task *domain.Task) error

	// Update overwrites every column of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a TaskStore bound to tx.
	WithTx(tx *sql.Tx) TaskStore
}
