package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"pending", "STARTED", " Completed "} {
		status, err := ParseTaskStatus(raw)
		require.NoError(t, err, raw)
		assert.True(t, status.IsValid())
	}

	_, err := ParseTaskStatus("archived")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)
	assert.Contains(t, err.Error(), "pending, started, completed")
}

func TestParseDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2023-01-02", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2023-01-02T15:04:05", time.Date(2023, 1, 2, 15, 4, 5, 0, time.UTC)},
		{"2023-01-02T15:04:05+02:00", time.Date(2023, 1, 2, 13, 4, 5, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, err := ParseDueDate(tc.raw)
		require.NoError(t, err, tc.raw)
		assert.True(t, tc.want.Equal(got), "%s: got %v", tc.raw, got)
		assert.Equal(t, time.UTC, got.Location())
	}

	_, err := ParseDueDate("next tuesday")
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestNewTaskDefaults(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	task, err := NewTask(TaskInput{}, now)

	require.NoError(t, err)
	assert.Equal(t, DefaultTaskTitle, task.Title)
	assert.Equal(t, DefaultTaskDescription, task.Description)
	assert.Equal(t, TaskStatusPending, task.Status)
	assert.Equal(t, now.Add(7*24*time.Hour), task.DueDate)
	assert.Zero(t, task.ID)
}

func TestNewTaskWithInput(t *testing.T) {
	t.Parallel()

	task, err := NewTask(TaskInput{
		Title:   strPtr("Write report"),
		Status:  strPtr("Started"),
		DueDate: strPtr("2024-05-01"),
	}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, DefaultTaskDescription, task.Description)
	assert.Equal(t, TaskStatusStarted, task.Status)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), task.DueDate)
}

func TestNewTaskInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input TaskInput
		field string
		cause error
	}{
		{"bad status", TaskInput{Status: strPtr("done")}, "status", ErrInvalidTaskStatus},
		{"bad date", TaskInput{DueDate: strPtr("01/02/2023")}, "due_date", ErrInvalidDueDate},
		{"blank title", TaskInput{Title: strPtr("   ")}, "title", ErrEmptyTitle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTask(tc.input, time.Now())

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tc.cause)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestTaskApplyPartial(t *testing.T) {
	t.Parallel()

	due := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	task := &Task{ID: 1, Title: "Task 1", Description: "first", Status: TaskStatusPending, DueDate: due}

	require.NoError(t, task.Apply(TaskInput{Status: strPtr("completed")}))

	assert.Equal(t, TaskStatusCompleted, task.Status)
	assert.Equal(t, "Task 1", task.Title)
	assert.Equal(t, "first", task.Description)
	assert.Equal(t, due, task.DueDate)
	assert.Equal(t, int64(1), task.ID)
}

func TestTaskApplyIsAtomic(t *testing.T) {
	t.Parallel()

	original := Task{ID: 1, Title: "Task 1", Status: TaskStatusPending, DueDate: time.Now().UTC()}
	task := original

	err := task.Apply(TaskInput{Title: strPtr("Renamed"), Status: strPtr("bogus")})

	require.Error(t, err)
	assert.Equal(t, original, task, "a rejected patch must not modify the task")
}
