package domain

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the lifecycle tag of a task. It is persisted as its string
// value so new tags can be appended without rewriting stored rows.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusStarted   TaskStatus = "started"
	TaskStatusCompleted TaskStatus = "completed"
)

// Defaults applied to attributes omitted on creation.
const (
	DefaultTaskTitle       = "New task"
	DefaultTaskDescription = "Description"
	DefaultDueIn           = 7 * 24 * time.Hour
)

// dueDateLayouts are tried in order when parsing a due date.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// AllTaskStatuses returns every known status in declaration order.
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusStarted, TaskStatusCompleted}
}

// IsValid reports whether s is one of the known status tags.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusStarted, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// ValidStatusList renders the known tags for error messages, e.g.
// "pending, started, completed".
func ValidStatusList() string {
	tags := make([]string, 0, len(AllTaskStatuses()))
	for _, s := range AllTaskStatuses() {
		tags = append(tags, string(s))
	}
	return strings.Join(tags, ", ")
}

// ParseTaskStatus matches raw against the known tags case-insensitively and
// returns the canonical lower-case status.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	status := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.IsValid() {
		return "", fmt.Errorf("%w %q, must be one of: %s", ErrInvalidTaskStatus, raw, ValidStatusList())
	}
	return status, nil
}

// ParseDueDate accepts an RFC 3339 timestamp, a timestamp without zone
// (interpreted as UTC) or a bare calendar date (UTC midnight).
func ParseDueDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDueDate, raw)
}

// Task is a single unit of work.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     time.Time  `json:"due_date"`
}

// TaskInput carries caller-supplied task attributes. A nil field means the
// attribute was absent from the request.
type TaskInput struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *string
}

// NewTask builds a task from input, filling omitted attributes with the
// defaults. now anchors the default due date.
func NewTask(input TaskInput, now time.Time) (*Task, error) {
	task := &Task{
		Title:       DefaultTaskTitle,
		Description: DefaultTaskDescription,
		Status:      TaskStatusPending,
		DueDate:     now.UTC().Add(DefaultDueIn),
	}

	if err := task.Apply(input); err != nil {
		return nil, err
	}

	return task, nil
}

// Apply overwrites the attributes present in input and leaves the rest
// untouched. The task is only modified if every supplied value is valid.
func (t *Task) Apply(input TaskInput) error {
	next := *t

	if input.Title != nil {
		next.Title = *input.Title
	}
	if input.Description != nil {
		next.Description = *input.Description
	}
	if input.Status != nil {
		status, err := ParseTaskStatus(*input.Status)
		if err != nil {
			return NewValidationError("status", "must be one of: "+ValidStatusList(), err)
		}
		next.Status = status
	}
	if input.DueDate != nil {
		due, err := ParseDueDate(*input.DueDate)
		if err != nil {
			return NewValidationError("due_date", "must be a date (YYYY-MM-DD) or RFC 3339 timestamp", err)
		}
		next.DueDate = due
	}

	if err := next.Validate(); err != nil {
		return err
	}

	*t = next
	return nil
}

// Validate checks the task invariants.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	if !t.Status.IsValid() {
		return NewValidationError("status", "must be one of: "+ValidStatusList(), ErrInvalidTaskStatus)
	}
	if t.DueDate.IsZero() {
		return NewValidationError("due_date", "is required", ErrInvalidDueDate)
	}
	return nil
}
