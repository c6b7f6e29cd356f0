package service

import (
	"errors"

	"github.com/phrazzld/taskr-api/internal/domain/page"
)

// Service errors. Callers match them with errors.Is; the API layer maps
// each to a status code. Search parameter errors are the search package's
// own sentinels and pass through unchanged.
var (
	// ErrInvalidPagination is returned for a non-numeric page or a
	// non-positive page_size.
	ErrInvalidPagination = page.ErrInvalidPagination

	// ErrInvalidPayload is returned when a task field cannot be coerced to
	// its type. The wrapped domain.ValidationError names the field.
	ErrInvalidPayload = errors.New("invalid task payload")

	// ErrTaskNotFound is returned when no task has the requested ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidRegistration wraps domain validation failures on sign-up.
	ErrInvalidRegistration = errors.New("invalid registration")

	// ErrEmailTaken is returned when registering an email already in use.
	ErrEmailTaken = errors.New("email already registered")
)
