package auth

import "errors"

// Authentication errors. Token failures are deliberately collapsed into
// ErrInvalidToken so callers cannot tell expiry from tampering.
var (
	// ErrInvalidToken covers malformed, tampered, expired and orphaned tokens.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
