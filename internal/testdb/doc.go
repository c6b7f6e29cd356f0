// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests using it skip themselves when no database URL
// is configured, so the default test run needs no external services.
package testdb
