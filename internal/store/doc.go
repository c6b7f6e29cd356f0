// Package store defines the persistence interfaces for users and tasks,
// the error vocabulary shared by every implementation, and the
// transaction helper services use to group writes.
package store
