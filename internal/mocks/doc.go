// Package mocks provides shared test doubles for the store and auth
// interfaces.
//
// The store mocks are in-memory fakes with optional function overrides:
// leave a *Fn field nil to get working map-backed behaviour, or set it to
// script a specific response. MockTokenAuthenticator is a testify/mock
// double for handler and middleware tests that assert on calls.
//
//	tasks := mocks.NewMockTaskStore(domain.Task{Title: "Task 1", ...})
//	tasks.GetFn = func(ctx context.Context, id int64) (*domain.Task, error) {
//	    return nil, errors.New("db down")
//	}
package mocks
