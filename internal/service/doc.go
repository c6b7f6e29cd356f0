// Package service implements the task API use cases on top of the store
// interfaces: registration and login, task CRUD and task search.
//
// Services validate input, translate store errors into the sentinels in
// errors.go, memoize listings through the cache package and publish a
// TaskChangedEvent after every committed mutation. They never depend on
// a concrete database or cache implementation.
package service
