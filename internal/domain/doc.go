// Package domain contains the core business entities of the task API:
// users, tasks and the status enumeration tasks move through. Values are
// built and mutated through validating constructors so a Task or User
// held by the rest of the system is always well formed.
//
// Subpackages hold the pure algorithms that operate on these entities:
// search (fuzzy title matching, filtering and sorting) and page (slicing
// ordered results into page envelopes).
package domain
