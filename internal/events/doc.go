// Package events carries task change notifications from the service layer
// to interested components without coupling them to one another. The cache
// invalidator is the main subscriber: every create, update or delete
// emits a TaskChangedEvent and the invalidator drops all memoized listings.
package events
