// Package api handles incoming HTTP requests, request validation, and
// response formatting. Handlers translate HTTP concerns into calls on the
// task and user services and map service errors to status codes through
// HandleAPIError, so no internal error text reaches a client.
package api
