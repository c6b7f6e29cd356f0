package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/taskr-api/internal/api/shared"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/platform/logger"
	"github.com/phrazzld/taskr-api/internal/service"
	"github.com/phrazzld/taskr-api/internal/service/auth"
)

// getUserIDFromContext returns the ID of the user placed in the context by
// the authentication middleware.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	user, ok := shared.UserFromContext(r.Context())
	if !ok {
		return 0, false
	}
	return user.ID, true
}

// getPathID parses a positive integer path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// decodeTaskRequest reads an optional task body. An empty body is an
// empty request; any JSON or type error is an invalid payload.
func decodeTaskRequest(w http.ResponseWriter, r *http.Request) (domain.TaskInput, error) {
	var req TaskRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.TaskInput{}, nil
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			fieldErr := domain.NewValidationError(typeErr.Field, "must be a string", domain.ErrValidation)
			return domain.TaskInput{}, fmt.Errorf("%w: %w", service.ErrInvalidPayload, fieldErr)
		}
		return domain.TaskInput{}, errors.Join(service.ErrInvalidPayload, err)
	}
	return req.ToInput(), nil
}

// handleUserIDAndPathID extracts the caller and a path ID, writing an
// error response and returning false when either is missing.
func handleUserIDAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	paramName string,
) (int64, int64, bool) {
	log := logger.FromContextOrDefault(r.Context(), slog.Default())

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user not found in request context")
		HandleAPIError(w, r, auth.ErrMissingToken, "")
		return 0, 0, false
	}

	pathID, err := getPathID(r, paramName)
	if err != nil {
		log.Debug("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err, "")
		return 0, 0, false
	}

	return userID, pathID, true
}
