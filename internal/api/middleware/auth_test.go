package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskr-api/internal/api/shared"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/mocks"
	"github.com/phrazzld/taskr-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	user := &domain.User{ID: 9, Email: "a@example.com"}

	tests := []struct {
		name           string
		header         string
		setup          func(m *mocks.MockTokenAuthenticator)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:           "missing header",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Authorization header required",
		},
		{
			name:           "wrong scheme",
			header:         "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid token",
		},
		{
			name:           "empty bearer",
			header:         "Bearer ",
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid token",
		},
		{
			name:   "rejected token",
			header: "Bearer expired",
			setup: func(m *mocks.MockTokenAuthenticator) {
				m.On("ResolveUser", mock.Anything, "expired").Return(nil, auth.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedMsg:    "Invalid token",
		},
		{
			name:   "lookup failure",
			header: "Bearer good",
			setup: func(m *mocks.MockTokenAuthenticator) {
				m.On("ResolveUser", mock.Anything, "good").Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Authentication error",
		},
		{
			name:   "valid token",
			header: "bearer good",
			setup: func(m *mocks.MockTokenAuthenticator) {
				m.On("ResolveUser", mock.Anything, "good").Return(user, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &mocks.MockTokenAuthenticator{}
			if tt.setup != nil {
				tt.setup(tokens)
			}

			var gotUser *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = shared.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/task", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			NewAuthMiddleware(tokens).Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedMsg != "" {
				var resp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedMsg, resp.Error)
				assert.Nil(t, gotUser)
			} else {
				assert.Equal(t, user, gotUser)
			}
			tokens.AssertExpectations(t)
		})
	}
}
