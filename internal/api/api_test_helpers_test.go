package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskr-api/internal/api"
	"github.com/phrazzld/taskr-api/internal/api/middleware"
	"github.com/phrazzld/taskr-api/internal/config"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/domain/search"
	"github.com/phrazzld/taskr-api/internal/events"
	"github.com/phrazzld/taskr-api/internal/mocks"
	"github.com/phrazzld/taskr-api/internal/platform/cache"
	"github.com/phrazzld/taskr-api/internal/service"
	"github.com/phrazzld/taskr-api/internal/service/auth"
)

const (
	testSecret   = "test-secret-that-is-at-least-32-characters"
	testEmail    = "user@example.com"
	testPassword = "correct-horse-battery"
)

type testEnv struct {
	handler http.Handler
	users   *mocks.MockUserStore
	tasks   *mocks.MockTaskStore
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// newTestEnv wires the real services and handlers over in-memory stores
// seeded with three tasks due on consecutive days.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	env := &testEnv{
		users: mocks.NewMockUserStore(),
		tasks: mocks.NewMockTaskStore(
			domain.Task{Title: "Task 1", Description: "one", Status: domain.TaskStatusPending, DueDate: day("2023-01-01")},
			domain.Task{Title: "Task 2", Description: "two", Status: domain.TaskStatusStarted, DueDate: day("2023-01-02")},
			domain.Task{Title: "Task 3", Description: "three", Status: domain.TaskStatusCompleted, DueDate: day("2023-01-03")},
		),
	}
	passwords := &mocks.MockPasswordVerifier{}

	tokens, err := auth.NewTokenAuthenticator(
		config.AuthConfig{TokenSecret: testSecret, ExpirySeconds: 1200, BcryptCost: 4},
		env.users,
		passwords,
	)
	require.NoError(t, err)

	memo := cache.NewMemoizer(cache.NewMemoryCache(time.Minute), logger)
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(memo)

	taskService, err := service.NewTaskService(service.TaskServiceConfig{
		Tasks:           env.tasks,
		Memoizer:        memo,
		Emitter:         emitter,
		Engine:          search.NewEngine(21, 3),
		DefaultPageSize: 20,
		Logger:          logger,
	})
	require.NoError(t, err)
	userService := service.NewUserService(env.users, passwords, tokens, nil, logger)

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware(logger))
	api.RegisterRoutes(r,
		api.NewAuthHandler(userService),
		api.NewTaskHandler(taskService),
		middleware.NewAuthMiddleware(tokens).Authenticate,
	)
	env.handler = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

// login registers the default user and returns a session token.
func (e *testEnv) login(t *testing.T) string {
	t.Helper()

	rr := e.do(t, http.MethodPost, "/api/user/create", "", map[string]string{
		"email": testEmail, "name": "Test", "password": testPassword,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = e.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email": testEmail, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp api.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, rr)["error"].(string)
}
