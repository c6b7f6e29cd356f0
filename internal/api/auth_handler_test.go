package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskr-api/internal/api"
)

func TestRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(t, http.MethodPost, "/api/user/create", "", map[string]string{
			"email": testEmail, "name": "Test", "password": testPassword,
		})

		require.Equal(t, http.StatusCreated, rr.Code)
		resp := decode[api.UserResponse](t, rr)
		assert.NotZero(t, resp.ID)
		assert.Equal(t, testEmail, resp.Email)
		assert.Equal(t, "Test", resp.Name)
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		body := map[string]string{"email": testEmail, "password": testPassword}

		require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/api/user/create", "", body).Code)
		rr := env.do(t, http.MethodPost, "/api/user/create", "", body)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "Email already exists", errorMessage(t, rr))
		assert.Equal(t, 1, env.users.Count())
	})

	tests := []struct {
		name    string
		body    any
		message string
	}{
		{"malformed json", `{"email":`, "Invalid request format"},
		{"missing email", map[string]string{"password": testPassword}, "Invalid email: required field"},
		{"invalid email", map[string]string{"email": "nope", "password": testPassword}, "Invalid email: invalid email format"},
		{"short password", map[string]string{"email": testEmail, "password": "short"}, "Invalid password: too short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rr := env.do(t, http.MethodPost, "/api/user/create", "", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.message, errorMessage(t, rr))
			assert.Zero(t, env.users.Count())
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("issues token", func(t *testing.T) {
		env := newTestEnv(t)
		token := env.login(t)

		rr := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
			"email": testEmail, "password": testPassword,
		})

		require.Equal(t, http.StatusOK, rr.Code)
		resp := decode[api.LoginResponse](t, rr)
		assert.NotEmpty(t, token)
		assert.WithinDuration(t, time.Now().Add(20*time.Minute), resp.ExpiresAt, time.Minute)
	})

	t.Run("wrong password", func(t *testing.T) {
		env := newTestEnv(t)
		env.login(t)

		rr := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
			"email": testEmail, "password": "wrong-password-entirely",
		})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", errorMessage(t, rr))
	})

	t.Run("unknown email looks the same", func(t *testing.T) {
		env := newTestEnv(t)

		rr := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
			"email": "ghost@example.com", "password": testPassword,
		})

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid credentials", errorMessage(t, rr))
	})
}
