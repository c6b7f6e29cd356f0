package auth

import (
	"time"

	"github.com/phrazzld/taskr-api/internal/config"
)

// NewTestTokenAuthenticator builds an authenticator with a controllable clock.
func NewTestTokenAuthenticator(
	secret string,
	lifetime time.Duration,
	timeFunc func() time.Time,
	users UserLookup,
	verifier PasswordVerifier,
) TokenAuthenticator {
	a, err := NewTokenAuthenticator(
		config.AuthConfig{TokenSecret: secret, ExpirySeconds: int(lifetime / time.Second)},
		users,
		verifier,
	)
	if err != nil {
		// ALLOW-PANIC
		panic(err)
	}
	a.(*hmacTokenAuthenticator).timeFunc = timeFunc
	return a
}
