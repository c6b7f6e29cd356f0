package auth

import (
	"context"
	"time"

	"github.com/phrazzld/taskr-api/internal/domain"
)

// DefaultTokenLifetime is the validity window of an issued token.
const DefaultTokenLifetime = 20 * time.Minute

// Token is a signed, time-limited credential for one user.
type Token struct {
	Value     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserLookup loads the user a token refers to. store.UserStore satisfies it.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TokenAuthenticator issues and checks session tokens. Implementations are
// stateless apart from the signing secret and safe for concurrent use.
type TokenAuthenticator interface {
	// Issue checks password against the user's stored hash and returns a
	// token embedding the user's ID. A mismatch yields ErrInvalidCredentials.
	Issue(ctx context.Context, user *domain.User, password string, opts ...IssueOption) (Token, error)

	// Verify reports whether token carries a valid signature and has not expired.
	Verify(ctx context.Context, token string) bool

	// ResolveUser verifies token and loads its user. Any verification
	// failure, or a user that no longer exists, yields ErrInvalidToken.
	ResolveUser(ctx context.Context, token string) (*domain.User, error)
}

// IssueOption customises a single Issue call.
type IssueOption func(*issueOptions)

type issueOptions struct {
	lifetime time.Duration
}

// WithLifetime overrides the configured token lifetime. Non-positive
// durations are ignored.
func WithLifetime(d time.Duration) IssueOption {
	return func(o *issueOptions) {
		if d > 0 {
			o.lifetime = d
		}
	}
}
