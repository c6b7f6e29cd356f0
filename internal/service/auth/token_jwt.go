package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/phrazzld/taskr-api/internal/config"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/platform/logger"
	"github.com/phrazzld/taskr-api/internal/store"
)

// minSecretLength matches the HS256 key size.
const minSecretLength = 32

// hmacTokenAuthenticator signs tokens as HS256 JWTs.
type hmacTokenAuthenticator struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time // Injectable for testing
	users      UserLookup
	verifier   PasswordVerifier
}

// tokenClaims is the token payload: the user ID plus registered claims.
type tokenClaims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

var _ TokenAuthenticator = (*hmacTokenAuthenticator)(nil)

// NewTokenAuthenticator builds an HS256 authenticator from cfg.
func NewTokenAuthenticator(
	cfg config.AuthConfig,
	users UserLookup,
	verifier PasswordVerifier,
) (TokenAuthenticator, error) {
	if len(cfg.TokenSecret) < minSecretLength {
		return nil, fmt.Errorf("token secret must be at least %d characters", minSecretLength)
	}

	lifetime := time.Duration(cfg.ExpirySeconds) * time.Second
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}

	return &hmacTokenAuthenticator{
		signingKey: []byte(cfg.TokenSecret),
		lifetime:   lifetime,
		timeFunc:   time.Now,
		users:      users,
		verifier:   verifier,
	}, nil
}

func (a *hmacTokenAuthenticator) Issue(
	ctx context.Context,
	user *domain.User,
	password string,
	opts ...IssueOption,
) (Token, error) {
	log := logger.FromContext(ctx)

	if user == nil || user.HashedPassword == "" {
		return Token{}, ErrInvalidCredentials
	}
	if err := a.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("password mismatch", "user_id", user.ID)
		return Token{}, ErrInvalidCredentials
	}

	o := issueOptions{lifetime: a.lifetime}
	for _, opt := range opts {
		opt(&o)
	}

	// JWT dates have second granularity. Issuing from the whole second keeps
	// the reported expiry equal to the one Verify enforces.
	now := a.timeFunc().Truncate(time.Second)
	expiresAt := jwt.NewNumericDate(now.Add(o.lifetime))
	claims := tokenClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signingKey)
	if err != nil {
		log.Error("failed to sign token", "error", err, "user_id", user.ID)
		return Token{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return Token{Value: signed, ExpiresAt: expiresAt.Time.UTC()}, nil
}

func (a *hmacTokenAuthenticator) Verify(ctx context.Context, token string) bool {
	_, err := a.parse(ctx, token)
	return err == nil
}

func (a *hmacTokenAuthenticator) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	claims, err := a.parse(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			logger.FromContext(ctx).Debug("token refers to missing user", "user_id", claims.UserID)
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load token user: %w", err)
	}

	return user, nil
}

// parse validates signature and expiry. No leeway is applied: a token is
// valid strictly before its expiry instant. Strict decoding rejects
// signatures whose unused trailing bits were altered.
func (a *hmacTokenAuthenticator) parse(ctx context.Context, tokenString string) (*tokenClaims, error) {
	log := logger.FromContext(ctx)

	token, err := jwt.ParseWithClaims(
		tokenString,
		&tokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(a.timeFunc),
	)
	if err != nil {
		log.Debug("token rejected", "reason", rejectionReason(err))
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		log.Debug("token rejected", "reason", "invalid claims")
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// rejectionReason classifies a parse failure for debug logs only.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad signature"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "not yet valid"
	default:
		return "other"
	}
}
