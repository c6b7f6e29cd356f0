package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/platform/logger"
	"github.com/phrazzld/taskr-api/internal/service/auth"
	"github.com/phrazzld/taskr-api/internal/store"
)

// UserService handles registration and login.
type UserService interface {
	// Register creates a user with a hashed password.
	// Returns ErrEmailTaken if the email is already registered.
	Register(ctx context.Context, email, name, password string) (*domain.User, error)

	// Login checks credentials and issues a session token. Unknown emails
	// and wrong passwords both yield auth.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (auth.Token, *domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	tokens    auth.TokenAuthenticator
	db        *sql.DB
	logger    *slog.Logger
}

// NewUserService creates a new UserService. db may be nil, in which case
// registration runs outside a transaction.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.TokenAuthenticator,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokens,
		db:        db,
		logger:    logger,
	}
}

func (s *UserServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger).With("component", "user_service")
}

// Register creates a new user with the specified email, name and password.
func (s *UserServiceImpl) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, name, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegistration, err)
	}

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.log(ctx).Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	create := func(ctx context.Context, users store.UserStore) error {
		return users.Create(ctx, user)
	}
	if s.db == nil {
		err = create(ctx, s.userStore)
	} else {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return create(ctx, s.userStore.WithTx(tx))
		})
	}

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.log(ctx).Debug("attempted to register existing email")
			return nil, ErrEmailTaken
		}
		s.log(ctx).Error("failed to save user", "error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log(ctx).Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues a token.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (auth.Token, *domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.log(ctx).Debug("login for unknown email")
			return auth.Token{}, nil, auth.ErrInvalidCredentials
		}
		s.log(ctx).Error("failed to load user for login", "error", err)
		return auth.Token{}, nil, fmt.Errorf("failed to log in: %w", err)
	}

	token, err := s.tokens.Issue(ctx, user, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.log(ctx).Debug("login with wrong password", "user_id", user.ID)
		}
		return auth.Token{}, nil, err
	}

	s.log(ctx).Info("user logged in", "user_id", user.ID)
	return token, user, nil
}
