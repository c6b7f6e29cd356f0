package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/service/auth"
)

// MockTokenAuthenticator is a testify/mock implementation of auth.TokenAuthenticator.
type MockTokenAuthenticator struct {
	mock.Mock
}

var _ auth.TokenAuthenticator = (*MockTokenAuthenticator)(nil)

// Issue is a mock implementation of auth.TokenAuthenticator.Issue
func (m *MockTokenAuthenticator) Issue(
	ctx context.Context,
	user *domain.User,
	password string,
	opts ...auth.IssueOption,
) (auth.Token, error) {
	args := m.Called(ctx, user, password)
	return args.Get(0).(auth.Token), args.Error(1)
}

// Verify is a mock implementation of auth.TokenAuthenticator.Verify
func (m *MockTokenAuthenticator) Verify(ctx context.Context, token string) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

// ResolveUser is a mock implementation of auth.TokenAuthenticator.ResolveUser
func (m *MockTokenAuthenticator) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}
