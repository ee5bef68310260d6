package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"alfatrade/internal/user/repository"
	"alfatrade/pkg/hash"
	"alfatrade/pkg/jwt"
)

func newService() *UserService {
	return NewUserService(repository.NewMemoryUserRepository(), hash.NewHasher(bcrypt.MinCost))
}

func TestRegisterThenLogin(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "trader@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "secret123", u.Password)

	got, err := svc.Login(ctx, "trader@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "trader@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "TRADER@example.com", "other-pass")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginFailures(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "trader@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "trader@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, err = svc.Login(ctx, "ghost@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestJWTManagerIssuesUserIDClaim(t *testing.T) {
	m := NewJWTManager("test-secret")

	token, err := m.Generate("user-42", "trader@example.com")
	require.NoError(t, err)

	claims, err := jwt.ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "trader@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
}
