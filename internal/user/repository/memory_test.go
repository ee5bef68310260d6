package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfatrade/internal/user"
)

func TestCreateAndGetByEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.User{ID: "u1", Email: "Trader@Example.com", Password: "h"}))

	got, err := repo.GetByEmail(ctx, " trader@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	got.ID = "mutated"
	again, err := repo.GetByEmail(ctx, "trader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", again.ID)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &user.User{ID: "u1", Email: "a@b.io"}))
	assert.ErrorIs(t, repo.Create(ctx, &user.User{ID: "u2", Email: "A@B.io"}), ErrDuplicate)
}

func TestGetByEmailMissing(t *testing.T) {
	_, err := NewMemoryUserRepository().GetByEmail(context.Background(), "none@x.io")
	assert.ErrorIs(t, err, ErrNotFound)
}
