package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfatrade/internal/order"
)

func TestAppendAndListNewestFirst(t *testing.T) {
	log := NewMemoryOrderLog()
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, &order.Order{ID: "1", UserID: "alice"}))
	require.NoError(t, log.Append(ctx, &order.Order{ID: "2", UserID: "bob"}))
	require.NoError(t, log.Append(ctx, &order.Order{ID: "3", UserID: "alice"}))

	orders, err := log.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "3", orders[0].ID)
	assert.Equal(t, "1", orders[1].ID)

	none, err := log.ListByUser(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestAppendRejectsDuplicateID(t *testing.T) {
	log := NewMemoryOrderLog()

	require.NoError(t, log.Append(context.Background(), &order.Order{ID: "dup"}))
	assert.ErrorIs(t, log.Append(context.Background(), &order.Order{ID: "dup"}), ErrDuplicateID)
	assert.Equal(t, 1, log.Len())
}

func TestDiscardKeepsIndexConsistent(t *testing.T) {
	log := NewMemoryOrderLog()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, log.Append(ctx, &order.Order{ID: id, UserID: "u"}))
	}

	require.NoError(t, log.Discard(ctx, "a"))
	assert.ErrorIs(t, log.Discard(ctx, "a"), ErrNotFound)

	got, err := log.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, "c", got.ID)

	_, err = log.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, log.Len())
}

func TestReturnedOrdersAreCopies(t *testing.T) {
	log := NewMemoryOrderLog()
	ctx := context.Background()
	require.NoError(t, log.Append(ctx, &order.Order{ID: "x", UserID: "u", Quantity: 5}))

	got, err := log.Get(ctx, "x")
	require.NoError(t, err)
	got.Quantity = 99

	again, err := log.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, int64(5), again.Quantity)
}
