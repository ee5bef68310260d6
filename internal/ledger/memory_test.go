package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opening = decimal.NewFromInt(100000)

func TestBalanceInitialisesLazilyOnce(t *testing.T) {
	store := NewMemoryStore(opening)
	ctx := context.Background()

	first, err := store.Balance(ctx, "new-user")
	require.NoError(t, err)
	assert.True(t, first.Equal(opening))

	_, err = store.Adjust(ctx, "new-user", decimal.NewFromInt(-500))
	require.NoError(t, err)

	second, err := store.Balance(ctx, "new-user")
	require.NoError(t, err)
	assert.Equal(t, "99500", second.String())
}

func TestAdjustReturnsNewBalance(t *testing.T) {
	store := NewMemoryStore(opening)

	got, err := store.Adjust(context.Background(), "u", decimal.RequireFromString("-34205"))
	require.NoError(t, err)
	assert.Equal(t, "65795", got.String())

	got, err = store.Adjust(context.Background(), "u", decimal.RequireFromString("205.5"))
	require.NoError(t, err)
	assert.Equal(t, "66000.5", got.String())
}

func TestUpdateErrorLeavesBalanceUntouched(t *testing.T) {
	store := NewMemoryStore(opening)
	boom := errors.New("boom")

	got, err := store.Update(context.Background(), "u", func(current decimal.Decimal) (decimal.Decimal, error) {
		return current.Sub(decimal.NewFromInt(1)), boom
	})
	require.ErrorIs(t, err, boom)
	assert.True(t, got.Equal(opening))

	bal, err := store.Balance(context.Background(), "u")
	require.NoError(t, err)
	assert.True(t, bal.Equal(opening))
}

func TestRejectsEmptyUserAndCancelledContext(t *testing.T) {
	store := NewMemoryStore(opening)

	_, err := store.Balance(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyUserID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Adjust(ctx, "u", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentAdjustDoesNotLoseUpdates(t *testing.T) {
	store := NewMemoryStore(decimal.Zero)
	const workers = 50
	const perWorker = 200

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := store.Adjust(context.Background(), "shared", decimal.NewFromInt(1))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	bal, err := store.Balance(context.Background(), "shared")
	require.NoError(t, err)
	assert.Equal(t, int64(workers*perWorker), bal.IntPart())
}
