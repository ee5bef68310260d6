package ledger

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

type account struct {
	mu      sync.Mutex
	balance decimal.Decimal
}

// MemoryStore - Store на map. Общий лок берётся только чтобы найти или
// создать счёт, баланс меняется под локом самого счёта: разные пользователи
// друг друга не ждут.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]*account
	initial  decimal.Decimal
}

func NewMemoryStore(initial decimal.Decimal) *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]*account),
		initial:  initial,
	}
}

func (s *MemoryStore) account(userID string) *account {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		acc = &account{balance: s.initial}
		s.accounts[userID] = acc
	}
	return acc
}

func (s *MemoryStore) Balance(ctx context.Context, userID string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	if userID == "" {
		return decimal.Zero, ErrEmptyUserID
	}

	acc := s.account(userID)
	acc.mu.Lock()
	defer acc.mu.Unlock()
	return acc.balance, nil
}

func (s *MemoryStore) Adjust(ctx context.Context, userID string, delta decimal.Decimal) (decimal.Decimal, error) {
	return s.Update(ctx, userID, func(current decimal.Decimal) (decimal.Decimal, error) {
		return current.Add(delta), nil
	})
}

func (s *MemoryStore) Update(ctx context.Context, userID string, fn UpdateFunc) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}
	if userID == "" {
		return decimal.Zero, ErrEmptyUserID
	}

	acc := s.account(userID)
	acc.mu.Lock()
	defer acc.mu.Unlock()

	next, err := fn(acc.balance)
	if err != nil {
		return acc.balance, err
	}
	acc.balance = next
	return next, nil
}
