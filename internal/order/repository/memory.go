package repository

import (
	"context"
	"errors"
	"sync"

	"alfatrade/internal/order"
)

var (
	ErrDuplicateID = errors.New("order id already recorded")
	ErrNotFound    = errors.New("order not found")
)

// MemoryOrderLog - журнал исполненных бумажных ордеров, только на добавление.
// Discard нужен лишь для отката записи, если баланс не изменился.
type MemoryOrderLog struct {
	mu     sync.RWMutex
	orders []*order.Order
	byID   map[string]int
}

func NewMemoryOrderLog() *MemoryOrderLog {
	return &MemoryOrderLog{byID: make(map[string]int)}
}

func (l *MemoryOrderLog) Append(ctx context.Context, o *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byID[o.ID]; exists {
		return ErrDuplicateID
	}
	stored := *o
	l.byID[o.ID] = len(l.orders)
	l.orders = append(l.orders, &stored)
	return nil
}

func (l *MemoryOrderLog) Discard(_ context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx, ok := l.byID[id]
	if !ok {
		return ErrNotFound
	}
	l.orders = append(l.orders[:idx], l.orders[idx+1:]...)
	delete(l.byID, id)
	// индексы после удалённого сдвинулись
	for i := idx; i < len(l.orders); i++ {
		l.byID[l.orders[i].ID] = i
	}
	return nil
}

func (l *MemoryOrderLog) Get(_ context.Context, id string) (*order.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx, ok := l.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	o := *l.orders[idx]
	return &o, nil
}

// ListByUser возвращает ордера пользователя, новые первыми.
func (l *MemoryOrderLog) ListByUser(_ context.Context, userID string) ([]*order.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*order.Order, 0)
	for i := len(l.orders) - 1; i >= 0; i-- {
		if l.orders[i].UserID == userID {
			o := *l.orders[i]
			out = append(out, &o)
		}
	}
	return out, nil
}

func (l *MemoryOrderLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}
