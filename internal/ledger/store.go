// Package ledger хранит доступный баланс каждого бумажного счёта.
//
// Балансы живут только в памяти процесса: после рестарта каждый счёт
// снова получает стартовый баланс.
package ledger

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var ErrEmptyUserID = errors.New("user id is required")

// UpdateFunc получает текущий баланс и возвращает новый.
// При ошибке счёт не меняется.
type UpdateFunc func(current decimal.Decimal) (decimal.Decimal, error)

// Store - единственный способ читать и менять балансы. Реализации обязаны
// сериализовать Adjust и Update по пользователю.
type Store interface {
	Balance(ctx context.Context, userID string) (decimal.Decimal, error)
	Adjust(ctx context.Context, userID string, delta decimal.Decimal) (decimal.Decimal, error)
	Update(ctx context.Context, userID string, fn UpdateFunc) (decimal.Decimal, error)
}
