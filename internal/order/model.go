package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// StatusExecuted - единственный статус бумажного ордера: исполнение сразу
// по найденной цене.
const StatusExecuted = "EXECUTED"

type Order struct {
	ID         string
	UserID     string
	Symbol     string
	Side       Side
	Quantity   int64
	Price      decimal.Decimal
	Status     string
	CreatedAt  time.Time
	ExecutedAt time.Time
}

// Value - количество × цена.
func (o *Order) Value() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(o.Quantity))
}
