package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceResponse: маржи нет, поэтому доступный, общий баланс и доступная
// маржа всегда равны.
type BalanceResponse struct {
	AvailableBalance float64   `json:"availableBalance"`
	TotalBalance     float64   `json:"totalBalance"`
	UsedMargin       float64   `json:"usedMargin"`
	AvailableMargin  float64   `json:"availableMargin"`
	Currency         string    `json:"currency"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

func NewBalanceResponse(balance decimal.Decimal, currency string, at time.Time) BalanceResponse {
	v := balance.InexactFloat64()
	return BalanceResponse{
		AvailableBalance: v,
		TotalBalance:     v,
		UsedMargin:       0,
		AvailableMargin:  v,
		Currency:         currency,
		LastUpdated:      at,
	}
}
