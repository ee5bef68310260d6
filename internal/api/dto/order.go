package dto

import (
	"time"

	"alfatrade/internal/order"
)

type PlaceOrderRequest struct {
	Symbol   string     `json:"symbol" validate:"required"`
	Type     string     `json:"type" validate:"required"`
	Quantity FlexNumber `json:"quantity" validate:"required,numeric"`
	Price    FlexNumber `json:"price" validate:"omitempty,numeric"`
}

type OrderResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Symbol     string    `json:"symbol"`
	Type       string    `json:"type"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	ExecutedAt time.Time `json:"executedAt"`
}

func NewOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		Symbol:     o.Symbol,
		Type:       string(o.Side),
		Quantity:   o.Quantity,
		Price:      o.Price.InexactFloat64(),
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
		ExecutedAt: o.ExecutedAt,
	}
}

func NewOrderListResponse(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o))
	}
	return out
}
