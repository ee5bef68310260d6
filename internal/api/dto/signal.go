package dto

import (
	"time"

	"alfatrade/internal/signal"
)

type SignalResponse struct {
	ID          string    `json:"id"`
	Symbol      string    `json:"symbol"`
	Signal      string    `json:"signal"`
	Price       float64   `json:"price"`
	Confidence  int       `json:"confidence"`
	TargetPrice float64   `json:"targetPrice"`
	StopLoss    float64   `json:"stopLoss"`
	Reasoning   string    `json:"reasoning"`
	Timestamp   time.Time `json:"timestamp"`
	Validity    string    `json:"validity"`
}

func NewSignalResponse(s signal.Signal) SignalResponse {
	return SignalResponse{
		ID:          s.ID,
		Symbol:      s.Symbol,
		Signal:      string(s.Direction),
		Price:       s.Price.InexactFloat64(),
		Confidence:  s.Confidence,
		TargetPrice: s.TargetPrice.InexactFloat64(),
		StopLoss:    s.StopLoss.InexactFloat64(),
		Reasoning:   s.Reasoning,
		Timestamp:   s.Timestamp,
		Validity:    s.Validity,
	}
}
