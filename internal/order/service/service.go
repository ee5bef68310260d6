package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"alfatrade/internal/ledger"
	"alfatrade/internal/market"
	"alfatrade/internal/metrics"
	"alfatrade/internal/order"
)

var (
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrUnknownSymbol     = errors.New("unknown symbol and no price supplied")
)

// Верхние границы цены и суммы ордера: балансы отдаются клиенту как float64.
var (
	MaxPrice      = decimal.New(1, 9)
	MaxOrderValue = decimal.New(1, 12)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError перечисляет все ошибки в запросе ордера.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "invalid order: " + strings.Join(msgs, "; ")
}

type OrderLog interface {
	Append(ctx context.Context, o *order.Order) error
	Discard(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*order.Order, error)
}

type PriceSource interface {
	Price(symbol string) (decimal.Decimal, bool)
}

type PlaceOrderInput struct {
	UserID   string
	Symbol   string
	Side     string
	Quantity int64
	// Price заменяет цену из таблицы, если она положительная.
	Price *decimal.Decimal
}

type Service struct {
	log     OrderLog
	ledger  ledger.Store
	prices  PriceSource
	metrics *metrics.Metrics
	logger  *zap.Logger

	newID func() string
	now   func() time.Time
}

func NewService(log OrderLog, store ledger.Store, prices PriceSource, m *metrics.Metrics, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		log:     log,
		ledger:  store,
		prices:  prices,
		metrics: m,
		logger:  logger,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// PlaceOrder исполняет бумажный ордер. Проверка средств, запись в журнал и
// изменение баланса идут внутри одного Update по пользователю, так что две
// параллельные покупки не потратят одни и те же деньги.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*order.Order, error) {
	symbol, side, err := validate(in)
	if err != nil {
		s.metrics.ObserveOrder(sideLabel(side), "invalid")
		return nil, err
	}

	price, err := s.resolvePrice(symbol, in.Price)
	if err != nil {
		s.metrics.ObserveOrder(sideLabel(side), "unknown_symbol")
		return nil, err
	}

	now := s.now().UTC()
	o := &order.Order{
		ID:         s.newID(),
		UserID:     in.UserID,
		Symbol:     symbol,
		Side:       side,
		Quantity:   in.Quantity,
		Price:      price,
		Status:     order.StatusExecuted,
		CreatedAt:  now,
		ExecutedAt: now,
	}
	value := o.Value()
	if err := checkLimits(price, value); err != nil {
		s.metrics.ObserveOrder(string(side), "invalid")
		return nil, err
	}

	recorded := false
	balance, err := s.ledger.Update(ctx, in.UserID, func(current decimal.Decimal) (decimal.Decimal, error) {
		if side == order.SideBuy && value.GreaterThan(current) {
			return current, fmt.Errorf("%w: order value %s exceeds balance %s", ErrInsufficientFunds, value, current)
		}
		if err := s.log.Append(ctx, o); err != nil {
			return current, fmt.Errorf("record order: %w", err)
		}
		recorded = true
		if side == order.SideBuy {
			return current.Sub(value), nil
		}
		return current.Add(value), nil
	})
	if err != nil {
		if recorded {
			// баланс не изменился, значит и ордера быть не должно
			if derr := s.log.Discard(context.WithoutCancel(ctx), o.ID); derr != nil {
				s.logger.Error("failed to discard order after ledger failure",
					zap.String("order_id", o.ID), zap.Error(derr))
			}
		}
		if errors.Is(err, ErrInsufficientFunds) {
			s.metrics.ObserveOrder(string(side), "insufficient_funds")
		} else {
			s.metrics.ObserveOrder(string(side), "error")
		}
		return nil, err
	}

	s.metrics.ObserveOrder(string(side), "executed")
	if side == order.SideBuy {
		s.metrics.ObserveAdjustment("debit")
	} else {
		s.metrics.ObserveAdjustment("credit")
	}
	s.logger.Info("paper order executed",
		zap.String("order_id", o.ID),
		zap.String("user_id", o.UserID),
		zap.String("symbol", o.Symbol),
		zap.String("side", string(o.Side)),
		zap.Int64("quantity", o.Quantity),
		zap.String("price", o.Price.String()),
		zap.String("balance", balance.String()),
	)

	return o, nil
}

func (s *Service) ListOrders(ctx context.Context, userID string) ([]*order.Order, error) {
	return s.log.ListByUser(ctx, userID)
}

func (s *Service) resolvePrice(symbol string, supplied *decimal.Decimal) (decimal.Decimal, error) {
	if supplied != nil && supplied.IsPositive() {
		return *supplied, nil
	}
	if p, ok := s.prices.Price(symbol); ok {
		return p, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
}

func checkLimits(price, value decimal.Decimal) error {
	var fields []FieldError
	if price.GreaterThan(MaxPrice) {
		fields = append(fields, FieldError{Field: "price", Message: "price must not exceed " + MaxPrice.String()})
	}
	if value.GreaterThan(MaxOrderValue) {
		fields = append(fields, FieldError{Field: "quantity", Message: "order value must not exceed " + MaxOrderValue.String()})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func sideLabel(side order.Side) string {
	if side.Valid() {
		return string(side)
	}
	return "UNKNOWN"
}

func validate(in PlaceOrderInput) (string, order.Side, error) {
	var fields []FieldError

	symbol := market.NormalizeSymbol(in.Symbol)
	if symbol == "" {
		fields = append(fields, FieldError{Field: "symbol", Message: "symbol is required"})
	}

	side := order.Side(strings.ToUpper(strings.TrimSpace(in.Side)))
	switch {
	case side == "":
		fields = append(fields, FieldError{Field: "type", Message: "type is required"})
	case !side.Valid():
		fields = append(fields, FieldError{Field: "type", Message: "type must be BUY or SELL"})
	}

	if in.Quantity <= 0 {
		fields = append(fields, FieldError{Field: "quantity", Message: "quantity must be a positive integer"})
	}

	if in.UserID == "" {
		fields = append(fields, FieldError{Field: "userId", Message: "user id is required"})
	}

	if len(fields) > 0 {
		return symbol, side, &ValidationError{Fields: fields}
	}
	return symbol, side, nil
}
