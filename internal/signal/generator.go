package signal

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Validity - срок действия любого сигнала.
const Validity = "1 hour"

const (
	minConfidence   = 60
	confidenceRange = 40
)

var (
	buyTarget  = decimal.RequireFromString("1.03")
	buyStop    = decimal.RequireFromString("0.98")
	sellTarget = decimal.RequireFromString("0.97")
	sellStop   = decimal.RequireFromString("1.02")
)

var ErrNoInstruments = errors.New("price table is empty")

type Signal struct {
	ID          string
	Symbol      string
	Direction   Direction
	Price       decimal.Decimal
	Confidence  int
	TargetPrice decimal.Decimal
	StopLoss    decimal.Decimal
	Reasoning   string
	Timestamp   time.Time
	Validity    string
}

type PriceSource interface {
	Symbols() []string
	Price(symbol string) (decimal.Decimal, bool)
}

// Generator выдаёт случайные сигналы на вход. Между вызовами хранит только
// источник случайных чисел.
type Generator struct {
	prices PriceSource

	mu  sync.Mutex
	rnd *rand.Rand

	newID func() string
	now   func() time.Time
}

// NewGenerator берёт случайность из src; nil означает источник, засеянный временем.
func NewGenerator(prices PriceSource, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())
	}
	return &Generator{
		prices: prices,
		rnd:    rand.New(src),
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

func (g *Generator) Generate() (Signal, error) {
	symbols := g.prices.Symbols()
	if len(symbols) == 0 {
		return Signal{}, ErrNoInstruments
	}

	g.mu.Lock()
	symbol := symbols[g.rnd.IntN(len(symbols))]
	direction := Sell
	if g.rnd.IntN(2) == 0 {
		direction = Buy
	}
	confidence := minConfidence + g.rnd.IntN(confidenceRange)
	g.mu.Unlock()

	price, ok := g.prices.Price(symbol)
	if !ok {
		return Signal{}, fmt.Errorf("no price for %s", symbol)
	}

	target, stop := Levels(direction, price)

	return Signal{
		ID:          g.newID(),
		Symbol:      symbol,
		Direction:   direction,
		Price:       price,
		Confidence:  confidence,
		TargetPrice: target,
		StopLoss:    stop,
		Reasoning:   fmt.Sprintf("Technical analysis suggests %s signal based on momentum indicators", direction),
		Timestamp:   g.now().UTC(),
		Validity:    Validity,
	}, nil
}

// Levels возвращает цель и стоп от опорной цены: +3%/-2% для BUY,
// -3%/+2% для SELL.
func Levels(direction Direction, price decimal.Decimal) (target, stop decimal.Decimal) {
	if direction == Buy {
		return price.Mul(buyTarget), price.Mul(buyStop)
	}
	return price.Mul(sellTarget), price.Mul(sellStop)
}
