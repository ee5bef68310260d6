package market

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceTable: символ инструмента -> опорная цена. Не меняется после создания,
// читать можно конкурентно.
type PriceTable struct {
	prices  map[string]decimal.Decimal
	symbols []string
}

func NewPriceTable(prices map[string]decimal.Decimal) *PriceTable {
	t := &PriceTable{
		prices:  make(map[string]decimal.Decimal, len(prices)),
		symbols: make([]string, 0, len(prices)),
	}
	for symbol, price := range prices {
		symbol = NormalizeSymbol(symbol)
		t.prices[symbol] = price
		t.symbols = append(t.symbols, symbol)
	}
	sort.Strings(t.symbols)
	return t
}

// DefaultPriceTable возвращает демо котировки NSE, с которыми идёт дашборд.
func DefaultPriceTable() *PriceTable {
	return NewPriceTable(map[string]decimal.Decimal{
		"RELIANCE":   decimal.RequireFromString("2850.75"),
		"TCS":        decimal.RequireFromString("3420.50"),
		"HDFC":       decimal.RequireFromString("1650.25"),
		"INFY":       decimal.RequireFromString("1890.80"),
		"ICICIBANK":  decimal.RequireFromString("1050.30"),
		"SBIN":       decimal.RequireFromString("720.45"),
		"BHARTIARTL": decimal.RequireFromString("1180.90"),
		"ITC":        decimal.RequireFromString("285.60"),
		"KOTAKBANK":  decimal.RequireFromString("1890.75"),
		"LT":         decimal.RequireFromString("3450.20"),
	})
}

func (t *PriceTable) Price(symbol string) (decimal.Decimal, bool) {
	p, ok := t.prices[NormalizeSymbol(symbol)]
	return p, ok
}

// All возвращает копию таблицы.
func (t *PriceTable) All() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(t.prices))
	for k, v := range t.prices {
		out[k] = v
	}
	return out
}

// Symbols возвращает символы по возрастанию.
func (t *PriceTable) Symbols() []string {
	out := make([]string, len(t.symbols))
	copy(out, t.symbols)
	return out
}

func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
