package market

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPriceTableLookup(t *testing.T) {
	table := DefaultPriceTable()

	price, ok := table.Price("TCS")
	require.True(t, ok)
	assert.Equal(t, "3420.5", price.String())

	price, ok = table.Price(" tcs ")
	require.True(t, ok)
	assert.Equal(t, "3420.5", price.String())

	_, ok = table.Price("UNKNOWN")
	assert.False(t, ok)

	assert.Len(t, table.Symbols(), 10)
}

func TestPriceTableIsImmutableFromOutside(t *testing.T) {
	table := NewPriceTable(map[string]decimal.Decimal{"b": decimal.NewFromInt(2), "a": decimal.NewFromInt(1)})

	assert.Equal(t, []string{"A", "B"}, table.Symbols())

	all := table.All()
	all["A"] = decimal.NewFromInt(999)
	syms := table.Symbols()
	syms[0] = "Z"

	price, _ := table.Price("A")
	assert.True(t, price.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, []string{"A", "B"}, table.Symbols())
}
