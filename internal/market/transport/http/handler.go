package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"alfatrade/internal/api"
	"alfatrade/internal/market"
)

type Handler struct {
	Prices *market.PriceTable
}

func NewMarketHandler(prices *market.PriceTable) *Handler {
	return &Handler{Prices: prices}
}

func (h *Handler) GetPrices(w http.ResponseWriter, r *http.Request) {
	all := h.Prices.All()
	resp := make(map[string]float64, len(all))
	for symbol, price := range all {
		resp[symbol] = price.InexactFloat64()
	}
	api.OK(w, resp)
}

func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	symbol := market.NormalizeSymbol(chi.URLParam(r, "symbol"))
	price, ok := h.Prices.Price(symbol)
	if !ok {
		api.Error(w, http.StatusNotFound, "Symbol not found", symbol)
		return
	}
	api.OK(w, map[string]any{
		"symbol": symbol,
		"price":  price.InexactFloat64(),
	})
}
