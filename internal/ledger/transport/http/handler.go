package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"alfatrade/internal/api"
	"alfatrade/internal/api/dto"
	"alfatrade/internal/ledger"
	"alfatrade/pkg/middleware"
)

type Handler struct {
	Store        ledger.Store
	Currency     string
	Logger       *zap.Logger
	ExposeErrors bool
}

func NewFundsHandler(store ledger.Store, currency string, logger *zap.Logger, exposeErrors bool) *Handler {
	return &Handler{
		Store:        store,
		Currency:     currency,
		Logger:       logger,
		ExposeErrors: exposeErrors,
	}
}

func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	balance, err := h.Store.Balance(r.Context(), userID)
	if err != nil {
		h.Logger.Error("balance lookup failed", zap.String("user_id", userID), zap.Error(err))
		api.InternalError(w, "Failed to fetch balance", err, h.ExposeErrors)
		return
	}

	api.OK(w, dto.NewBalanceResponse(balance, h.Currency, time.Now().UTC()))
}
