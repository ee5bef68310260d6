package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"alfatrade/internal/api"
	"alfatrade/internal/api/dto"
	"alfatrade/internal/order/service"
	"alfatrade/pkg/middleware"
)

type Handler struct {
	OrderService *service.Service
	Logger       *zap.Logger
	ExposeErrors bool
}

func NewOrderHandler(svc *service.Service, logger *zap.Logger, exposeErrors bool) *Handler {
	return &Handler{
		OrderService: svc,
		Logger:       logger,
		ExposeErrors: exposeErrors,
	}
}

func (h *Handler) PlacePaperOrder(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.DecodeError(w, err)
		return
	}
	if err := dto.Validate.Struct(req); err != nil {
		msg := "Invalid order request"
		if dto.MissingRequired(err) {
			msg = "Symbol, type, and quantity are required"
		}
		api.Error(w, http.StatusBadRequest, msg, dto.FieldErrors(err))
		return
	}

	in, fieldErr := toPlaceOrderInput(userID, req)
	if fieldErr != nil {
		api.Error(w, http.StatusBadRequest, "Invalid order request", []api.FieldError{*fieldErr})
		return
	}

	o, err := h.OrderService.PlaceOrder(r.Context(), in)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			api.Error(w, http.StatusBadRequest, "Invalid order request", verr.Fields)
		case errors.Is(err, service.ErrInsufficientFunds):
			api.Error(w, http.StatusBadRequest, "Insufficient balance", err.Error())
		case errors.Is(err, service.ErrUnknownSymbol):
			api.Error(w, http.StatusBadRequest, "Unknown symbol, supply a price", err.Error())
		default:
			h.Logger.Error("order placement failed", zap.String("user_id", userID), zap.Error(err))
			api.InternalError(w, "Order placement failed", err, h.ExposeErrors)
		}
		return
	}

	api.OKWithMessage(w, http.StatusOK, dto.NewOrderResponse(o), "Paper order placed successfully")
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	orders, err := h.OrderService.ListOrders(r.Context(), userID)
	if err != nil {
		h.Logger.Error("list orders failed", zap.String("user_id", userID), zap.Error(err))
		api.InternalError(w, "Failed to fetch orders", err, h.ExposeErrors)
		return
	}

	api.OK(w, dto.NewOrderListResponse(orders))
}

func toPlaceOrderInput(userID string, req dto.PlaceOrderRequest) (service.PlaceOrderInput, *api.FieldError) {
	qty, err := decimal.NewFromString(string(req.Quantity))
	if err != nil || !qty.IsInteger() || !qty.BigInt().IsInt64() {
		return service.PlaceOrderInput{}, &api.FieldError{Field: "quantity", Message: "quantity must be a positive integer"}
	}

	in := service.PlaceOrderInput{
		UserID:   userID,
		Symbol:   req.Symbol,
		Side:     req.Type,
		Quantity: qty.IntPart(),
	}

	if !req.Price.IsZero() {
		price, err := decimal.NewFromString(string(req.Price))
		if err != nil {
			return service.PlaceOrderInput{}, &api.FieldError{Field: "price", Message: "price must be a number"}
		}
		in.Price = &price
	}

	return in, nil
}
