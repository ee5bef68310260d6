package http

import (
	"net/http"

	"go.uber.org/zap"

	"alfatrade/internal/api"
	"alfatrade/internal/api/dto"
	"alfatrade/internal/metrics"
	"alfatrade/internal/signal"
)

type Handler struct {
	Generator    *signal.Generator
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
	ExposeErrors bool
}

func NewSignalHandler(gen *signal.Generator, m *metrics.Metrics, logger *zap.Logger, exposeErrors bool) *Handler {
	return &Handler{
		Generator:    gen,
		Metrics:      m,
		Logger:       logger,
		ExposeErrors: exposeErrors,
	}
}

func (h *Handler) GetEntrySignal(w http.ResponseWriter, r *http.Request) {
	s, err := h.Generator.Generate()
	if err != nil {
		h.Logger.Error("signal generation failed", zap.Error(err))
		api.InternalError(w, "Failed to generate signal", err, h.ExposeErrors)
		return
	}

	h.Metrics.ObserveSignal(string(s.Direction))
	api.OK(w, dto.NewSignalResponse(s))
}
