// Package server собирает HTTP роутер.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"alfatrade/internal/api"
	"alfatrade/internal/api/dto"
	"alfatrade/internal/config"
	"alfatrade/internal/identity"
	"alfatrade/internal/ledger"
	fundshttp "alfatrade/internal/ledger/transport/http"
	"alfatrade/internal/market"
	markethttp "alfatrade/internal/market/transport/http"
	"alfatrade/internal/metrics"
	orderservice "alfatrade/internal/order/service"
	orderhttp "alfatrade/internal/order/transport/http"
	"alfatrade/internal/signal"
	signalhttp "alfatrade/internal/signal/transport/http"
	"alfatrade/internal/signal/transport/ws"
	userservice "alfatrade/internal/user/service"
	userhttp "alfatrade/internal/user/transport/http"
	"alfatrade/pkg/middleware"
)

// Deps - всё, что нужно роутеру. Limiter и Feed держат свои горутины,
// их останавливает вызывающий код.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Gatherer prometheus.Gatherer
	Metrics  *metrics.Metrics

	Prices  *market.PriceTable
	Ledger  ledger.Store
	Orders  *orderservice.Service
	Signals *signal.Generator
	Users   *userservice.UserService

	Limiter *middleware.RateLimiter
	Feed    *ws.Feed
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	expose := !cfg.IsProduction()

	fundsHandler := fundshttp.NewFundsHandler(d.Ledger, cfg.Currency, logger, expose)
	marketHandler := markethttp.NewMarketHandler(d.Prices)
	orderHandler := orderhttp.NewOrderHandler(d.Orders, logger, expose)
	signalHandler := signalhttp.NewSignalHandler(d.Signals, d.Metrics, logger, expose)
	userHandler := userhttp.NewHandler(d.Users, cfg.JWTSecret, logger, expose)
	resolver := identity.NewResolver(cfg.JWTSecret)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger, expose))

	// CORS только для фронтенда
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Error(w, http.StatusNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Error(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.OK(w, dto.HealthResponse{Status: "OK", Timestamp: time.Now().UTC()})
	})

	if d.Gatherer != nil {
		metricsHandler := promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})
		if cfg.MetricsUser != "" && cfg.MetricsPassword != "" {
			metricsHandler = middleware.BasicAuth(cfg.MetricsUser, cfg.MetricsPassword)(metricsHandler)
		}
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	if d.Feed != nil {
		r.Method(http.MethodGet, "/ws/signals", d.Feed)
	}

	// Публичные API роуты под лимитом запросов
	r.Group(func(pr chi.Router) {
		if d.Limiter != nil {
			pr.Use(d.Limiter.Middleware)
		}

		pr.Get("/api/market/prices", marketHandler.GetPrices)
		pr.Get("/api/market/prices/{symbol}", marketHandler.GetPrice)
		pr.Get("/api/signal/entry", signalHandler.GetEntrySignal)

		pr.With(middleware.ValidateRequest).Post("/api/auth/register", userHandler.Register)
		pr.With(middleware.ValidateRequest).Post("/api/auth/login", userHandler.Login)

		// гость без токена торгует на счёте demo, битый токен получает 401
		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.Identity(resolver, logger))

			ar.Get("/api/funds/balance", fundsHandler.GetBalance)
			ar.With(middleware.ValidateRequest).Post("/api/order/paper", orderHandler.PlacePaperOrder)
			ar.Get("/api/orders", orderHandler.ListOrders)
		})
	})

	return r
}
