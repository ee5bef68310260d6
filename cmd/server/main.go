// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"alfatrade/internal/config"
	"alfatrade/internal/ledger"
	"alfatrade/internal/market"
	"alfatrade/internal/metrics"
	orderrepository "alfatrade/internal/order/repository"
	orderservice "alfatrade/internal/order/service"
	"alfatrade/internal/server"
	sig "alfatrade/internal/signal"
	"alfatrade/internal/signal/transport/ws"
	userrepository "alfatrade/internal/user/repository"
	userservice "alfatrade/internal/user/service"
	"alfatrade/pkg/hash"
	"alfatrade/pkg/logger"
	"alfatrade/pkg/middleware"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	log.Info("AlfaTrade API starting",
		zap.String("env", cfg.Env),
		zap.String("addr", cfg.Addr()),
		zap.String("currency", cfg.Currency),
	)
	if cfg.JWTSecret == "fallback-secret" {
		log.Warn("JWT_SECRET not set, using fallback secret")
	}

	// --- ИНИЦИАЛИЗАЦИЯ СЛОЁВ ---
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	prices := market.DefaultPriceTable()
	store := ledger.NewMemoryStore(cfg.DefaultBalance)
	orders := orderservice.NewService(orderrepository.NewMemoryOrderLog(), store, prices, m, log.Named("order"))
	generator := sig.NewGenerator(prices, nil)
	users := userservice.NewUserService(userrepository.NewMemoryUserRepository(), hash.NewHasher(0))

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, log.Named("ratelimit"))
	defer limiter.Stop()
	feed := ws.NewFeed(generator, cfg.SignalFeedInterval, cfg.FrontendURL, m, log.Named("feed"))

	// --- РОУТЕР ---
	handler := server.NewRouter(server.Deps{
		Config:   cfg,
		Logger:   log,
		Gatherer: reg,
		Metrics:  m,
		Prices:   prices,
		Ledger:   store,
		Orders:   orders,
		Signals:  generator,
		Users:    users,
		Limiter:  limiter,
		Feed:     feed,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown на сигналы ОС
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received, starting graceful shutdown")
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", zap.Error(err))
			os.Exit(1)
		}
	}

	shutdownServer(srv, feed, log)
}

func shutdownServer(srv *http.Server, feed *ws.Feed, log *zap.Logger) {
	// Создаем контекст с таймаутом
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	feed.Close()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
		return
	}

	log.Info("Server stopped")
}
