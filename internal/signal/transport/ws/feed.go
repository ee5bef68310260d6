// Package ws отдаёт свежие сигналы по websocket.
package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"alfatrade/internal/api"
	"alfatrade/internal/api/dto"
	"alfatrade/internal/metrics"
	"alfatrade/internal/signal"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 512
)

// Feed шлёт сигнал сразу после апгрейда и далее раз в interval, пока клиент
// не отключится или не вызван Close.
type Feed struct {
	generator *signal.Generator
	interval  time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
	upgrader  websocket.Upgrader

	quit     chan struct{}
	quitOnce sync.Once
}

func NewFeed(gen *signal.Generator, interval time.Duration, allowedOrigin string, m *metrics.Metrics, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		generator: gen,
		interval:  interval,
		metrics:   m,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
		quit: make(chan struct{}),
	}
}

// Close отключает всех клиентов. http.Server.Shutdown не закрывает
// захваченные соединения, поэтому сервер вызывает Close при остановке.
func (f *Feed) Close() {
	f.quitOnce.Do(func() { close(f.quit) })
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("signal feed upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	f.metrics.FeedClientConnected()
	defer f.metrics.FeedClientDisconnected()
	f.logger.Info("signal feed client connected", zap.String("remote", r.RemoteAddr))

	// клиент ничего не шлёт, читаем только чтобы заметить закрытие
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		conn.SetReadLimit(maxMessageSize)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := f.push(conn); err != nil {
		return
	}

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			f.logger.Info("signal feed client disconnected", zap.String("remote", r.RemoteAddr))
			return
		case <-f.quit:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case <-ticker.C:
			if err := f.push(conn); err != nil {
				return
			}
		}
	}
}

func (f *Feed) push(conn *websocket.Conn) error {
	s, err := f.generator.Generate()
	if err != nil {
		f.logger.Error("signal generation failed", zap.Error(err))
		return err
	}
	f.metrics.ObserveSignal(string(s.Direction))

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(api.Envelope{Success: true, Data: dto.NewSignalResponse(s)}); err != nil {
		f.logger.Debug("signal feed write failed", zap.Error(err))
		return err
	}
	return nil
}
