package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"alfatrade/internal/api"
)

type window struct {
	count int
	reset time.Time
}

// RateLimiter - лимитер с фиксированным окном по IP клиента. Окно ключа
// начинается с его первого запроса.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*window
	now     func() time.Time
	logger  *zap.Logger

	stop chan struct{}
	once sync.Once
}

func NewRateLimiter(limit int, win time.Duration, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := &RateLimiter{
		limit:   limit,
		window:  win,
		entries: make(map[string]*window),
		now:     time.Now,
		logger:  logger,
		stop:    make(chan struct{}),
	}

	// Запускаем горутину для очистки старых записей
	go limiter.cleanup()

	return limiter
}

func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(r.window)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			now := r.now()
			for key, e := range r.entries {
				if now.After(e.reset) {
					delete(r.entries, key)
				}
			}
			r.mu.Unlock()
		}
	}
}

// Stop останавливает горутину очистки.
func (r *RateLimiter) Stop() {
	r.once.Do(func() { close(r.stop) })
}

// Allow учитывает запрос по key и сообщает, укладывается ли он в лимит.
// Если нет, второе значение - время до сброса окна.
func (r *RateLimiter) Allow(key string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.entries[key]
	if !ok || now.After(e.reset) {
		r.entries[key] = &window{count: 1, reset: now.Add(r.window)}
		return true, 0
	}

	if e.count >= r.limit {
		return false, e.reset.Sub(now)
	}

	e.count++
	return true, 0
}

func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip := clientIP(req)
		allowed, retryAfter := r.Allow(ip)
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			r.logger.Warn("rate limit exceeded", zap.String("ip", ip))
			api.Error(w, http.StatusTooManyRequests, "Too many requests, please try again later", nil)
			return
		}

		next.ServeHTTP(w, req)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
