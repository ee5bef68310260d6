// pkg/middleware/auth.go
package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"

	"alfatrade/internal/api"
	"alfatrade/internal/identity"
)

type ctxKey string

// UserIDKey - ключ id пользователя (string) в контексте запроса.
const UserIDKey ctxKey = "user_id"

// Identity разбирает необязательный bearer токен для каждого запроса группы.
// Без токена - гостевой счёт, битый токен получает 401 и никогда не торгует
// молча от чужого имени.
func Identity(resolver *identity.Resolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := resolver.Resolve(r.Header.Get("Authorization"))
			userID, err := res.EffectiveUserID()
			if err != nil {
				logger.Debug("rejected credential", zap.String("path", r.URL.Path), zap.Error(err))
				api.Error(w, http.StatusUnauthorized, "Invalid token", err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext возвращает id, положенный Identity, или гостевой id,
// если запрос через него не проходил.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok && id != "" {
		return id
	}
	return identity.GuestUserID
}

// BasicAuth возвращает middleware для базовой аутентификации
func BasicAuth(username, password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !constantTimeEqual(user, username) || !constantTimeEqual(pass, password) {
				w.Header().Set("WWW-Authenticate", `Basic realm="metrics"`)
				api.Error(w, http.StatusUnauthorized, "Unauthorized", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
