// pkg/middleware/validation.go

package middleware

import (
	"mime"
	"net/http"

	"alfatrade/internal/api"
)

// Максимальный размер тела запроса (1MB)
const maxBodySize = 1 << 20

// ValidateRequest проверяет корректность запроса перед передачей его обработчику
func ValidateRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if ct := r.Header.Get("Content-Type"); ct != "" {
				mediaType, _, err := mime.ParseMediaType(ct)
				if err != nil || mediaType != "application/json" {
					api.Error(w, http.StatusUnsupportedMediaType, "Invalid Content-Type, expected application/json", nil)
					return
				}
			}

			if r.ContentLength == 0 {
				api.Error(w, http.StatusBadRequest, "Request body cannot be empty", nil)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		}

		next.ServeHTTP(w, r)
	})
}
