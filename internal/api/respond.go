// Package api - единый конверт ответа для всех эндпоинтов.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// Envelope - тело любого JSON ответа.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// FieldError описывает одно невалидное поле запроса.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WriteJSON кодирует тело до записи статуса: если кодирование не удалось,
// клиент получает 500, а не пустой 200.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	buf, err := json.Marshal(body)
	if err != nil {
		zap.L().Error("response encoding failed", zap.Int("status", status), zap.Error(err))
		status = http.StatusInternalServerError
		buf, _ = json.Marshal(Envelope{Success: false, Error: "Failed to encode response"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(buf, '\n'))
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func OKWithMessage(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

func Error(w http.ResponseWriter, status int, message string, details any) {
	WriteJSON(w, status, Envelope{Success: false, Error: message, Details: details})
}

// InternalError отвечает 500. Причину показываем только при expose.
func InternalError(w http.ResponseWriter, message string, cause error, expose bool) {
	var details any
	if expose && cause != nil {
		details = cause.Error()
	}
	Error(w, http.StatusInternalServerError, message, details)
}

// DecodeError отвечает на запрос, JSON тело которого не удалось прочитать.
func DecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Error(w, http.StatusRequestEntityTooLarge, "Request body too large", fmt.Sprintf("limit is %d bytes", tooLarge.Limit))
		return
	}
	Error(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
}
