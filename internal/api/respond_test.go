package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteJSONUnencodableBodyAnswers500(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	rec := httptest.NewRecorder()
	OK(rec, map[string]float64{"balance": math.Inf(1)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to encode response", env.Error)
	assert.Equal(t, 1, logs.FilterMessage("response encoding failed").Len())
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	OKWithMessage(rec, http.StatusCreated, map[string]int{"n": 1}, "done")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"data":{"n":1},"message":"done"}`, rec.Body.String())
}

func TestInternalErrorExposesCauseOnlyWhenAsked(t *testing.T) {
	cause := errors.New("boom")

	rec := httptest.NewRecorder()
	InternalError(rec, "Failed", cause, false)
	assert.JSONEq(t, `{"success":false,"error":"Failed"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	InternalError(rec, "Failed", cause, true)
	assert.JSONEq(t, `{"success":false,"error":"Failed","details":"boom"}`, rec.Body.String())
}

func TestDecodeError(t *testing.T) {
	rec := httptest.NewRecorder()
	DecodeError(rec, &http.MaxBytesError{Limit: 1024})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request body too large")

	rec = httptest.NewRecorder()
	DecodeError(rec, errors.New("unexpected EOF"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid JSON body")
}
