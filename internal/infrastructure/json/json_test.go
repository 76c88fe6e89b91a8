package json

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestRead(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Red Room"}`))

	var p payload
	require.NoError(t, Read(r, &p))
	assert.Equal(t, "Red Room", p.Name)
}

func TestRead_Rejects(t *testing.T) {
	for name, body := range map[string]string{
		"empty":          "",
		"unknown field":  `{"name":"a","owner":"u1"}`,
		"trailing value": `{"name":"a"}{"name":"b"}`,
		"malformed":      `{"name":`,
	} {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			var p payload
			assert.Error(t, Read(r, &p))
		})
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusNotFound, errors.New("room not found"), "Room not found")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Not Found","message":"Room not found"}`, w.Body.String())
}

func TestWriteRateLimitError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteRateLimitError(w, 3)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3", w.Header().Get("Retry-After"))
}
