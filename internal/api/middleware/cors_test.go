package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caretrack/patientflow/backend/internal/api/middleware"
)

func corsHandler(origins []string) http.Handler {
	return middleware.CORSMiddleware(origins)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSMiddleware(t *testing.T) {
	t.Run("wildcard allows any origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/queue", nil)
		req.Header.Set("Origin", "https://portal.example.com")
		rec := httptest.NewRecorder()

		corsHandler([]string{"*"}).ServeHTTP(rec, req)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin is echoed back with Vary", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/queue", nil)
		req.Header.Set("Origin", "https://portal.example.com")
		rec := httptest.NewRecorder()

		corsHandler([]string{"https://portal.example.com"}).ServeHTTP(rec, req)

		assert.Equal(t, "https://portal.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rec.Header().Get("Vary"))
	})

	t.Run("unlisted origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/queue", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		corsHandler([]string{"https://portal.example.com"}).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight requests short-circuit with 200", func(t *testing.T) {
		called := false
		handler := middleware.CORSMiddleware([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodOptions, "/api/queue", nil)
		req.Header.Set("Origin", "https://portal.example.com")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
		assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	})
}
