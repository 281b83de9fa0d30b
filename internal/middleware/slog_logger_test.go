package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-agency/internal/middleware"
)

// logRequest runs one request with the given status through the SlogLogger
// middleware and returns the parsed log line.
func logRequest(t *testing.T, path string, status int) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.NewSlogLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("body"))
		}),
	)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	// Simulate what chimiddleware.RequestID does: inject a known ID into context.
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, status, rec.Code)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	return logEntry
}

// TestSlogLogger_logsRequestFields verifies that the SlogLogger middleware
// writes a structured JSON log line containing method, path, status, size,
// duration, and the request ID placed in context by chi's RequestID middleware.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	logEntry := logRequest(t, "/healthz", http.StatusOK)

	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "GET", logEntry["method"])
	assert.Equal(t, "/healthz", logEntry["path"])
	assert.EqualValues(t, http.StatusOK, logEntry["status"])
	assert.EqualValues(t, 4, logEntry["bytes"])
	assert.Equal(t, "test-req-id", logEntry["request_id"])
	assert.NotNil(t, logEntry["duration_ms"])
}

func TestSlogLogger_levelFollowsStatus(t *testing.T) {
	assert.Equal(t, "WARN", logRequest(t, "/api/clients/3/trips", http.StatusNotFound)["level"])
	assert.Equal(t, "ERROR", logRequest(t, "/api/Trips", http.StatusInternalServerError)["level"])
}
