package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegate/framegate/internal/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		wantErr bool
	}{
		{
			name: "json to stdout",
			cfg:  config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
		},
		{
			name: "text to stderr",
			cfg:  config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"},
		},
		{
			name:    "bad level",
			cfg:     config.LoggingConfig{Level: "loud", Format: "json", Output: "stdout"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestNewLoggerFileOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: filepath.Join(dir, "logs", "framegate.log"),
	}

	log, err := New(&cfg)
	require.NoError(t, err)

	log.Info("hello")
	assert.DirExists(t, filepath.Join(dir, "logs"))
}

func TestJSONFieldNames(t *testing.T) {
	log, err := New(&config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.Info("field name check")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "level")
	assert.Equal(t, "field name check", entry["message"])
}

func TestContextRoundTrip(t *testing.T) {
	entry := logrus.NewEntry(logrus.New())

	ctx := WithLogger(context.Background(), entry)
	assert.Equal(t, entry, FromContext(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	// Fallbacks on an empty context.
	assert.NotNil(t, FromContext(context.Background()))
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestRequestLoggerMiddleware(t *testing.T) {
	log := logrus.New()

	var seenID string
	handler := RequestLoggerMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", seenID)

	// A request ID is generated when the client supplies none.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seenID)
}

func TestResponseWriterCapturesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := NewResponseWriter(rec)

	_, err := rw.Write([]byte("body"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rw.StatusCode())

	// A later WriteHeader must not clobber the recorded status.
	rw.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusOK, rw.StatusCode())
}
