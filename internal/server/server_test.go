package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegate/framegate/internal/config"
	"github.com/framegate/framegate/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, _ := newTestServerWithRedis(t)
	return s
}

func newTestServerWithRedis(t *testing.T) (*Server, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	log := logrus.New()
	log.SetOutput(io.Discard)

	anchors := store.NewAnchorStore(client, &config.AnchorsConfig{
		KeyPrefix: "framegate:anchor:",
	}, log)

	cfg := &config.ServerConfig{
		Port:            8080,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: time.Second,
	}

	return New(cfg, log, client, anchors), mr
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(dst))
}

func TestNew(t *testing.T) {
	server := newTestServer(t)

	assert.NotNil(t, server)
	assert.NotNil(t, server.router)
	assert.NotNil(t, server.healthMgr)
	assert.NotNil(t, server.errorHandler)
	assert.NotNil(t, server.anchors)
	assert.Nil(t, server.limiter) // rate limiting disabled in test config
}

func TestGetRouter(t *testing.T) {
	server := newTestServer(t)

	router := server.GetRouter()
	assert.NotNil(t, router)
	assert.IsType(t, &mux.Router{}, router)
}

func TestHealthRoutesRegistered(t *testing.T) {
	server := newTestServer(t)

	for _, path := range []string{"/health", "/ready", "/live", "/version"} {
		rr := doJSON(t, server, "GET", path, nil)
		assert.NotEqual(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestHandleVersion(t *testing.T) {
	server := newTestServer(t)

	rr := doJSON(t, server, "GET", "/version", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]interface{}
	decodeResponse(t, rr, &body)
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "go_version")
}

func TestNotFoundIsJSON(t *testing.T) {
	server := newTestServer(t)

	rr := doJSON(t, server, "GET", "/api/v1/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(t)

	rr := doJSON(t, server, "DELETE", "/api/v1/rates", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestShutdown(t *testing.T) {
	server := newTestServer(t)

	server.httpServer = &http.Server{Addr: ":0", Handler: server.router}

	err := server.Shutdown()
	assert.NoError(t, err)
}
