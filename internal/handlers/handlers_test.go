package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/Amke0501/Private-Notes-App/internal/auth"
	"github.com/Amke0501/Private-Notes-App/internal/metrics"
	"github.com/Amke0501/Private-Notes-App/internal/store"
)

type testEnv struct {
	server *httptest.Server
	store  *store.SQLStore
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)

	tokens := auth.NewTokenService("test-secret", time.Hour)
	registry := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter(RouterDeps{
		Users:         db,
		Notes:         db,
		Tokens:        tokens,
		Metrics:       metrics.NewCollector(registry),
		Logger:        logger,
		AllowedOrigin: "http://localhost:5173",
		Gatherer:      registry,
	})

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		db.Close()
	})

	return &testEnv{server: server, store: db, tokens: tokens}
}

// newBrowser returns an HTTP client with a cookie jar, standing in for one
// browser session.
func (e *testEnv) newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// signupAndLogin registers an account and logs it in, returning a client
// whose jar holds the session cookie.
func (e *testEnv) signupAndLogin(t *testing.T, email, password string) *http.Client {
	t.Helper()
	browser := e.newBrowser(t)

	resp := e.request(t, browser, http.MethodPost, "/api/auth/signup",
		map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.request(t, browser, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	return browser
}

func (e *testEnv) request(t *testing.T, client *http.Client, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
