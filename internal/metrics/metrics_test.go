package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_RecordNoteOp(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)

	c.RecordNoteOp("create")
	c.RecordNoteOp("create")
	c.RecordNoteOp("delete")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.noteOps.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.noteOps.WithLabelValues("delete")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.noteOps.WithLabelValues("update")))
}

func TestCollector_Middleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)

	handler := c.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("GET", "404")))
}

func TestCollector_RecordRequest(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)

	c.RecordRequest("POST", 201, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequests.WithLabelValues("POST", "201")))
}

func TestHandler_Scrape(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(registry)
	c.RecordNoteOp("list")

	server := httptest.NewServer(Handler(registry))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "notes_operations_total"))
}
