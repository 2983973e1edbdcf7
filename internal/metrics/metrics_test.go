package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RecordsCounters(t *testing.T) {
	m := NewManager()

	m.RecordImport(ImportSuccess)
	m.RecordImport(ImportSuccess)
	m.RecordImport(ImportFailure)
	m.RecordBatch(500)
	m.RecordBatch(12)
	m.RecordCacheLookup(CacheHit)
	m.ObserveUpstream("score", 200, 40*time.Millisecond)
	m.RecordHTTPRequest("/getLeaderboard", http.MethodGet, 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.imports.WithLabelValues(ImportSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.imports.WithLabelValues(ImportFailure)))
	assert.Equal(t, 512.0, testutil.ToFloat64(m.scoresWritten))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.importBatches))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues(CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upstreamRequests.WithLabelValues("score", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/getLeaderboard", http.MethodGet, "404")))
}

func TestManager_NilIsNoop(t *testing.T) {
	var m *Manager

	assert.NotPanics(t, func() {
		m.RecordImport(ImportSuccess)
		m.RecordBatch(1)
		m.ObserveUpstream("leaderboard", 500, time.Second)
		m.RecordHTTPRequest("/", http.MethodGet, 200, time.Second)
		m.RecordCacheLookup(CacheMiss)
	})
	assert.Nil(t, m.Registry())
}

func TestManager_Handler(t *testing.T) {
	m := NewManager(WithNamespace("test"))
	m.RecordImport(ImportSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_import_stages_total{result="success"} 1`)
}

func TestNewManager_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewManager()
		NewManager()
	})
}
