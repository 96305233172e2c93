package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordUpload(t *testing.T) {
	m := NewMetrics()

	m.RecordUpload("upstream_json", 2048, 0.2)
	m.RecordUpload("upstream_json", 1024, 0.1)
	m.RecordUpload("transport_failure", -1, 0.01)
	m.RecordMissingFile()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UploadsTotal.WithLabelValues("upstream_json")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UploadsTotal.WithLabelValues("transport_failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MissingFile))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordUpload("upstream_text", 1, 1)
		m.RecordMissingFile()
	})
}

func TestHandlerExposesRelayMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordUpload("upstream_text", 10, 0.5)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `transcripto_relay_uploads_total{outcome="upstream_text"} 1`)
}

func TestMetricsAreIndependentPerInstance(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.RecordMissingFile()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.MissingFile))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.MissingFile))
}
