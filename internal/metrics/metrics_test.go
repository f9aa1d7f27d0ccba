package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue sums the samples of name whose labels include want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metric
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestCollector_RecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest(http.MethodGet, "/products/", http.StatusOK, 20*time.Millisecond)
	c.RecordRequest(http.MethodGet, "/products/", http.StatusOK, 30*time.Millisecond)
	c.RecordRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, reg, "ecofinds_http_requests_total",
		map[string]string{"method": "GET", "route": "/products/", "status_code": "200"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "ecofinds_http_requests_total",
		map[string]string{"route": "unmatched", "status_code": "404"}))
}

func TestCollector_RecordCheckout(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordCheckout(3)
	c.RecordCheckout(2)
	c.RecordCheckoutConflict()
	c.RecordRegistration()

	assert.Equal(t, 2.0, counterValue(t, reg, "ecofinds_checkouts_total", nil))
	assert.Equal(t, 5.0, counterValue(t, reg, "ecofinds_purchases_created_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "ecofinds_checkout_conflicts_total", nil))
	assert.Equal(t, 1.0, counterValue(t, reg, "ecofinds_registrations_total", nil))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRegistration()

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "ecofinds_registrations_total 1"))
}
