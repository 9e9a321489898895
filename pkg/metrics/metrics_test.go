package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveMetrics(t *testing.T) map[string]*dto.MetricFamily {
	t.Helper()

	server := NewMetricsServer(":8081")
	rec := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/metrics", nil)
	require.NoError(t, err, "failed creating metrics request")

	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "status code should be OK")

	promParser := expfmt.TextParser{}
	metrics, err := promParser.TextToMetricFamilies(rec.Body)
	require.NoError(t, err, "failed parsing metrics file")
	return metrics
}

func TestMetricIncrements(t *testing.T) {
	const expectedIncrement = 1.0

	tt := []struct {
		metricName    string
		incrementFunc func()
	}{
		{
			metricName:    "total_api_requests",
			incrementFunc: IncrementAPIRequests,
		},
		{
			metricName:    "total_api_request_errors",
			incrementFunc: IncrementAPIRequestErrors,
		},
		{
			metricName:    "total_reconciliations",
			incrementFunc: func() { IncrementReconciliations(KindCluster) },
		},
		{
			metricName:    "total_reconciliation_errors",
			incrementFunc: func() { IncrementReconciliationErrors(KindInstance) },
		},
	}

	for _, tc := range tt {
		t.Run(tc.metricName, func(t *testing.T) {
			// reinit metrics to make sure global state of counters is at 0
			initMetrics()
			tc.incrementFunc()

			metrics := serveMetrics(t)
			targetMetric, hasKey := metrics[metricsPrefix+tc.metricName]
			require.Truef(t, hasKey, "expected metrics to contain %s but it did not: %v", tc.metricName, metrics)

			value := targetMetric.Metric[0].Counter.Value
			assert.Equalf(t, expectedIncrement, *value, "expected metric: %s to have value: %v", tc.metricName, expectedIncrement)
		})
	}
}

func TestActiveWaitsGauge(t *testing.T) {
	initMetrics()
	IncrementActiveWaits()
	IncrementActiveWaits()
	DecrementActiveWaits()

	metrics := serveMetrics(t)
	targetMetric, hasKey := metrics[metricsPrefix+"active_waits"]
	require.True(t, hasKey, "expected metrics to contain active_waits")
	assert.Equal(t, 1.0, *targetMetric.Metric[0].Gauge.Value)
}
