package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServerCorrectAddress(t *testing.T) {
	server := NewMetricsServer(":8081")
	assert.Equal(t, ":8081", server.Addr)
}

func TestMetricsServerServesDefaultMetrics(t *testing.T) {
	initMetrics()
	metrics := serveMetrics(t)

	_, hasKey := metrics["go_memstats_alloc_bytes"]
	assert.Truef(t, hasKey, "expected metrics to contain go default metrics but it did not: %v", metrics)
}

func TestMetricsServerServesCustomMetrics(t *testing.T) {
	initMetrics()
	IncrementAPIRequests()
	IncrementReconciliations(KindCluster)
	metrics := serveMetrics(t)

	expectedKeys := []string{
		"total_api_requests",
		"total_reconciliations",
	}
	for _, key := range expectedKeys {
		_, hasKey := metrics[metricsPrefix+key]
		require.Truef(t, hasKey, "expected metrics to contain %s but it did not: %v", key, metrics)
	}
}
