// Package metrics holds the prometheus.Collector instances for docdbctl's custom metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsPrefix = "docdbctl_"

// Resource kind label values for reconciliation metrics.
const (
	KindCluster  = "cluster"
	KindInstance = "instance"
)

var (
	apiRequests          prometheus.Counter
	apiRequestErrors     prometheus.Counter
	reconciliations      *prometheus.CounterVec
	reconciliationErrors *prometheus.CounterVec
	activeWaits          prometheus.Gauge
)

func init() {
	initMetrics()
}

func initMetrics() {
	apiRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricsPrefix + "total_api_requests",
		Help: "The total number of DocumentDB control plane API requests",
	})
	apiRequestErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricsPrefix + "total_api_request_errors",
		Help: "The total number of DocumentDB control plane API request errors",
	})
	reconciliations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricsPrefix + "total_reconciliations",
		Help: "The total number of reconciliations started, partitioned by resource kind",
	}, []string{"kind"})
	reconciliationErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: metricsPrefix + "total_reconciliation_errors",
		Help: "The total number of failed reconciliations, partitioned by resource kind",
	}, []string{"kind"})
	activeWaits = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: metricsPrefix + "active_waits",
		Help: "The number of wait loops currently polling the control plane",
	})
}

// Register registers the custom metrics with the given prometheus.Registerer
func Register(r prometheus.Registerer) {
	r.MustRegister(apiRequests)
	r.MustRegister(apiRequestErrors)
	r.MustRegister(reconciliations)
	r.MustRegister(reconciliationErrors)
	r.MustRegister(activeWaits)
}

// IncrementAPIRequests increments the metric counter for control plane API requests
func IncrementAPIRequests() {
	apiRequests.Inc()
}

// IncrementAPIRequestErrors increments the metric counter for control plane API request errors
func IncrementAPIRequestErrors() {
	apiRequestErrors.Inc()
}

// IncrementReconciliations increments the metric counter for reconciliations of the given kind
func IncrementReconciliations(kind string) {
	reconciliations.WithLabelValues(kind).Inc()
}

// IncrementReconciliationErrors increments the metric counter for failed reconciliations of the given kind
func IncrementReconciliationErrors(kind string) {
	reconciliationErrors.WithLabelValues(kind).Inc()
}

// IncrementActiveWaits increments the metric gauge for active wait loops
func IncrementActiveWaits() {
	activeWaits.Inc()
}

// DecrementActiveWaits decrements the metric gauge for active wait loops
func DecrementActiveWaits() {
	activeWaits.Dec()
}
