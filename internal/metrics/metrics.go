package metrics

import "github.com/prometheus/client_golang/prometheus"

// Keys for outcome labels.
const (
	Fail = "fail"
	Ok   = "ok"
)

// Collectors for the HTTP surface, the materials store and the fact provider.
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "labshare_http_requests_total",
		Help: "Cumulative number of HTTP requests, by method, route and status code.",
	}, []string{"method", "route", "status"})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "labshare_http_request_duration_seconds",
		Help:    "Duration of HTTP requests, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	StoreOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "labshare_store_operations_total",
		Help: "Cumulative number of materials store operations, by operation and outcome.",
	}, []string{"op", "outcome"})
	StoreOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "labshare_store_operation_duration_seconds",
		Help:    "Duration of materials store operations including connect and disconnect, by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	FactFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "labshare_fact_fetch_total",
		Help: "Cumulative number of fact provider fetches, by outcome.",
	}, []string{"outcome"})
	InventorySnapshotTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "labshare_inventory_snapshot_total",
		Help: "Cumulative number of inventory snapshots published, by outcome.",
	}, []string{"outcome"})
)

// Collectors returns every labshare collector, for registration with a prometheus.Registerer.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDuration,
		StoreOperationsTotal,
		StoreOperationDuration,
		FactFetchTotal,
		InventorySnapshotTotal,
	}
}

// Outcome maps an error to the Ok / Fail label value.
func Outcome(err error) string {
	if err != nil {
		return Fail
	}
	return Ok
}
