// Package metrics provides an in-memory metrics registry with counters,
// gauges, and histograms, serialized in the Prometheus text format.
//
// # Overview
//
// The metrics package is the metrics third of the Lumen observability SDK:
//   - Instruments created implicitly on first reference by name
//   - Series created implicitly on first label combination
//   - Canonical (sorted) label keys, so insertion order never splits series
//   - Deterministic text exposition per call
//   - A prometheus.Collector bridge into the Prometheus client library
//
// # Usage
//
//	registry, err := metrics.New(metrics.Config{
//	    Service: "checkout",
//	    Prefix:  "checkout",
//	})
//
//	registry.Counter("requests_total").Inc(map[string]string{"method": "GET"})
//	registry.Gauge("queue_depth").Set(42, nil)
//	registry.Histogram("request_seconds").Observe(0.123, map[string]string{"route": "/v1/charge"})
//
//	http.Handle("/metrics", registry.Handler())
//
// # Histograms
//
// Histograms store raw observations; no bucket boundaries are configured.
// The exposition derives count and sum from the raw sequence and emits a
// single cumulative +Inf bucket.
//
// # Guarantees
//
// Operations are pure in-memory mutations guarded by a registry mutex and
// never fail for valid numeric input. Series live for the lifetime of the
// registry; there is no eviction, so label cardinality is the caller's
// budget to manage.
package metrics
