package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus client bridge.
//
// The Registry implements prometheus.Collector so its native series can be
// registered into a prometheus.Registry and served alongside standard
// collectors (process, Go runtime) by promhttp. The bridge is read-only:
// it snapshots the native series on every scrape and emits them as const
// metrics.

// Ensure the interface stays satisfied.
var _ prometheus.Collector = (*Registry)(nil)

// Describe implements prometheus.Collector. It sends no descriptors, which
// registers the Registry as an unchecked collector: instruments appear and
// grow at runtime, so there is no fixed set to describe upfront.
func (r *Registry) Describe(chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector. Each native series is emitted
// as a const metric carrying its labels as constant labels. Series that
// cannot be converted (e.g., a label name the client rejects) are skipped;
// a scrape never fails because of one bad series.
func (r *Registry) Collect(ch chan<- prometheus.Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inst := range r.instruments {
		for _, s := range inst.ordered {
			desc := prometheus.NewDesc(inst.name, "Lumen "+string(inst.kind), nil, s.labels)

			var (
				m   prometheus.Metric
				err error
			)
			switch inst.kind {
			case kindCounter:
				m, err = prometheus.NewConstMetric(desc, prometheus.CounterValue, s.value)
			case kindGauge:
				m, err = prometheus.NewConstMetric(desc, prometheus.GaugeValue, s.value)
			case kindHistogram:
				var sum float64
				for _, v := range s.samples {
					sum += v
				}
				m, err = prometheus.NewConstHistogram(desc, uint64(len(s.samples)), sum, nil)
			}
			if err != nil {
				continue
			}
			ch <- m
		}
	}
}
