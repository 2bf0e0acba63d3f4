package metrics

import (
	"strconv"
	"strings"
)

// Prometheus text exposition (version 0.0.4).
//
// Layout per instrument:
//
//	# TYPE <name> counter|gauge|histogram
//	<name>{k="v",...} <value>                       counters and gauges
//	<name>{k="v",...,le="+Inf"} <count>             histograms
//	<name>_sum{k="v",...} <sum>
//	<name>_count{k="v",...} <count>
//
// Instruments are emitted in registration order and series in creation
// order: no normative order across runs, but within one call the output is
// stable and covers every registered series exactly once.

// ToPrometheus serializes the registry in the Prometheus text format.
func (r *Registry) ToPrometheus() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	for _, inst := range r.instruments {
		b.WriteString("# TYPE ")
		b.WriteString(inst.name)
		b.WriteByte(' ')
		b.WriteString(string(inst.kind))
		b.WriteByte('\n')

		for _, s := range inst.ordered {
			switch inst.kind {
			case kindHistogram:
				writeHistogramSeries(&b, inst.name, s)
			default:
				b.WriteString(s.key)
				b.WriteByte(' ')
				b.WriteString(formatValue(s.value))
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// writeHistogramSeries emits the +Inf bucket, sum, and count lines for one
// histogram series.
func writeHistogramSeries(b *strings.Builder, name string, s *series) {
	count := len(s.samples)
	var sum float64
	for _, v := range s.samples {
		sum += v
	}

	// Cumulative +Inf bucket: with no configured boundaries it holds every
	// observation.
	b.WriteString(name)
	b.WriteString(bucketLabels(s.labels))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(count))
	b.WriteByte('\n')

	labels := labelString(s.labels)

	b.WriteString(name)
	b.WriteString("_sum")
	b.WriteString(labels)
	b.WriteByte(' ')
	b.WriteString(formatValue(sum))
	b.WriteByte('\n')

	b.WriteString(name)
	b.WriteString("_count")
	b.WriteString(labels)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(count))
	b.WriteByte('\n')
}

// bucketLabels renders a series' label block with le="+Inf" appended.
func bucketLabels(labels map[string]string) string {
	block := labelString(labels)
	if block == "" {
		return `{le="+Inf"}`
	}
	return block[:len(block)-1] + `,le="+Inf"}`
}

// formatValue renders a sample value the way Prometheus expects: integral
// values without a decimal point, everything else in shortest form.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
