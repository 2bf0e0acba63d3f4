package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// expositionContentType is the Prometheus text format content type.
const expositionContentType = "text/plain; version=0.0.4; charset=utf-8"

// Handler returns an HTTP handler serving the registry's native text
// exposition. Mount it at the scrape path (typically "/metrics"):
//
//	http.Handle("/metrics", registry.Handler())
func (r *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", expositionContentType)
		_, _ = fmt.Fprint(w, r.ToPrometheus())
	})
}

// PromHandler returns an HTTP handler backed by the Prometheus client
// library instead of the native serializer. The registry is bridged in as
// a collector, so the endpoint gains promhttp's content negotiation,
// compression, and the ability to co-host standard collectors registered
// on the same prometheus.Registry.
func (r *Registry) PromHandler() (http.Handler, error) {
	promReg := prometheus.NewRegistry()
	if err := promReg.Register(r); err != nil {
		return nil, fmt.Errorf("failed to register metrics bridge: %w", err)
	}
	return promhttp.HandlerFor(promReg, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	}), nil
}
