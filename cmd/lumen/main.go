// Lumen is a self-contained observability SDK and sidecar endpoint server.
//
// It bundles structured logging, distributed tracing with sampling, and an
// in-memory Prometheus metrics registry behind a single configuration.
//
// Usage:
//
//	# Serve the telemetry endpoints with default configuration
//	lumen serve
//
//	# Serve with a custom configuration file
//	lumen serve --config /etc/lumen/lumen.yaml
//
//	# Validate a configuration file
//	lumen validate --config lumen.yaml
//
//	# Show version information
//	lumen version
package main

func main() {
	Execute()
}
