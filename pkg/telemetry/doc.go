// Package telemetry assembles the Lumen observability SDK from a single
// configuration.
//
// # Overview
//
// Lumen provides three correlated signals plus supporting infrastructure:
//
//   - logging: structured, level-filtered entries with trace correlation
//   - tracing: spans with always/never/ratio sampling and W3C propagation
//   - metrics: counters, gauges, histograms with Prometheus exposition
//   - snapshot: scheduled renders of the metrics exposition
//   - health: liveness and readiness probes over the components above
//
// Each subpackage stands alone; this package wires them together from a
// config.Config.
//
// # Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("lumen.yaml")
//	if err != nil {
//	    return err
//	}
//	tel, err := telemetry.New(cfg)
//	if err != nil {
//	    return err
//	}
//	if err := tel.Start(); err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	tel.Logger().Info("service starting", map[string]any{"port": 8080})
//
//	mux := http.NewServeMux()
//	tel.Mount(mux, version, commit, buildTime)
//	handler := tel.Middleware(mux)
//
// # Correlation
//
// The tracer is handed the logger, so completed spans can be logged in
// development mode, and span identifiers flow into log entries through
// Logger.WithTraceContext. The middleware extracts incoming traceparent
// headers so identifiers stay stable across service boundaries.
package telemetry
