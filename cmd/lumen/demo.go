package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/lumen/pkg/config"
	"mercator-hq/lumen/pkg/telemetry"
	"mercator-hq/lumen/pkg/telemetry/logging"
	"mercator-hq/lumen/pkg/telemetry/tracing"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Emit sample telemetry and print the metrics exposition",
	Long: `Build the telemetry stack and run a short instrumented workload.

The demo emits a traced operation with a child span, correlated log
entries, and a handful of metrics, then prints the resulting Prometheus
exposition. Useful for smoke-testing a configuration file.

Examples:
  lumen demo
  lumen demo --config lumen.yaml`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadDemoConfig()
	if err != nil {
		return err
	}

	tel, err := telemetry.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to build telemetry: %w", err)
	}
	logger := tel.Logger()
	tracer := tel.Tracer()
	registry := tel.Metrics()

	requests := registry.Counter("demo_requests_total")
	latency := registry.Histogram("demo_request_seconds")
	depth := registry.Gauge("demo_queue_depth")

	for i := 0; i < 3; i++ {
		start := time.Now()
		labels := map[string]string{"attempt": fmt.Sprintf("%d", i+1)}

		err := tracer.Trace(cmd.Context(), "demo-operation", func(ctx context.Context, span *tracing.Span) error {
			span.SetAttribute("attempt", int64(i+1))
			span.AddEvent("work started", nil)

			child := tracer.StartSpan("demo-downstream", tracing.WithParent(span))
			time.Sleep(5 * time.Millisecond)
			child.SetStatus(tracing.StatusOK, "").End()

			sc := span.Context()
			logger.WithTraceContext(sc.TraceID, sc.SpanID, func(l *logging.Logger) {
				l.Info("demo operation ran", map[string]any{"attempt": i + 1})
			})
			return nil
		})
		if err != nil {
			return err
		}

		requests.Inc(labels)
		latency.Observe(time.Since(start).Seconds(), nil)
		depth.Set(float64(3-i), nil)
	}

	fmt.Println(registry.ToPrometheus())
	return nil
}

// loadDemoConfig seeds the global configuration from the configured file,
// falling back to a built-in development config when the file is absent.
// An invalid file is still an error so the demo does not mask
// configuration mistakes.
func loadDemoConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		cfg := &config.Config{}
		cfg.Service.Name = "lumen-demo"
		cfg.Service.Environment = config.EnvironmentDevelopment
		cfg.Telemetry.Logging.Format = "console"
		config.ApplyDefaults(cfg)
		config.SetConfig(cfg)
		return cfg, nil
	}
	if err := config.Initialize(cfgFile); err != nil {
		return nil, err
	}
	return config.GetConfig(), nil
}
