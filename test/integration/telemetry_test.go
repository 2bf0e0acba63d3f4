package integration

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mercator-hq/lumen/pkg/config"
	"mercator-hq/lumen/pkg/telemetry"
	"mercator-hq/lumen/pkg/telemetry/tracing"
)

// buildService loads a config file and assembles the full telemetry stack
// plus an instrumented HTTP handler, the way a real service would.
func buildService(t *testing.T, yaml string) (*telemetry.Telemetry, http.Handler) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lumen.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	tel, err := telemetry.New(cfg)
	if err != nil {
		t.Fatalf("telemetry.New() error = %v", err)
	}

	requests := tel.Metrics().Counter("requests_total")
	latency := tel.Metrics().Histogram("request_seconds")

	mux := http.NewServeMux()
	tel.Mount(mux, "1.0.0", "abc123", "2026-08-30")
	mux.HandleFunc("/work", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		labels := map[string]string{"route": "/work"}

		err := tel.Tracer().Trace(r.Context(), "work", func(ctx context.Context, span *tracing.Span) error {
			span.SetAttribute("kind", "demo")
			if r.URL.Query().Get("fail") != "" {
				return errors.New("downstream unavailable")
			}
			return nil
		})

		requests.Inc(labels)
		latency.Observe(time.Since(start).Seconds(), labels)

		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		fmt.Fprintln(w, "ok")
	})

	return tel, tel.Middleware(mux)
}

const serviceYAML = `
service:
  name: "integration"
  environment: "production"

telemetry:
  logging:
    level: "error"
  tracing:
    enabled: true
    sampler: "always"
  metrics:
    enabled: true
    prefix: "svc"
`

func TestInstrumentedRequestFlow(t *testing.T) {
	_, handler := buildService(t, serviceYAML)

	// Drive a few requests, one of them failing.
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/work", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET /work status = %d", rec.Code)
		}
		if rec.Header().Get("X-Trace-ID") == "" {
			t.Error("sampled request missing X-Trace-ID header")
		}
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/work?fail=1", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("failing request status = %d, want 502", rec.Code)
	}

	// All four requests must land in the prefixed exposition.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	if !strings.Contains(body, `svc_requests_total{route="/work"} 4`) {
		t.Errorf("counter wrong in exposition:\n%s", body)
	}
	if !strings.Contains(body, `svc_request_seconds_count{route="/work"} 4`) {
		t.Errorf("histogram count wrong in exposition:\n%s", body)
	}
}

func TestTraceContextFlowsAcrossService(t *testing.T) {
	_, handler := buildService(t, serviceYAML)

	req := httptest.NewRequest(http.MethodGet, "/work", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Trace-ID"); got != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("X-Trace-ID = %q, inbound trace id not preserved", got)
	}
}

func TestUnsampledServiceStillCounts(t *testing.T) {
	yaml := strings.Replace(serviceYAML, `sampler: "always"`, `sampler: "never"`, 1)
	tel, handler := buildService(t, yaml)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/work", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /work status = %d", rec.Code)
	}
	// No span, no trace header -- but metrics still record.
	if rec.Header().Get("X-Trace-ID") != "" {
		t.Error("unsampled request carries a trace id")
	}
	if !strings.Contains(tel.Metrics().ToPrometheus(), `svc_requests_total{route="/work"} 1`) {
		t.Error("metrics lost for unsampled request")
	}
}

func TestReadinessReflectsComponentFailure(t *testing.T) {
	tel, handler := buildService(t, serviceYAML)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ready status = %d, want 200", rec.Code)
	}

	tel.Health().RegisterCheck("backend", func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("GET /ready with failing check status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "connection refused") {
		t.Errorf("readiness body missing failure detail:\n%s", rec.Body.String())
	}

	// Liveness stays green regardless.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", rec.Code)
	}
}

func TestSnapshotEndToEnd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")
	yaml := serviceYAML + fmt.Sprintf("  snapshot:\n    enabled: true\n    directory: %q\n", dir)

	tel, handler := buildService(t, yaml)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/work", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /work status = %d", rec.Code)
	}

	if err := tel.Snapshots().Snapshot(); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("snapshot dir entries = %v, err = %v", entries, err)
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if !strings.Contains(string(data), `svc_requests_total{route="/work"} 1`) {
		t.Errorf("snapshot content:\n%s", data)
	}
}
