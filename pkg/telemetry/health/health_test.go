package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"mercator-hq/lumen/pkg/telemetry/metrics"
	"mercator-hq/lumen/pkg/telemetry/tracing"
)

func TestCheckLiveness(t *testing.T) {
	checker := New(0)

	status := checker.CheckLiveness(context.Background())
	if status.Status != StatusOK {
		t.Errorf("liveness status = %q, want %q", status.Status, StatusOK)
	}
	if status.Timestamp.IsZero() {
		t.Error("liveness timestamp is zero")
	}
}

func TestCheckReadiness_NoChecks(t *testing.T) {
	checker := New(0)

	status := checker.CheckReadiness(context.Background())
	if status.Status != StatusReady {
		t.Errorf("status = %q, want %q", status.Status, StatusReady)
	}
}

func TestCheckReadiness_AllHealthy(t *testing.T) {
	checker := New(time.Second)
	checker.RegisterCheck("a", func(ctx context.Context) error { return nil })
	checker.RegisterCheck("b", func(ctx context.Context) error { return nil })

	status := checker.CheckReadiness(context.Background())
	if status.Status != StatusReady {
		t.Errorf("status = %q, want %q", status.Status, StatusReady)
	}
	if len(status.Checks) != 2 {
		t.Errorf("got %d check results, want 2", len(status.Checks))
	}
	for name, result := range status.Checks {
		if result.Status != StatusOK {
			t.Errorf("check %q status = %q", name, result.Status)
		}
	}
}

func TestCheckReadiness_UnhealthyComponentDegrades(t *testing.T) {
	checker := New(time.Second)
	checker.RegisterCheck("good", func(ctx context.Context) error { return nil })
	checker.RegisterCheck("bad", func(ctx context.Context) error { return errors.New("backend gone") })

	status := checker.CheckReadiness(context.Background())
	if status.Status != StatusDegraded {
		t.Errorf("status = %q, want %q", status.Status, StatusDegraded)
	}
	if status.Checks["bad"].Message != "backend gone" {
		t.Errorf("bad check message = %q", status.Checks["bad"].Message)
	}
	if status.Checks["good"].Status != StatusOK {
		t.Errorf("good check status = %q", status.Checks["good"].Status)
	}
}

func TestCheckReadiness_Timeout(t *testing.T) {
	checker := New(50 * time.Millisecond)
	checker.RegisterCheck("slow", func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	start := time.Now()
	status := checker.CheckReadiness(context.Background())
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("readiness took %v despite 50ms check timeout", elapsed)
	}

	if status.Status != StatusDegraded {
		t.Errorf("status = %q, want %q", status.Status, StatusDegraded)
	}
}

func TestRegisterUnregister(t *testing.T) {
	checker := New(0)
	checker.RegisterCheck("a", func(ctx context.Context) error { return nil })
	checker.RegisterCheck("b", func(ctx context.Context) error { return nil })

	if checker.CheckCount() != 2 {
		t.Errorf("CheckCount() = %d, want 2", checker.CheckCount())
	}

	names := checker.ListChecks()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("ListChecks() = %v", names)
	}

	checker.UnregisterCheck("a")
	if checker.CheckCount() != 1 {
		t.Errorf("CheckCount() after unregister = %d, want 1", checker.CheckCount())
	}
}

func TestWritableDirectoryCheck(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "snaps")

	check := WritableDirectoryCheck(dir)
	if err := check(context.Background()); err != nil {
		t.Errorf("check failed for creatable directory: %v", err)
	}

	// The probe file must not linger.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("probe left %d files behind", len(entries))
	}
}

func TestActiveSpanCheck(t *testing.T) {
	tracer, err := tracing.New(tracing.Config{Service: "test"})
	if err != nil {
		t.Fatalf("tracing.New() error = %v", err)
	}

	check := ActiveSpanCheck(tracer, 1)
	if err := check(context.Background()); err != nil {
		t.Errorf("check failed with no active spans: %v", err)
	}

	s1 := tracer.StartSpan("one")
	s2 := tracer.StartSpan("two")
	if err := check(context.Background()); err == nil {
		t.Error("check passed with active spans above the limit")
	}

	s1.End()
	s2.End()
	if err := check(context.Background()); err != nil {
		t.Errorf("check failed after spans ended: %v", err)
	}

	if err := ActiveSpanCheck(nil, 1)(context.Background()); err == nil {
		t.Error("nil tracer accepted")
	}
}

func TestRegistryCheck(t *testing.T) {
	registry, err := metrics.New(metrics.Config{Service: "test"})
	if err != nil {
		t.Fatalf("metrics.New() error = %v", err)
	}

	if err := RegistryCheck(registry)(context.Background()); err != nil {
		t.Errorf("check failed for live registry: %v", err)
	}
	if err := RegistryCheck(nil)(context.Background()); err == nil {
		t.Error("nil registry accepted")
	}
}

func TestLivenessHandler(t *testing.T) {
	checker := New(0)

	rec := httptest.NewRecorder()
	checker.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var status Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if status.Status != StatusOK {
		t.Errorf("body status = %q", status.Status)
	}
}

func TestReadinessHandler_Degraded(t *testing.T) {
	checker := New(time.Second)
	checker.RegisterCheck("bad", func(ctx context.Context) error { return errors.New("down") })

	rec := httptest.NewRecorder()
	checker.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestHandlers_RejectNonGet(t *testing.T) {
	checker := New(0)

	rec := httptest.NewRecorder()
	checker.LivenessHandler()(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /health status = %d, want 405", rec.Code)
	}
}

func TestMount(t *testing.T) {
	checker := New(0)
	mux := http.NewServeMux()
	checker.Mount(mux, MountOptions{
		LivenessPath:  "/livez",
		ReadinessPath: "/readyz",
		Version:       "1.2.3",
		Commit:        "abc123",
	})

	for _, path := range []string{"/livez", "/readyz", "/version"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	var info VersionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decoding version: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" {
		t.Errorf("version info = %+v", info)
	}
	if info.GoVersion == "" {
		t.Error("go version missing")
	}
}
