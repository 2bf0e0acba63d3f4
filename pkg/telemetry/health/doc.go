// Package health provides liveness and readiness probes for services
// instrumented with Lumen.
//
// # Overview
//
// A Checker aggregates named component checks. Liveness answers instantly
// (a process that can answer is alive); readiness runs every registered
// check concurrently, each bounded by the configured timeout, and degrades
// when any component is unhealthy.
//
// # Usage
//
//	checker := health.New(5 * time.Second)
//	checker.RegisterCheck("snapshots", health.WritableDirectoryCheck("data/snapshots"))
//	checker.RegisterCheck("tracer", health.ActiveSpanCheck(tracer, 10_000))
//	checker.RegisterCheck("metrics", health.RegistryCheck(registry))
//
//	mux := http.NewServeMux()
//	checker.Mount(mux, health.MountOptions{Version: "1.0.0"})
//
// # Responses
//
// Readiness response while degraded:
//
//	{
//	    "status": "degraded",
//	    "checks": {
//	        "snapshots": {"status": "ok"},
//	        "tracer": {"status": "unhealthy", "message": "12041 active spans exceeds limit of 10000"}
//	    },
//	    "timestamp": "2026-08-30T10:30:00Z"
//	}
//
// Degraded readiness answers HTTP 503 so orchestrators stop routing
// traffic; liveness stays 200 so the process is not restarted for a
// recoverable condition.
package health
