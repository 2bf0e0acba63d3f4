package health

import (
	"context"
	"testing"
	"time"
)

// BenchmarkCheckLiveness measures the liveness fast path.
func BenchmarkCheckLiveness(b *testing.B) {
	checker := New(0)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = checker.CheckLiveness(ctx)
	}
}

// BenchmarkCheckReadiness measures aggregation over several cheap checks.
func BenchmarkCheckReadiness(b *testing.B) {
	checker := New(time.Second)
	for _, name := range []string{"a", "b", "c", "d"} {
		checker.RegisterCheck(name, func(ctx context.Context) error { return nil })
	}
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = checker.CheckReadiness(ctx)
	}
}
