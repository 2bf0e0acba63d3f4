package tracing

import (
	"fmt"
	"math/rand/v2"
)

// Sampling strategies determine which StartSpan calls produce a real span.
// Three strategies are supported:
//   - always: accept every call (development/debugging, the default)
//   - never: accept no calls (tracing effectively disabled)
//   - ratio: accept a fraction of root calls (production)
//
// The decision is drawn once per root span; spans created with a parent
// follow the parent's decision so a trace is sampled uniformly.
const (
	// SamplerAlways samples every call.
	SamplerAlways = "always"

	// SamplerNever samples no calls.
	SamplerNever = "never"

	// SamplerRatio samples a fraction of root calls.
	SamplerRatio = "ratio"
)

// samplerFunc draws one sampling decision.
type samplerFunc func() bool

// newSampler creates a sampler for the given strategy. The ratio is only
// consulted for the "ratio" strategy and must lie in [0.0, 1.0].
func newSampler(strategy string, ratio float64) (samplerFunc, error) {
	switch strategy {
	case SamplerAlways:
		return func() bool { return true }, nil

	case SamplerNever:
		return func() bool { return false }, nil

	case SamplerRatio:
		if ratio < 0.0 || ratio > 1.0 {
			return nil, fmt.Errorf("sample rate must be between 0.0 and 1.0, got %f", ratio)
		}
		// Endpoints behave intuitively: 0 never accepts, 1 always accepts.
		if ratio == 0 {
			return func() bool { return false }, nil
		}
		if ratio == 1 {
			return func() bool { return true }, nil
		}
		return func() bool { return rand.Float64() < ratio }, nil

	default:
		return nil, fmt.Errorf("unknown sampler strategy: %s (valid: always, never, ratio)", strategy)
	}
}

// ValidateSampler validates a sampler strategy and ratio pair without
// constructing the sampler. Used by configuration validation.
func ValidateSampler(strategy string, ratio float64) error {
	switch strategy {
	case "", SamplerAlways, SamplerNever:
		return nil
	case SamplerRatio:
		if ratio < 0.0 || ratio > 1.0 {
			return fmt.Errorf("sample rate must be between 0.0 and 1.0, got %f", ratio)
		}
		return nil
	default:
		return fmt.Errorf("invalid sampler strategy: %s (valid: always, never, ratio)", strategy)
	}
}
