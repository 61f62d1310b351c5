// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for storage selection and numeric
// policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that resolves the effective Factory.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - The sparsity ratio is the fraction of zero cells at or above which the
//     Sparse representation is preferred. It is carried by every Matrix (inside
//     its Factory) and inherited by results of algebra on that Matrix (left
//     operand wins for binary kernels).
//   - Epsilon drives cancellation snapping during elimination only. It never
//     changes what At returns for values written by callers.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSparseRatio is the sparsity ratio used when no option overrides it.
	// A matrix with at least half of its cells equal to zero is stored sparse.
	DefaultSparseRatio = 0.5

	// DefaultEpsilon is the relative cancellation tolerance used by elimination:
	// a freshly computed a*p - m*b whose magnitude is at most
	// eps*max(|a*p|, |m*b|) is stored as an exact zero. Zero disables snapping.
	DefaultEpsilon = 1e-12
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicSparseRatioInvalid = "matrix: WithSparseRatio: ratio must be finite and within [0,1]"
	panicEpsilonInvalid     = "matrix: WithEpsilon: eps must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	ratio float64 // sparsity ratio in [0,1]; DefaultSparseRatio
	eps   float64 // >= 0; DefaultEpsilon
}

// WithSparseRatio sets the sparsity ratio used by the storage Factory.
// Implementation:
//   - Stage 1: validate ratio is finite and within [0,1].
//   - Stage 2: return a setter that writes ratio into Options.
//
// Behavior highlights:
//   - 0 makes every matrix sparse, 1 keeps only all-zero matrices sparse.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Feed the value from config.Config.SparseRatio; use NewFactory when the
//     value comes from untrusted input and an error is preferable to a panic.
func WithSparseRatio(ratio float64) Option {
	if !validRatio(ratio) {
		panic(panicSparseRatioInvalid)
	}

	return func(o *Options) { o.ratio = ratio }
}

// WithFactory copies the ratio of an existing Factory, typically the one an
// operand was built with.
func WithFactory(f Factory) Option {
	return func(o *Options) { o.ratio = f.ratio }
}

// WithEpsilon sets the relative cancellation tolerance used by elimination.
// Panics when eps is negative, NaN or infinite.
// Complexity: O(1).
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// defaultOptions returns the zero-configuration baseline.
func defaultOptions() Options {
	return Options{ratio: DefaultSparseRatio, eps: DefaultEpsilon}
}

// gatherOptions applies setters on top of defaults, skipping nil entries.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// validRatio reports whether r is a usable sparsity ratio.
func validRatio(r float64) bool {
	return !math.IsNaN(r) && r >= 0 && r <= 1
}
