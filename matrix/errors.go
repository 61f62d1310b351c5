// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All algorithms MUST return these sentinels (possibly wrapped with
// call-site context) and tests MUST check them via errors.Is. No algorithm
// panics on user-triggered error conditions; panics are reserved for
// programmer errors in option constructors.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Kernels wrap these sentinels with an operation
// tag ("Mul: matrix: dimension mismatch"), callers still match with errors.Is.
//
// TAXONOMY:
//   bounds          -> ErrOutOfRange
//   shape mismatch  -> ErrDimensionMismatch, ErrBadShape, ErrInvalidDimensions
//   singularity     -> ErrNonSquare, ErrSingular
//   undefined det   -> not an error: Det reports (0, false)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrBadShape is returned for malformed shapes: ragged or empty literals,
	// negative offsets and non-positive window sizes in Cut.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Storage writes (add/modify/swapRows) and Matrix.At return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Add/Sub of different shapes, Mul where a.Cols != b.Rows, Unite with
	// different column counts or a Cut window that leaves the source.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrSingular is returned when a matrix is not invertible: its determinant
	// is known to be zero or a zero pivot survives deferral during inversion.
	ErrSingular = errors.New("matrix: matrix is not invertible")

	// ErrInvalidRatio is returned when a sparsity ratio is NaN or outside [0,1].
	ErrInvalidRatio = errors.New("matrix: sparsity ratio must be within [0,1]")

	// ErrNilMatrix indicates that a nil *Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNotScalar is returned when a 1×1 matrix holding a non-negative
	// integer was required (CutBy arguments).
	ErrNotScalar = errors.New("matrix: expected a 1x1 non-negative integer")

	// ErrIteratorMismatch is returned when a begin/end pair does not describe
	// a range over the same source (different dimensions objects).
	ErrIteratorMismatch = errors.New("matrix: iterators belong to different matrices")
)
