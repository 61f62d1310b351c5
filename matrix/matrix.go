// SPDX-License-Identifier: MIT

// Package matrix - the public Matrix value type.
//
// What & Why:
//
//	Matrix owns exactly one storage representation (Dense or Sparse) and the
//	Factory that picked it. Every algebra kernel reads and writes through the
//	representation's capability set and ends with an explicit optimize() step
//	that lets the Factory swap the storage kind when density changed.
//
// Ownership:
//
//	A Matrix never shares storage with another Matrix. Clone is the deep copy;
//	kernels always work on clones and return fresh values, so a failed
//	operation leaves its operands untouched.
//
// Caches:
//
//	Det and Rank memoize their result on the receiver. Results of kernels that
//	can change either value start with empty caches.
//
// Concurrency:
//
//	A Matrix is not safe for concurrent use (Det/Rank write their cache).
//	Distinct matrices share nothing and may be used from different goroutines.
package matrix

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "[ "
	_fmtRowClose = " ]"
	_fmtSep      = ", "
)

// Matrix is a two-dimensional float64 matrix with automatic storage selection.
type Matrix struct {
	repr    representation
	factory Factory
	eps     float64  // elimination cancellation tolerance
	det     *float64 // cached determinant (square only)
	rank    *int     // cached rank
}

// wrap builds a Matrix around repr with the resolved options.
func wrap(repr representation, o Options) *Matrix {
	return &Matrix{repr: repr, factory: Factory{ratio: o.ratio}, eps: o.eps}
}

// derive returns an empty-cache Matrix around repr that inherits m's policy.
func (m *Matrix) derive(repr representation) *Matrix {
	return &Matrix{repr: repr, factory: m.factory, eps: m.eps}
}

// New returns a rows×cols zero matrix.
// Errors: ErrInvalidDimensions when rows or cols is not positive.
// Complexity: O(1) (zero matrices start sparse).
func New(rows, cols int, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	repr, err := Factory{ratio: o.ratio}.initialZero(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("New(%d,%d): %w", rows, cols, err)
	}

	return wrap(repr, o), nil
}

// NewFromRows builds a matrix from a nested-list literal; the storage kind is
// chosen by counting zeros against the sparsity ratio.
// MAIN DESCRIPTION:
//   - Rows become matrix rows; every row must have the same non-zero length.
//
// Errors:
//   - ErrBadShape for empty or ragged input.
//
// Complexity:
//   - Time O(r*c), Space O(chosen storage).
//
// AI-Hints:
//   - The input slices are copied; later edits to rows do not leak in.
func NewFromRows(rows [][]float64, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	repr, err := Factory{ratio: o.ratio}.initialRows(rows)
	if err != nil {
		return nil, fmt.Errorf("NewFromRows: %w", err)
	}

	return wrap(repr, o), nil
}

// NewFromRange rematerializes the elements of [begin, end) into a matrix of
// the iterators' source dimensions. Used by importers and by callers that
// rebuild a matrix from another one's element stream.
// Errors: ErrNilMatrix, ErrIteratorMismatch.
// Complexity: O(n) count + O(n log n) worst-case replay.
func NewFromRange(begin, end *Iterator, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts...)
	repr, err := Factory{ratio: o.ratio}.initialRange(begin, end)
	if err != nil {
		return nil, fmt.Errorf("NewFromRange: %w", err)
	}

	return wrap(repr, o), nil
}

// NewScalar wraps v in a 1×1 matrix (always Sparse).
func NewScalar(v float64, opts ...Option) *Matrix {
	o := gatherOptions(opts...)

	return wrap(Factory{ratio: o.ratio}.initialScalar(v), o)
}

// NewIdentity returns the n×n identity matrix I_n.
// Errors: ErrInvalidDimensions when n <= 0.
// Complexity: O(n log n) (sparse diagonal), converted to Dense for tiny n.
func NewIdentity(n int, opts ...Option) (*Matrix, error) {
	m, err := New(n, n, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewIdentity: %w", err)
	}
	for i := 0; i < n; i++ {
		_ = m.repr.modify(i, i, 1) // in range by construction
	}
	m.optimize()
	one, r := 1.0, n
	m.det, m.rank = &one, &r

	return m, nil
}

// Rows returns the number of rows; 0 for a nil or zero-value Matrix. O(1).
func (m *Matrix) Rows() int {
	if m == nil || m.repr == nil {
		return 0
	}

	return m.repr.dims().rows
}

// Cols returns the number of columns; 0 for a nil or zero-value Matrix. O(1).
func (m *Matrix) Cols() int {
	if m == nil || m.repr == nil {
		return 0
	}

	return m.repr.dims().cols
}

// Dims returns a copy of the matrix dimensions. O(1).
func (m *Matrix) Dims() Dimensions { return *m.repr.dims() }

// Factory returns the storage factory this matrix was built with.
func (m *Matrix) Factory() Factory { return m.factory }

// At returns the value at (row, col).
// Errors: ErrNilMatrix, ErrOutOfRange (wrapped with coordinates).
// Complexity: O(1) dense, O(log nnz) sparse.
func (m *Matrix) At(row, col int) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, fmt.Errorf("At(%d,%d): %w", row, col, err)
	}
	v, ok := m.repr.at(row, col)
	if !ok {
		return 0, fmt.Errorf("At(%d,%d): %w", row, col, ErrOutOfRange)
	}

	return v, nil
}

// at is the internal unchecked read used by kernels that loop inside bounds.
func (m *Matrix) at(row, col int) float64 {
	v, _ := m.repr.at(row, col)

	return v
}

// NonZero counts the non-zero elements by walking the iteration protocol.
func (m *Matrix) NonZero() int { return m.Begin().Distance(m.End()) }

// Begin returns an iterator at the first non-zero element (row-major).
func (m *Matrix) Begin() *Iterator { return m.repr.begin() }

// End returns the past-the-end iterator of m.
func (m *Matrix) End() *Iterator { return m.repr.end() }

// All yields the non-zero elements in row-major order.
//
//	for e := range m.All() { fmt.Println(e.Row, e.Col, e.Value) }
func (m *Matrix) All() iter.Seq[Element] { return seq(m.Begin(), m.End()) }

// Clone returns a deep copy, caches included.
// Complexity: O(r*c) dense, O(1) sparse (copy-on-write tree).
func (m *Matrix) Clone() *Matrix {
	cp := &Matrix{repr: m.repr.clone(), factory: m.factory, eps: m.eps}
	if m.det != nil {
		d := *m.det
		cp.det = &d
	}
	if m.rank != nil {
		r := *m.rank
		cp.rank = &r
	}

	return cp
}

// optimize is the post-operation hook: ask the Factory whether the storage
// kind should change and adopt the (possibly identical) result.
func (m *Matrix) optimize() {
	if repr, changed := m.factory.convert(m.repr); changed {
		m.repr = repr
	}
}

// invalidate clears the determinant and rank caches.
func (m *Matrix) invalidate() {
	m.det, m.rank = nil, nil
}

// String renders rows as "[ a, b ]" lines; a 1×1 matrix renders as its value.
// Complexity: O(r*c).
func (m *Matrix) String() string {
	if m.Rows() == 1 && m.Cols() == 1 {
		return formatValue(m.at(0, 0))
	}

	var b strings.Builder
	rows, cols := m.Rows(), m.Cols()
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(_fmtRowOpen)
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteString(_fmtSep)
			}
			b.WriteString(formatValue(m.at(i, j)))
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// formatValue prints the shortest representation that round-trips.
func formatValue(v float64) string {
	if v == 0 {
		v = 0 // normalize -0
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
