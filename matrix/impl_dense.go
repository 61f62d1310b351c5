// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the storage surface: out-of-range writes return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// AI-Hints:
//   - Dense keeps zeros; iteration skips them, so algorithms never see the difference.
//   - swapRows exchanges two row slices through a scratch copy; no reallocation.
//
// Complexity quicksheet:
//   - newDenseRepr: O(r*c) zero-init; at/add/modify: O(1); swapRows: O(c); clone: O(r*c).

package matrix

// denseRepr is the full row-major storage.
//   - d is the shared dimensions object (identity used by iterators).
//   - data is a flat buffer of length rows*cols (offset = i*cols + j).
type denseRepr struct {
	d    *Dimensions
	data []float64
}

// compile-time conformance
var _ representation = (*denseRepr)(nil)

// newDenseRepr allocates a zero-filled rows×cols dense storage.
// MAIN DESCRIPTION:
//   - Storage constructor with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0 via newDimensions.
//   - Stage 2: allocate zero-filled buffer (make() zero-fills deterministically).
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func newDenseRepr(rows, cols int) (*denseRepr, error) {
	d, err := newDimensions(rows, cols)
	if err != nil {
		return nil, err
	}

	return &denseRepr{d: d, data: make([]float64, rows*cols)}, nil
}

func (m *denseRepr) dims() *Dimensions { return m.d }

func (m *denseRepr) kind() Kind { return KindDense }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// The sentinel is returned bare; public methods wrap it with coordinates.
// Complexity: O(1).
func (m *denseRepr) indexOf(row, col int) (int, error) {
	if !m.d.contains(row, col) {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.d.cols + col, nil
}

// at returns the stored value; ok is false outside the grid.
func (m *denseRepr) at(row, col int) (float64, bool) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, false
	}

	return m.data[off], true
}

// add accumulates delta into (row, col).
// Errors: ErrOutOfRange wrapped as "Dense.add(r,c)".
func (m *denseRepr) add(row, col int, delta float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return reprErrorf(KindDense, ctxAdd, row, col, err)
	}
	m.data[off] += delta

	return nil
}

// modify overwrites (row, col) with v; zeros are stored like any value.
// Errors: ErrOutOfRange wrapped as "Dense.modify(r,c)".
func (m *denseRepr) modify(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return reprErrorf(KindDense, ctxModify, row, col, err)
	}
	m.data[off] = v

	return nil
}

// swapRows exchanges rows r1 and r2 in place.
// MAIN DESCRIPTION:
//   - Validate both rows, then swap the two row windows of the flat buffer.
//
// Behavior highlights:
//   - r1 == r2 is a valid no-op.
//   - No partial mutation: both indices are checked before touching data.
//
// Complexity:
//   - Time O(c), Space O(1) beyond the loop temporaries.
func (m *denseRepr) swapRows(r1, r2 int) error {
	if r1 < 0 || r1 >= m.d.rows {
		return reprErrorf(KindDense, ctxSwapRows, r1, r2, ErrOutOfRange)
	}
	if r2 < 0 || r2 >= m.d.rows {
		return reprErrorf(KindDense, ctxSwapRows, r1, r2, ErrOutOfRange)
	}
	if r1 == r2 {
		return nil
	}

	cols := m.d.cols
	a := m.data[r1*cols : (r1+1)*cols]
	b := m.data[r2*cols : (r2+1)*cols]
	for j := 0; j < cols; j++ { // element-wise swap keeps one buffer
		a[j], b[j] = b[j], a[j]
	}

	return nil
}

// nonZero counts cells that are not exactly zero. O(r*c).
func (m *denseRepr) nonZero() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}

	return n
}

// isEfficient: Dense is the right choice only while the matrix holds more
// non-zeros than the sparse threshold allows.
func (m *denseRepr) isEfficient(ratio float64) bool {
	return float64(m.nonZero()) > sparseThreshold(ratio, m.d)
}

func (m *denseRepr) begin() *Iterator {
	return &Iterator{dims: m.d, cur: newDenseCursor(m.d, m.data, 0)}
}

func (m *denseRepr) end() *Iterator {
	return &Iterator{dims: m.d, cur: newDenseCursor(m.d, m.data, len(m.data))}
}

// clone returns an independent copy with its own Dimensions object, so
// iterators over the clone never compare equal to iterators over m.
// Complexity: O(r*c).
func (m *denseRepr) clone() representation {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)
	d := *m.d

	return &denseRepr{d: &d, data: cp}
}
