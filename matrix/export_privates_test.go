// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for storage internals.
//
// Purpose:
//   - Expose the storage kind and forced conversions to matrix_test ONLY, so
//     round-trip tests can prove that the kind is not observable.
//   - File name ends in _test.go: it is compiled only with the test binary.
//
// Provided Surface:
//   - KindOf_TestOnly: the current storage kind of a Matrix.
//   - ForceKind_TestOnly: rebuild the storage as the requested kind, bypassing
//     the Factory's efficiency decision.
//   - Panic message exports to avoid "magic strings" in tests.

// Panic message exports.
const (
	PanicSparseRatioInvalid_TestOnly = panicSparseRatioInvalid
	PanicEpsilonInvalid_TestOnly     = panicEpsilonInvalid
)

// KindOf_TestOnly reports the storage kind backing m.
func KindOf_TestOnly(m *Matrix) Kind { return m.repr.kind() }

// ForceKind_TestOnly returns a copy of m stored as k, whatever the ratio says.
func ForceKind_TestOnly(m *Matrix, k Kind) *Matrix {
	var (
		out representation
		err error
	)
	if k == KindDense {
		out, err = newDenseRepr(m.Rows(), m.Cols())
	} else {
		out, err = newSparseRepr(m.Rows(), m.Cols())
	}
	if err != nil {
		panic(err)
	}
	if err = replay(out, m.Begin(), m.End()); err != nil {
		panic(err)
	}

	return m.derive(out)
}

// Optimize_TestOnly runs the post-operation hook on m.
func Optimize_TestOnly(m *Matrix) { m.optimize() }

// SwapRows_TestOnly swaps two rows of m's storage in place.
func SwapRows_TestOnly(m *Matrix, r1, r2 int) error { return m.repr.swapRows(r1, r2) }

// Modify_TestOnly overwrites one cell of m's storage in place.
func Modify_TestOnly(m *Matrix, row, col int, v float64) error { return m.repr.modify(row, col, v) }

// AddAt_TestOnly accumulates into one cell of m's storage in place.
func AddAt_TestOnly(m *Matrix, row, col int, delta float64) error { return m.repr.add(row, col, delta) }

// StoredNonZero_TestOnly is the representation's own non-zero count.
func StoredNonZero_TestOnly(m *Matrix) int { return m.repr.nonZero() }

// SwapColumns_TestOnly exposes the inverse's column-swap helper.
func SwapColumns_TestOnly(m *Matrix, c1, c2 int) error { return swapColumns(m.repr, c1, c2) }

// Epsilon_TestOnly returns the elimination tolerance carried by m.
func Epsilon_TestOnly(m *Matrix) float64 { return m.eps }

// HasCachedDet_TestOnly reports whether m carries a determinant cache.
func HasCachedDet_TestOnly(m *Matrix) bool { return m.det != nil }

// SweepInverse_TestOnly runs only the deferred-pivot sweep queue on a copy of
// m (no transpose, no swap recording) and returns the result with the product
// of pivots.
func SweepInverse_TestOnly(m *Matrix) (*Matrix, float64, error) {
	w := m.repr.clone()
	prod, err := sweepAll(w, m.Rows())
	if err != nil {
		return nil, 0, err
	}

	return m.derive(w), prod, nil
}
