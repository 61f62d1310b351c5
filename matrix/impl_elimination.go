// SPDX-License-Identifier: MIT
// Package matrix - Gaussian elimination and the algorithms built on it:
// row-echelon form, determinant, rank and Gauss-Jordan inversion.
//
// Purpose:
//   - One fraction-free elimination routine (echelon) with two hooks, onSwap
//     and onPivot, that let Det and Inverse record what elimination did.
//   - Results are cached on the Matrix (det, rank) and reused until a kernel
//     produces a new value.
//
// Numeric policy:
//   - Fraction-free (Bareiss) update
//     w[j][k] = (w[j][k]*p - mult*w[i][k]) / prev, prev being the previous
//     pivot (1 for the first). The division is exact for integer input, so
//     small integer matrices stay exact, and entries stay bounded by the
//     minors of the input instead of squaring at every column.
//   - Cancellation snapping: a result within eps of the magnitudes it was
//     computed from is stored as an exact zero (WithEpsilon; 0 disables).
//   - NaN and Inf propagate; there is no special handling.

package matrix

import "math"

// eliminationHooks observe elimination. Nil hooks are skipped.
type eliminationHooks struct {
	onSwap  func(r1, r2 int)         // a pivot-fixing row swap was applied
	onPivot func(row int, f float64) // row was scaled by f = p/prev while eliminated
}

// echelon reduces w in place to row-echelon form.
// MAIN DESCRIPTION:
//   - Walks columns left to right with a pivot row cursor. For each column it
//     first fixes the pivot (swap in the first row at or below the cursor that
//     holds a non-zero in this column) and then eliminates the column in every
//     row below.
//
// Implementation:
//   - Stage 1 (fixPivot): find the pivot row; a column without one is skipped
//     and the cursor stays put.
//   - Stage 2 (eliminateBelow): Bareiss update of rows below the cursor for
//     k >= column. Each updated row is reported to onPivot with its scale
//     factor p/prev.
//
// Behavior highlights:
//   - Works on rectangular matrices; rank-deficient columns are skipped.
//   - skipped reports whether any visited column had no pivot (det = 0 for a
//     square input).
//
// Complexity:
//   - Time O(r·c·min(r,c)) writes, Space O(1) beyond the storage.
func echelon(w representation, eps float64, h eliminationHooks) (skipped bool, err error) {
	d := w.dims()
	pivotRow, prev := 0, 1.0
	for col := 0; col < d.cols && pivotRow < d.rows; col++ {
		found, err := fixPivot(w, pivotRow, col, h)
		if err != nil {
			return skipped, err
		}
		if !found {
			skipped = true
			continue
		}
		if prev, err = eliminateBelow(w, pivotRow, col, prev, eps, h); err != nil {
			return skipped, err
		}
		pivotRow++
	}

	return skipped, nil
}

// fixPivot brings a non-zero into (row, col) by swapping with the first row
// below that has one. Reports false when the column is zero from row down.
func fixPivot(w representation, row, col int, h eliminationHooks) (bool, error) {
	rows := w.dims().rows
	for r := row; r < rows; r++ {
		v, _ := w.at(r, col)
		if v == 0 {
			continue
		}
		if r != row {
			if err := w.swapRows(row, r); err != nil {
				return false, err
			}
			if h.onSwap != nil {
				h.onSwap(row, r)
			}
		}

		return true, nil
	}

	return false, nil
}

// eliminateBelow zeroes column col under the pivot at (row, col) and returns
// the pivot, which becomes prev for the next column.
// A row whose multiplier is zero only needs the p/prev scaling; it is left
// untouched when that factor is 1.
func eliminateBelow(w representation, row, col int, prev, eps float64, h eliminationHooks) (float64, error) {
	d := w.dims()
	p, _ := w.at(row, col)
	for j := row + 1; j < d.rows; j++ {
		mult, _ := w.at(j, col)
		if mult == 0 && p == prev {
			continue
		}
		for k := col; k < d.cols; k++ {
			a, _ := w.at(j, k)
			b, _ := w.at(row, k)
			if err := w.modify(j, k, snap(a*p, mult*b, eps)/prev); err != nil {
				return p, err
			}
		}
		if h.onPivot != nil {
			h.onPivot(j, p/prev)
		}
	}

	return p, nil
}

// snap returns x-y, or exactly 0 when the difference is lost in rounding
// relative to the operands.
func snap(x, y, eps float64) float64 {
	v := x - y
	if eps > 0 && math.Abs(v) <= eps*math.Max(math.Abs(x), math.Abs(y)) {
		return 0
	}

	return v
}

// Gauss returns the row-echelon form of m.
// MAIN DESCRIPTION:
//   - Fraction-free elimination on a working copy; rows below each pivot are
//     scaled, so the result is row-equivalent to m but not normalized.
//
// Behavior highlights:
//   - Each update is the Bareiss step (a·p - m·b)/prev, prev being the
//     previous pivot (1 for the first). Entries below the first pivot row
//     therefore differ from the undivided a·p - m·b by that division:
//     [[2,1,1],[4,3,3],[8,7,9]] reduces to [[2,1,1],[0,2,2],[0,0,4]], not
//     [[2,1,1],[0,2,2],[0,0,8]].
//   - The result is re-optimized and starts with empty caches.
//
// Errors:
//   - ErrNilMatrix (wrapped "Gauss: ...").
//
// Complexity:
//   - Time O(r·c·min(r,c)), Space O(clone).
func Gauss(m *Matrix) (*Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opGauss, err)
	}

	res := m.derive(m.repr.clone())
	if _, err := echelon(res.repr, m.eps, eliminationHooks{}); err != nil {
		return nil, matrixErrorf(opGauss, err)
	}
	res.optimize()

	return res, nil
}

// Det returns the determinant of m, or (0, false) when m is not square
// (including nil and the zero Matrix value).
// MAIN DESCRIPTION:
//   - Eliminate a private copy while recording -1 per swap and the scale
//     factor of every eliminated row; det = sign · Π diag[j] / F[j], F[j] being
//     the product of the factors recorded for row j.
//
// Behavior highlights:
//   - A column without a pivot, or a recorded zero factor, gives exactly 0.
//   - Each diagonal entry is divided by its own row's factors before it joins
//     the product, so the running value stays near the determinant's size.
//   - The value is cached on m.
//   - Differences within the matrix epsilon of their operands snap to 0
//     (DefaultEpsilon = 1e-12 unless WithEpsilon says otherwise), so a
//     nearly singular input such as [[1,1],[1,1+5e-13]] reports det 0.
//     Build with WithEpsilon(0) to keep such tiny determinants.
//
// Complexity:
//   - Time O(n³) on first call, O(1) afterwards.
func Det(m *Matrix) (float64, bool) {
	if ValidateNotNil(m) != nil || m.Rows() != m.Cols() {
		return 0, false
	}
	if m.det != nil {
		return *m.det, true
	}

	det, _ := eliminationDet(m.repr.clone(), m.eps, nil)
	m.det = &det

	return det, true
}

// eliminationDet reduces the square w and returns its determinant. When
// swaps is non-nil every pivot-fixing swap is appended to it.
func eliminationDet(w representation, eps float64, swaps *[][2]int) (float64, error) {
	n := w.dims().rows
	factors := make([]float64, n) // per-row scale, moved along with swaps
	for i := range factors {
		factors[i] = 1
	}
	sign := 1.0
	zeroFactor := false
	h := eliminationHooks{
		onSwap: func(r1, r2 int) {
			sign = -sign
			factors[r1], factors[r2] = factors[r2], factors[r1]
			if swaps != nil {
				*swaps = append(*swaps, [2]int{r1, r2})
			}
		},
		onPivot: func(row int, f float64) {
			if f == 0 {
				zeroFactor = true
			}
			factors[row] *= f
		},
	}
	skipped, err := echelon(w, eps, h)
	if err != nil {
		return 0, err
	}
	if skipped || zeroFactor {
		return 0, nil
	}

	det := sign
	for i := 0; i < n; i++ {
		v, _ := w.at(i, i)
		det *= v / factors[i]
	}

	return det, nil
}

// Rank returns the number of non-zero rows of m's row-echelon form.
// A nil or zero-value matrix has rank 0. The value is cached on m.
// Pivots are subject to the same epsilon snapping as Det.
// Complexity: O(r·c·min(r,c)) on first call, O(1) afterwards.
func Rank(m *Matrix) int {
	if ValidateNotNil(m) != nil {
		return 0
	}
	if m.rank != nil {
		return *m.rank
	}

	w := m.repr.clone()
	if _, err := echelon(w, m.eps, eliminationHooks{}); err != nil {
		return 0 // unreachable: echelon only addresses cells in range
	}
	rank, last := 0, -1
	for e := range seq(w.begin(), w.end()) {
		if e.Row != last {
			rank++
			last = e.Row
		}
	}
	m.rank = &rank

	return rank
}

// Inverse returns m⁻¹ using Gauss-Jordan sweeps with deferred zero pivots.
// MAIN DESCRIPTION:
//   - Requires a square matrix with a non-zero determinant.
//
// Implementation:
//   - Stage 1: ValidateSquare; transpose the working copy when its whole
//     diagonal is zero (undone at the end).
//   - Stage 2: probe a second copy with elimination to record the pivot-fixing
//     swaps and the determinant; det == 0 fails with ErrSingular. The swaps
//     are replayed on the working copy, B = P·W.
//   - Stage 3: sweep every index from a FIFO queue. A zero pivot is re-queued
//     once; zero again on its second visit fails with ErrSingular. Per pivot
//     p with value v, in this order:
//     (1) column entries i != p are divided by -v;
//     (2) w[j][k] += w[p][k]*w[j][p] for j != p, k != p;
//     (3) row entries k != p are divided by v;
//     (4) w[p][p] = 1/v.
//   - Stage 4: W⁻¹ = B⁻¹·P, so the recorded swaps are undone as COLUMN swaps
//     in reverse order; then the transpose is undone and the result optimized.
//
// Behavior highlights:
//   - det(m) is cached on m; det(m⁻¹) = sign/Πpivots and rank n are cached on
//     the result.
//   - Singularity is decided by Det, so an input whose determinant snaps to 0
//     under the matrix epsilon fails with ErrSingular even when it is exactly
//     invertible. Use WithEpsilon(0) for such nearly singular inputs.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular (wrapped "Inverse: ...").
//
// Complexity:
//   - Time O(n³), Space O(two working copies).
func Inverse(m *Matrix) (*Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if m.det != nil && *m.det == 0 {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}

	n := m.Rows()
	w := m.repr.clone()
	transposed := diagonalIsZero(w)
	if transposed {
		w = transposeRepr(w)
	}

	// Stage 2: probe.
	var swaps [][2]int
	det, err := eliminationDet(w.clone(), m.eps, &swaps)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	if m.det == nil {
		m.det = &det
	}
	if det == 0 {
		return nil, matrixErrorf(opInverse, ErrSingular)
	}
	for _, s := range swaps {
		if err = w.swapRows(s[0], s[1]); err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
	}

	// Stage 3: sweeps.
	pivots, err := sweepAll(w, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	// Stage 4: undo.
	for i := len(swaps) - 1; i >= 0; i-- {
		if err = swapColumns(w, swaps[i][0], swaps[i][1]); err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
	}
	if transposed {
		w = transposeRepr(w)
	}

	res := m.derive(w)
	res.optimize()
	invDet := 1 / pivots
	if len(swaps)%2 == 1 {
		invDet = -invDet
	}
	rank := n
	res.det, res.rank = &invDet, &rank

	return res, nil
}

// sweepAll runs the deferred-pivot queue over w and returns the product of
// the pivots used.
func sweepAll(w representation, n int) (float64, error) {
	queue := make([]int, 0, n+n)
	for i := 0; i < n; i++ {
		queue = append(queue, i)
	}
	deferred := make([]bool, n)
	product := 1.0

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		v, _ := w.at(p, p)
		if v == 0 {
			if deferred[p] {
				return 0, ErrSingular
			}
			deferred[p] = true
			queue = append(queue, p)
			continue
		}
		product *= v
		if err := sweep(w, n, p, v); err != nil {
			return 0, err
		}
	}

	return product, nil
}

// sweep applies the four ordered steps for pivot index p with value v.
func sweep(w representation, n, p int, v float64) error {
	// (1) pivot column
	for i := 0; i < n; i++ {
		if i == p {
			continue
		}
		x, _ := w.at(i, p)
		if x == 0 {
			continue
		}
		if err := w.modify(i, p, x/-v); err != nil {
			return err
		}
	}
	// (2) everything off the pivot row and column
	for j := 0; j < n; j++ {
		if j == p {
			continue
		}
		f, _ := w.at(j, p)
		if f == 0 {
			continue
		}
		for k := 0; k < n; k++ {
			if k == p {
				continue
			}
			x, _ := w.at(p, k)
			if x == 0 {
				continue
			}
			if err := w.add(j, k, x*f); err != nil {
				return err
			}
		}
	}
	// (3) pivot row
	for k := 0; k < n; k++ {
		if k == p {
			continue
		}
		x, _ := w.at(p, k)
		if x == 0 {
			continue
		}
		if err := w.modify(p, k, x/v); err != nil {
			return err
		}
	}
	// (4) pivot
	return w.modify(p, p, 1/v)
}

// diagonalIsZero scans the main diagonal until the first non-zero.
func diagonalIsZero(w representation) bool {
	d := w.dims()
	n := min(d.rows, d.cols)
	for i := 0; i < n; i++ {
		if v, _ := w.at(i, i); v != 0 {
			return false
		}
	}

	return true
}

// transposeRepr returns a transposed copy of w of the same kind.
func transposeRepr(w representation) representation {
	d := w.dims()
	var out representation
	if w.kind() == KindDense {
		out, _ = newDenseRepr(d.cols, d.rows)
	} else {
		out, _ = newSparseRepr(d.cols, d.rows)
	}
	for e := range seq(w.begin(), w.end()) {
		_ = out.modify(e.Col, e.Row, e.Value) // in range by construction
	}

	return out
}

// swapColumns exchanges two columns through the capability set.
// Errors: ErrOutOfRange (wrapped) for a bad column index.
// Complexity: O(rows) reads and writes.
func swapColumns(w representation, c1, c2 int) error {
	if c1 == c2 {
		return nil
	}
	rows := w.dims().rows
	for i := 0; i < rows; i++ {
		a, ok1 := w.at(i, c1)
		b, ok2 := w.at(i, c2)
		if !ok1 || !ok2 {
			return reprErrorf(w.kind(), "swapColumns", c1, c2, ErrOutOfRange)
		}
		if a == b {
			continue
		}
		if err := w.modify(i, c1, b); err != nil {
			return err
		}
		if err := w.modify(i, c2, a); err != nil {
			return err
		}
	}

	return nil
}
