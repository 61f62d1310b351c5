// SPDX-License-Identifier: MIT
// Package matrix provides the algebra kernels over *Matrix: element-wise
// addition and subtraction, scalar and matrix multiplication, transpose,
// vertical concatenation (Unite) and sub-matrix extraction (Cut).
//
// Purpose:
//   - Write every kernel ONCE against the storage capability set and the
//     iteration protocol; no kernel branches on the storage kind.
//   - Define operation tags and the shared error wrapper.
//
// Notes:
//   - Every kernel validates first, works on a fresh representation and ends
//     with optimize(); operands are never mutated.
//   - Binary results inherit the LEFT operand's Factory and epsilon.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opScale     = "Scale"
	opTranspose = "Transpose"
	opUnite     = "Unite"
	opCut       = "Cut"
	opCutBy     = "CutBy"
	opEqual     = "Equal"
	opAllClose  = "AllClose"
	opGauss     = "Gauss"
	opInverse   = "Inverse"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// The wrapper keeps a stable "Op: underlying" shape for uniform reporting across facades.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
//
// Behavior highlights:
//   - Preserves the underlying sentinel for errors.Is/errors.As.
//
// AI-Hints:
//   - Always gate calls with `if err != nil { return nil, matrixErrorf(tag, err) }`.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1}.
// Implementation:
//   - Stage 1: ValidateSameShape(a, b).
//   - Stage 2: clone a, then add sign*v for every non-zero element of b.
//   - Stage 3: re-optimize; the clone's caches are dropped.
//
// Behavior highlights:
//   - Cost follows b's non-zero count, not its cell count.
//   - Inputs remain immutable.
//
// Complexity:
//   - Time O(clone(a) + nnz(b)·write), Space O(result).
func addSub(a, b *Matrix, sign float64, opTag string) (*Matrix, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	res := a.Clone()
	res.invalidate()
	for e := range b.All() {
		if err := res.repr.add(e.Row, e.Col, sign*e.Value); err != nil {
			return nil, matrixErrorf(opTag, err)
		}
	}
	res.optimize()

	return res, nil
}

// Add returns a + b.
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped "Add: ...").
func Add(a, b *Matrix) (*Matrix, error) { return addSub(a, b, 1, opAdd) }

// Sub returns a - b.
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped "Sub: ...").
func Sub(a, b *Matrix) (*Matrix, error) { return addSub(a, b, -1, opSub) }

// Scale returns alpha*m.
// Implementation:
//   - Clone m and overwrite each non-zero element with alpha*value. Elements
//     are read from m, so writes into the clone never disturb the walk.
//
// Behavior highlights:
//   - alpha == 0 yields an all-zero matrix (Sparse after optimize).
//
// Complexity:
//   - Time O(clone + nnz·write), Space O(result).
func Scale(m *Matrix, alpha float64) (*Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	res := m.Clone()
	res.invalidate()
	for e := range m.All() {
		if err := res.repr.modify(e.Row, e.Col, alpha*e.Value); err != nil {
			return nil, matrixErrorf(opScale, err)
		}
	}
	res.optimize()

	return res, nil
}

// Mul returns the matrix product a·b.
// MAIN DESCRIPTION:
//   - A 1×1 operand on either side is a scalar: the other operand is scaled.
//   - Otherwise a.Cols() must equal b.Rows(); the product is accumulated into
//     a Dense zero buffer of shape (a.Rows, b.Cols) and re-optimized, since a
//     product of sparse operands is often sparse itself.
//
// Implementation:
//   - Stage 1: ValidateNotNil both; scalar short-circuit.
//   - Stage 2: ValidateMulCompatible.
//   - Stage 3: i→k→j loop; rows of a are walked once and zero a[i][k] skip the
//     inner loop. Each out[i][j] still sums k = 0..n-1 in order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped "Mul: ...").
//
// Determinism:
//   - Fixed loop order; small integers multiply exactly.
//
// Complexity:
//   - Time O(r·n·c) worst case, Space O(r·c).
func Mul(a, b *Matrix) (*Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	// Scalar operands.
	if isScalarShape(a) || isScalarShape(b) {
		scalar, other := a, b
		if !isScalarShape(a) {
			scalar, other = b, a
		}
		res, err := Scale(other, scalar.at(0, 0))
		if err != nil {
			return nil, matrixErrorf(opMul, err)
		}
		res.factory, res.eps = a.factory, a.eps
		res.optimize()

		return res, nil
	}

	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	out, err := zeroDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	for i := 0; i < rows; i++ {
		for k := 0; k < inner; k++ {
			aik := a.at(i, k)
			if aik == 0 {
				continue
			}
			for j := 0; j < cols; j++ {
				bkj := b.at(k, j)
				if bkj == 0 {
					continue
				}
				if err = out.add(i, j, aik*bkj); err != nil {
					return nil, matrixErrorf(opMul, err)
				}
			}
		}
	}

	res := a.derive(out)
	res.optimize()

	return res, nil
}

// isScalarShape reports whether m is 1×1.
func isScalarShape(m *Matrix) bool { return m.Rows() == 1 && m.Cols() == 1 }

// Transpose returns mᵀ.
// Implementation:
//   - Allocate the same storage kind with swapped dimensions and write every
//     non-zero (r,c,v) to (c,r). The non-zero count and cell count do not
//     change, so the kind stays efficient.
//
// Behavior highlights:
//   - det and rank are transpose-invariant; cached values are carried over.
//
// Complexity:
//   - Time O(nnz·write), Space O(result).
func Transpose(m *Matrix) (*Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var (
		out representation
		err error
	)
	if m.repr.kind() == KindDense {
		out, err = newDenseRepr(m.Cols(), m.Rows())
	} else {
		out, err = newSparseRepr(m.Cols(), m.Rows())
	}
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	for e := range m.All() {
		if err = out.modify(e.Col, e.Row, e.Value); err != nil {
			return nil, matrixErrorf(opTranspose, err)
		}
	}

	res := m.derive(out)
	if m.det != nil {
		d := *m.det
		res.det = &d
	}
	if m.rank != nil {
		r := *m.rank
		res.rank = &r
	}
	res.optimize()

	return res, nil
}

// Unite stacks b under a (vertical concatenation).
// MAIN DESCRIPTION:
//   - Result is (a.Rows+b.Rows)×cols; a's elements keep their positions, b's
//     are shifted down by a.Rows.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch when column counts differ.
//
// Complexity:
//   - Time O((nnz(a)+nnz(b))·write), Space O(result).
func Unite(a, b *Matrix) (*Matrix, error) {
	if err := ValidateSameCols(a, b); err != nil {
		return nil, matrixErrorf(opUnite, err)
	}

	out, err := a.factory.initialZero(a.Rows()+b.Rows(), a.Cols())
	if err != nil {
		return nil, matrixErrorf(opUnite, err)
	}
	if err = replay(out, a.Begin(), a.End()); err != nil {
		return nil, matrixErrorf(opUnite, err)
	}
	shift := a.Rows()
	for e := range b.All() {
		if err = out.modify(e.Row+shift, e.Col, e.Value); err != nil {
			return nil, matrixErrorf(opUnite, err)
		}
	}

	res := a.derive(out)
	res.optimize()

	return res, nil
}

// Cut extracts the newRows×newCols window whose top-left corner sits at
// (offRows, offCols).
// Errors:
//   - ErrBadShape for non-positive sizes or negative offsets.
//   - ErrDimensionMismatch when the window leaves the source.
//
// Complexity:
//   - Time O(nnz(m)) scan + O(window nnz·write), Space O(result).
func Cut(m *Matrix, newRows, newCols, offRows, offCols int) (*Matrix, error) {
	if err := ValidateWindow(m, newRows, newCols, offRows, offCols); err != nil {
		return nil, matrixErrorf(opCut, err)
	}

	out, err := m.factory.initialZero(newRows, newCols)
	if err != nil {
		return nil, matrixErrorf(opCut, err)
	}
	for e := range m.All() {
		r, c := e.Row-offRows, e.Col-offCols
		if r < 0 || r >= newRows || c < 0 || c >= newCols {
			continue
		}
		if err = out.modify(r, c, e.Value); err != nil {
			return nil, matrixErrorf(opCut, err)
		}
	}

	res := m.derive(out)
	res.optimize()

	return res, nil
}

// CutBy is Cut with every size and offset given as a 1×1 matrix holding a
// non-negative integer, the form an expression evaluator produces.
// Errors: ErrNotScalar for any argument that is not such a matrix, then the
// Cut errors.
func CutBy(m, newRows, newCols, offRows, offCols *Matrix) (*Matrix, error) {
	args := [4]*Matrix{newRows, newCols, offRows, offCols}
	var vals [4]int
	for i, a := range args {
		v, err := scalarIndex(a)
		if err != nil {
			return nil, matrixErrorf(opCutBy, fmt.Errorf("argument %d: %w", i+1, err))
		}
		vals[i] = v
	}

	res, err := Cut(m, vals[0], vals[1], vals[2], vals[3])
	if err != nil {
		return nil, matrixErrorf(opCutBy, err)
	}

	return res, nil
}

// scalarIndex unwraps a 1×1 matrix holding a non-negative whole number.
func scalarIndex(a *Matrix) (int, error) {
	if a == nil {
		return 0, ErrNilMatrix
	}
	if !isScalarShape(a) {
		return 0, ErrNotScalar
	}
	v := a.at(0, 0)
	if !isWholeNumber(v) || v < 0 || v > math.MaxInt32 {
		return 0, ErrNotScalar
	}

	return int(v), nil
}

// isWholeNumber reports whether v is finite and has no fractional part.
func isWholeNumber(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v)
}

// Equal reports exact element-wise equality of two matrices.
// Matrices of different shapes are not equal; storage kind never matters.
// Complexity: O(nnz(a)·read + nnz(b)).
func Equal(a, b *Matrix) (bool, error) {
	if err := ValidateNotNil(a); err != nil {
		return false, matrixErrorf(opEqual, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, matrixErrorf(opEqual, err)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false, nil
	}
	if a.NonZero() != b.NonZero() {
		return false, nil
	}
	for e := range a.All() {
		if b.at(e.Row, e.Col) != e.Value {
			return false, nil
		}
	}

	return true, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// NaN is never close to anything. Negative tolerances are normalized.
// Errors: ErrNilMatrix, ErrDimensionMismatch (wrapped "AllClose: ...").
// Complexity: O(r*c) reads.
//
// AI-Hints:
//   - The natural check for M·M⁻¹ ≈ I in tests.
func AllClose(a, b *Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)

	rows, cols := a.Rows(), a.Cols()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x, y := a.at(i, j), b.at(i, j)
			if x == y {
				continue
			}
			if math.IsNaN(x) || math.IsNaN(y) || math.Abs(x-y) > atol+rtol*math.Abs(y) {
				return false, nil
			}
		}
	}

	return true, nil
}
