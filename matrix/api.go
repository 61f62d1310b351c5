// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin entry points with intention-revealing names.
//   - Avoid any logic duplication; each facade delegates to the canonical kernel.
//
// Determinism & Policy:
//   - Facades never change the numeric policy of the underlying kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// ---------- Constructors & Utilities ----------

// ZerosLike returns a new zero matrix with the shape and policy of m.
// Complexity: O(1) (zero matrices start sparse).
func ZerosLike(m *Matrix) (*Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return New(m.Rows(), m.Cols(), WithFactory(m.factory), WithEpsilon(m.eps))
}

// IdentityLike returns I with dimension = Rows(m); requires square shape.
// AI-Hints: handy as the expected value of m·m⁻¹ in checks.
func IdentityLike(m *Matrix) (*Matrix, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}

	return NewIdentity(m.Rows(), WithFactory(m.factory), WithEpsilon(m.eps))
}

// ---------- Algebra (facades map 1:1 to kernels) ----------

// Sum is an alias for Add: element-wise a + b.
func Sum(a, b *Matrix) (*Matrix, error) { return Add(a, b) }

// Diff is an alias for Sub: element-wise a − b.
func Diff(a, b *Matrix) (*Matrix, error) { return Sub(a, b) }

// Product is an alias for Mul: matrix product a × b (1×1 operands scale).
// Complexity: O(r*n*c).
func Product(a, b *Matrix) (*Matrix, error) { return Mul(a, b) }

// T is an alias for Transpose: returns mᵀ.
//
// AI-Hints: Good for small helpers and chaining.
func T(m *Matrix) (*Matrix, error) { return Transpose(m) }

// ScaleBy is an alias for Scale: α*m.
func ScaleBy(m *Matrix, alpha float64) (*Matrix, error) { return Scale(m, alpha) }

// Stack is an alias for Unite: b stacked under a.
func Stack(a, b *Matrix) (*Matrix, error) { return Unite(a, b) }

// Submatrix is an alias for Cut.
func Submatrix(m *Matrix, rows, cols, offRows, offCols int) (*Matrix, error) {
	return Cut(m, rows, cols, offRows, offCols)
}

// ---------- Elimination ----------

// EchelonForm is an alias for Gauss.
func EchelonForm(m *Matrix) (*Matrix, error) { return Gauss(m) }

// InverseOf is an alias for Inverse.
// Complexity: O(n³).
func InverseOf(m *Matrix) (*Matrix, error) { return Inverse(m) }

// Determinant is Det with an error surface: ErrNilMatrix or ErrNonSquare
// instead of the (0, false) "no value" result.
func Determinant(m *Matrix) (float64, error) {
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf("Determinant", err)
	}
	d, _ := Det(m)

	return d, nil
}
