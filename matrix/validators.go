// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for operand checks.
//  - Keep kernels minimal by delegating nil/shape/window checks here.
//  - Return tagged sentinels so call sites can wrap uniformly with an op tag.
//
// Determinism & Performance:
//  - All checks are pure, O(1) and allocate only on failure.
//
// Note:
//  - Composite validators follow a fixed sequence (NotNil → Shape).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Returns ErrNilMatrix if m == nil.
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(m *Matrix) error {
	if m == nil || m.repr == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape – Composite: NotNil(a) → NotNil(b) → equal dimensions.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
// AI-Hints: Use for Add/Sub/AllClose.
func ValidateSameShape(a, b *Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Errors: ErrNilMatrix, ErrNonSquare.
// AI-Hints: Use before Inverse.
func ValidateSquare(m *Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows. Assumes non-nil operands.
func ValidateMulCompatible(a, b *Matrix) error {
	if a.Cols() != b.Rows() {
		return validatorErrorf(
			fmt.Sprintf("ValidateMulCompatible: %s·%s", a.Dims(), b.Dims()),
			ErrDimensionMismatch,
		)
	}

	return nil
}

// ValidateSameCols – Composite: NotNil(a) → NotNil(b) → equal column counts.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// AI-Hints: Use for Unite.
func ValidateSameCols(a, b *Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameCols", ErrDimensionMismatch)
	}

	return nil
}

// ValidateWindow checks a Cut window against the source m.
//
// Errors:
//   - ErrNilMatrix.
//   - ErrBadShape for newRows/newCols <= 0 or negative offsets.
//   - ErrDimensionMismatch when newRows+offRows > rows or newCols+offCols > cols.
//
// Complexity: O(1).
func ValidateWindow(m *Matrix, newRows, newCols, offRows, offCols int) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if newRows <= 0 || newCols <= 0 {
		return validatorErrorf(fmt.Sprintf("ValidateWindow: size %dx%d", newRows, newCols), ErrBadShape)
	}
	if offRows < 0 || offCols < 0 {
		return validatorErrorf(fmt.Sprintf("ValidateWindow: offset (%d,%d)", offRows, offCols), ErrBadShape)
	}
	if newRows+offRows > m.Rows() || newCols+offCols > m.Cols() {
		return validatorErrorf(
			fmt.Sprintf("ValidateWindow: %dx%d at (%d,%d) exceeds %s", newRows, newCols, offRows, offCols, m.Dims()),
			ErrDimensionMismatch,
		)
	}

	return nil
}
