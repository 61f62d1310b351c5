// SPDX-License-Identifier: MIT

// Package matrix: the storage capability set.
//
// Purpose:
//   - Declare the single contract both storage strategies implement.
//   - Keep Matrix and every algorithm blind to the concrete storage: they only
//     use at/add/modify/swapRows and iteration.
//
// Contract (identical for Dense and Sparse):
//   - at(r,c) returns (value, true) in range and (0, false) outside it.
//   - add/modify/swapRows return ErrOutOfRange (wrapped) on bad indices and
//     leave storage untouched in that case.
//   - Sparse never stores an explicit zero; Dense stores every cell.
//   - begin()/end() delimit the non-zero elements in row-major order.
//   - clone() is a deep copy sharing nothing with the receiver.
package matrix

import "fmt"

// error context tags shared by both storage kinds.
const (
	ctxAt       = "at"
	ctxAdd      = "add"
	ctxModify   = "modify"
	ctxSwapRows = "swapRows"
)

// representation is the polymorphic storage behind a Matrix.
// Implementations: *denseRepr, *sparseRepr.
type representation interface {
	// dims returns the shared, immutable dimensions object. O(1).
	dims() *Dimensions

	// at returns the stored value, or (0, false) when out of range.
	at(row, col int) (float64, bool)

	// add performs at(row,col) += delta.
	add(row, col int, delta float64) error

	// modify overwrites the cell with v.
	modify(row, col int, v float64) error

	// swapRows exchanges the contents of two rows.
	swapRows(r1, r2 int) error

	// isEfficient reports whether this kind is the memory-appropriate one
	// for the given sparsity ratio.
	isEfficient(ratio float64) bool

	// nonZero counts stored non-zero values.
	nonZero() int

	// begin returns an iterator at the first non-zero element.
	begin() *Iterator

	// end returns the past-the-end iterator.
	end() *Iterator

	// clone deep-copies the storage.
	clone() representation

	// kind identifies the storage strategy (diagnostics/tests only).
	kind() Kind
}

// reprErrorf wraps an error with the storage kind, method and coordinates.
// Shape: "Dense.modify(3,1): matrix: index out of range".
func reprErrorf(k Kind, method string, row, col int, err error) error {
	name := "Sparse"
	if k == KindDense {
		name = "Dense"
	}

	return fmt.Errorf("%s.%s(%d,%d): %w", name, method, row, col, err)
}

// sparseThreshold is the largest non-zero count for which Sparse storage is
// preferred: (1-ratio)*rows*cols.
func sparseThreshold(ratio float64, d *Dimensions) float64 {
	return (1 - ratio) * float64(d.rows) * float64(d.cols)
}
