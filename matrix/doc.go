// SPDX-License-Identifier: MIT
// Package matrix is an in-process matrix algebra engine with automatic
// storage selection.
//
// The matrix package provides:
//
//   - Matrix, a float64 value type backed by either Dense (row-major slice)
//     or Sparse (ordered tree of non-zero cells) storage. A Factory picks the
//     storage from the configured sparsity ratio and re-evaluates the choice
//     after every operation that can change density.
//   - One iteration protocol (Begin/End/Iterator, or All with range-over-func)
//     over the non-zero elements of either storage in row-major order.
//   - Algebra: Add, Sub, Scale, Mul, Transpose, Unite, Cut, CutBy.
//   - Elimination: Gauss (row-echelon form), Det, Rank, Inverse.
//
// Storage is never observable through the API: the same values produce the
// same results whatever the kind.
//
// Quick start:
//
//	a, _ := matrix.NewFromRows([][]float64{{2, 1}, {1, 1}})
//	inv, _ := matrix.Inverse(a)
//	fmt.Println(inv)
//	// [ 1, -1 ]
//	// [ -1, 2 ]
//
// Errors are package sentinels (see errors.go) wrapped with an operation tag;
// match them with errors.Is. A Matrix is not safe for concurrent use.
package matrix
