// Package lvmatrix is an in-memory matrix algebra engine that keeps each
// matrix in whichever storage suits it: a dense row-major grid or a sparse
// ordered map of non-zero cells.
//
// 🚀 What is lvmatrix?
//
//	A small, dependency-light library that brings together:
//		• Matrix values with automatic Dense/Sparse selection by sparsity ratio
//		• One iterator protocol over the non-zero elements of either storage
//		• Algebra: add, subtract, scale, multiply, transpose, unite, cut
//		• Gaussian elimination, determinant, rank and Gauss-Jordan inverse
//		• JSON import/export that picks the dense or sparse layout per matrix
//
// Under the hood, everything is organized under three subpackages:
//
//	matrix/   Matrix, storage kinds, iterator, factory and all algorithms
//	config/   sparse ratio and input-length settings loaded from JSON
//	matrixio/ JSON interchange of named matrices
//
// Quick example:
//
//	A = [ 1, 2 ]      det(A) = -2
//	    [ 3, 4 ]      A⁻¹    = [ -2, 1 ]
//	                           [ 1.5, -0.5 ]
//
// Runnable programs live under examples/.
//
//	go get github.com/katalvlaran/lvmatrix
package lvmatrix
