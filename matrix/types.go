// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by storage, iteration and algebra.
// This file intentionally contains ONLY value types (Dimensions, Position,
// Element, Kind). Errors and options live in dedicated files.
package matrix

import (
	"fmt"
	"math"
)

// Dimensions is the immutable (rows, columns) pair of a representation.
// Every representation owns exactly one *Dimensions for its whole lifetime;
// iterators compare that pointer to decide whether they walk the same matrix.
type Dimensions struct {
	rows int // >= 1
	cols int // >= 1
}

// newDimensions validates and allocates a Dimensions value.
// Returns ErrInvalidDimensions when rows or cols is not positive, or when
// rows*cols does not fit in an int (every cell count is computed in int).
func newDimensions(rows, cols int) (*Dimensions, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if rows > math.MaxInt/cols {
		return nil, fmt.Errorf("%dx%d cells overflow int: %w", rows, cols, ErrInvalidDimensions)
	}

	return &Dimensions{rows: rows, cols: cols}, nil
}

// Rows returns the number of rows. O(1).
func (d Dimensions) Rows() int { return d.rows }

// Cols returns the number of columns. O(1).
func (d Dimensions) Cols() int { return d.cols }

// Cells returns rows*cols. O(1).
func (d Dimensions) Cells() int { return d.rows * d.cols }

// contains reports whether (row, col) addresses a cell.
func (d Dimensions) contains(row, col int) bool {
	return row >= 0 && row < d.rows && col >= 0 && col < d.cols
}

// String renders "RxC".
func (d Dimensions) String() string { return fmt.Sprintf("%dx%d", d.rows, d.cols) }

// Position is a zero-based (row, column) coordinate.
// Positions are totally ordered row-major: first by Row, then by Col.
type Position struct {
	Row int
	Col int
}

// Less reports whether p precedes q in row-major order.
func (p Position) Less(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}

	return p.Col < q.Col
}

// Element is a (position, value) pair produced by iteration.
// Iteration only ever yields elements whose Value is non-zero.
type Element struct {
	Position
	Value float64
}

// elementLess orders elements by their position; it is the key order of the
// sparse tree, values never participate.
func elementLess(a, b Element) bool { return a.Position.Less(b.Position) }

// Kind names a storage strategy. It is an internal diagnostic: the public
// Matrix surface behaves identically whatever the kind.
type Kind int

const (
	// KindSparse stores only non-zero cells in an ordered tree keyed by Position.
	KindSparse Kind = iota
	// KindDense stores every cell in a row-major slice.
	KindDense
)

// String returns "sparse" or "dense".
func (k Kind) String() string {
	if k == KindDense {
		return "dense"
	}

	return "sparse"
}
