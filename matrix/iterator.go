// SPDX-License-Identifier: MIT

// Package matrix - uniform element iteration.
//
// Purpose:
//   - Give Dense and Sparse storage ONE external iteration contract over
//     "the matrix's non-zero elements in row-major order".
//   - Let algorithms (add, scale, transpose, unite, conversion, export) be
//     written once without branching on storage kind.
//
// Contract:
//   - Next is a pre-increment; advancing past the end is a no-op.
//   - Element is defined only while !Done().
//   - Equal requires both iterators to come from the SAME representation
//     (pointer identity of its *Dimensions) and to sit at the same position.
//     Comparing iterators of different matrices is a precondition violation:
//     it is not checked beyond reporting false.
//   - Iterators are invalidated by writes to the storage they walk.
//
// AI-Hints:
//   - Prefer Matrix.All() with range-over-func in new code; Begin/End exist for
//     collaborators that need Distance or explicit cursor control.
package matrix

import (
	"fmt"
	"iter"

	"github.com/google/btree"
)

// cursor is the storage-specific half of an Iterator.
type cursor interface {
	valid() bool        // false once past the end
	current() Element   // element under the cursor; caller checks valid()
	advance()           // move to the next non-zero element
	position() Position // logical position; (rows, 0) past the end
	clone() cursor      // independent copy
}

// Iterator is a forward-only handle over non-zero elements.
type Iterator struct {
	dims *Dimensions
	cur  cursor
}

// Next advances to the next non-zero element. No-op once Done.
// Complexity: amortized O(1) dense (skip-zero scan), O(log nnz) sparse.
func (it *Iterator) Next() {
	if it.cur.valid() {
		it.cur.advance()
	}
}

// Element returns the current element, or the zero Element once Done.
func (it *Iterator) Element() Element {
	if !it.cur.valid() {
		return Element{}
	}

	return it.cur.current()
}

// Done reports whether the iterator is past the last element.
func (it *Iterator) Done() bool { return !it.cur.valid() }

// Dims returns the dimensions of the source being walked.
func (it *Iterator) Dims() Dimensions { return *it.dims }

// Clone returns an independent iterator at the same position.
func (it *Iterator) Clone() *Iterator {
	return &Iterator{dims: it.dims, cur: it.cur.clone()}
}

// Equal reports whether it and other walk the same storage and sit at the
// same position. Iterators from different matrices are never equal.
func (it *Iterator) Equal(other *Iterator) bool {
	if other == nil || it.dims != other.dims {
		return false
	}

	return it.cur.position() == other.cur.position()
}

// Distance counts the elements from it (inclusive) up to other (exclusive)
// by advancing a private copy; it is not moved.
// MAIN DESCRIPTION:
//   - Used for efficiency decisions (non-zero counts) and by exporters.
//
// Behavior highlights:
//   - If other is unreachable (earlier position or foreign matrix) the count
//     runs to the end of the sequence.
//
// Complexity:
//   - Time O(distance) advances, Space O(1).
func (it *Iterator) Distance(other *Iterator) int {
	c := it.cur.clone()
	n := 0
	for c.valid() {
		if other != nil && it.dims == other.dims && c.position() == other.cur.position() {
			break
		}
		c.advance()
		n++
	}

	return n
}

// seq adapts the [begin, end) range to a range-over-func sequence.
func seq(begin, end *Iterator) iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for it := begin.Clone(); !it.Done() && !it.Equal(end); it.Next() {
			if !yield(it.Element()) {
				return
			}
		}
	}
}

// ---------- Dense cursor ----------

// denseCursor walks a flat row-major buffer, skipping exact zeros.
type denseCursor struct {
	d    *Dimensions
	data []float64
	off  int // flat offset; len(data) past the end
}

// newDenseCursor positions the cursor at off, then skips to the first non-zero.
func newDenseCursor(d *Dimensions, data []float64, off int) *denseCursor {
	c := &denseCursor{d: d, data: data, off: off}
	c.skipZeros()

	return c
}

func (c *denseCursor) skipZeros() {
	for c.off < len(c.data) && c.data[c.off] == 0 {
		c.off++
	}
}

func (c *denseCursor) valid() bool { return c.off < len(c.data) }

func (c *denseCursor) current() Element {
	return Element{
		Position: Position{Row: c.off / c.d.cols, Col: c.off % c.d.cols},
		Value:    c.data[c.off],
	}
}

func (c *denseCursor) advance() {
	c.off++
	c.skipZeros()
}

func (c *denseCursor) position() Position {
	if !c.valid() {
		return Position{Row: c.d.rows}
	}

	return Position{Row: c.off / c.d.cols, Col: c.off % c.d.cols}
}

func (c *denseCursor) clone() cursor {
	cp := *c

	return &cp
}

// ---------- Sparse cursor ----------

// sparseCursor walks the ordered tree. Each step is a seek to the first key
// strictly after the current one, so the cursor holds no tree internals.
type sparseCursor struct {
	d    *Dimensions
	tree *btree.BTreeG[Element]
	cur  Element
	ok   bool
}

// seek moves to the first stored element at or after from.
func (c *sparseCursor) seek(from Position) {
	c.ok = false
	c.tree.AscendGreaterOrEqual(Element{Position: from}, func(e Element) bool {
		c.cur, c.ok = e, true
		return false
	})
}

func (c *sparseCursor) valid() bool { return c.ok }

func (c *sparseCursor) current() Element { return c.cur }

func (c *sparseCursor) advance() {
	// (r, cols) sorts before (r+1, 0) and holds no key, so the seek lands on
	// the next row when the current row is exhausted.
	c.seek(Position{Row: c.cur.Row, Col: c.cur.Col + 1})
}

func (c *sparseCursor) position() Position {
	if !c.ok {
		return Position{Row: c.d.rows}
	}

	return c.cur.Position
}

func (c *sparseCursor) clone() cursor {
	cp := *c

	return &cp
}

// ---------- Ranges over data that is not (yet) a Matrix ----------

// RowsRange returns a [begin, end) pair over a nested-list literal, for
// collaborators that rematerialize matrices through NewFromRange.
// Errors: ErrBadShape for empty or ragged input.
// Complexity: O(r*c) copy.
func RowsRange(rows [][]float64) (begin, end *Iterator, err error) {
	r, c, err := literalShape(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("RowsRange: %w", err)
	}
	d := &Dimensions{rows: r, cols: c}
	data := make([]float64, 0, r*c)
	for _, row := range rows {
		data = append(data, row...)
	}

	return &Iterator{dims: d, cur: newDenseCursor(d, data, 0)},
		&Iterator{dims: d, cur: newDenseCursor(d, data, len(data))},
		nil
}

// ElementsRange returns a [begin, end) pair over loose elements of a
// rows×cols matrix. Zero values are dropped; for duplicate positions the
// last element wins.
// Errors: ErrInvalidDimensions, ErrOutOfRange (wrapped with the position).
// Complexity: O(n log n).
func ElementsRange(rows, cols int, elems []Element) (begin, end *Iterator, err error) {
	s, err := newSparseRepr(rows, cols)
	if err != nil {
		return nil, nil, fmt.Errorf("ElementsRange: %w", err)
	}
	for _, e := range elems {
		if err = s.modify(e.Row, e.Col, e.Value); err != nil {
			return nil, nil, fmt.Errorf("ElementsRange: %w", err)
		}
	}

	return s.begin(), s.end(), nil
}
