// SPDX-License-Identifier: MIT

// Package matrix - Sparse storage (ordered tree of non-zero elements).
//
// Purpose:
//   - Store only non-zero cells, keyed by Position in row-major order.
//   - Make iteration trivial: an in-order walk of the tree IS the list of the
//     matrix's non-zero elements, no skip logic needed.
//
// Invariants:
//   - No element with Value == 0 is ever stored; writes of zero delete the key.
//   - Every stored Position lies inside Dimensions.
//
// AI-Hints:
//   - clone uses the tree's copy-on-write Clone: O(1) now, nodes are copied
//     lazily on the first write to either side.
//   - swapRows touches only the entries of the two rows involved.
//
// Complexity quicksheet:
//   - at/add/modify: O(log nnz); swapRows: O(k log nnz) for k entries in the two rows.

package matrix

import "github.com/google/btree"

// sparseDegree is the B-tree branching factor. 32 keeps nodes around a cache
// line multiple for 24-byte elements.
const sparseDegree = 32

// sparseRepr is the ordered-map storage.
type sparseRepr struct {
	d    *Dimensions
	tree *btree.BTreeG[Element]
}

// compile-time conformance
var _ representation = (*sparseRepr)(nil)

// newSparseRepr allocates an all-zero rows×cols sparse storage (empty tree).
// Errors: ErrInvalidDimensions.
// Complexity: O(1).
func newSparseRepr(rows, cols int) (*sparseRepr, error) {
	d, err := newDimensions(rows, cols)
	if err != nil {
		return nil, err
	}

	return &sparseRepr{d: d, tree: btree.NewG[Element](sparseDegree, elementLess)}, nil
}

func (m *sparseRepr) dims() *Dimensions { return m.d }

func (m *sparseRepr) kind() Kind { return KindSparse }

// at looks the position up; absent keys read as 0.
func (m *sparseRepr) at(row, col int) (float64, bool) {
	if !m.d.contains(row, col) {
		return 0, false
	}
	e, found := m.tree.Get(Element{Position: Position{Row: row, Col: col}})
	if !found {
		return 0, true
	}

	return e.Value, true
}

// put is the single write path: it inserts, updates or deletes so that the
// "no explicit zero" invariant holds. Caller validates bounds.
func (m *sparseRepr) put(pos Position, v float64) {
	if v == 0 {
		m.tree.Delete(Element{Position: pos})
		return
	}
	m.tree.ReplaceOrInsert(Element{Position: pos, Value: v})
}

// add accumulates delta; a sum of exactly zero removes the key.
// Errors: ErrOutOfRange wrapped as "Sparse.add(r,c)".
func (m *sparseRepr) add(row, col int, delta float64) error {
	old, ok := m.at(row, col)
	if !ok {
		return reprErrorf(KindSparse, ctxAdd, row, col, ErrOutOfRange)
	}
	m.put(Position{Row: row, Col: col}, old+delta)

	return nil
}

// modify overwrites the cell; writing 0 deletes any existing entry.
// Errors: ErrOutOfRange wrapped as "Sparse.modify(r,c)".
func (m *sparseRepr) modify(row, col int, v float64) error {
	if !m.d.contains(row, col) {
		return reprErrorf(KindSparse, ctxModify, row, col, ErrOutOfRange)
	}
	m.put(Position{Row: row, Col: col}, v)

	return nil
}

// rowEntries collects the stored elements of one row in column order.
func (m *sparseRepr) rowEntries(row int) []Element {
	var out []Element
	m.tree.AscendRange(
		Element{Position: Position{Row: row, Col: 0}},
		Element{Position: Position{Row: row + 1, Col: 0}},
		func(e Element) bool {
			out = append(out, e)
			return true
		},
	)

	return out
}

// swapRows relocates only the entries of rows r1 and r2.
// MAIN DESCRIPTION:
//   - Collect both rows, delete them, re-insert with exchanged row indices.
//
// Behavior highlights:
//   - Entries of other rows are never visited.
//   - r1 == r2 is a valid no-op.
//
// Complexity:
//   - Time O(k log nnz) where k is the number of entries in both rows.
func (m *sparseRepr) swapRows(r1, r2 int) error {
	if r1 < 0 || r1 >= m.d.rows {
		return reprErrorf(KindSparse, ctxSwapRows, r1, r2, ErrOutOfRange)
	}
	if r2 < 0 || r2 >= m.d.rows {
		return reprErrorf(KindSparse, ctxSwapRows, r1, r2, ErrOutOfRange)
	}
	if r1 == r2 {
		return nil
	}

	first, second := m.rowEntries(r1), m.rowEntries(r2)
	for _, e := range first {
		m.tree.Delete(e)
	}
	for _, e := range second {
		m.tree.Delete(e)
	}
	for _, e := range first {
		e.Row = r2
		m.tree.ReplaceOrInsert(e)
	}
	for _, e := range second {
		e.Row = r1
		m.tree.ReplaceOrInsert(e)
	}

	return nil
}

// nonZero is the tree size; zeros are never stored. O(1).
func (m *sparseRepr) nonZero() int { return m.tree.Len() }

// isEfficient: Sparse is right while nnz stays within (1-ratio)*rows*cols.
func (m *sparseRepr) isEfficient(ratio float64) bool {
	return float64(m.tree.Len()) <= sparseThreshold(ratio, m.d)
}

func (m *sparseRepr) begin() *Iterator {
	c := &sparseCursor{d: m.d, tree: m.tree}
	c.seek(Position{})

	return &Iterator{dims: m.d, cur: c}
}

func (m *sparseRepr) end() *Iterator {
	return &Iterator{dims: m.d, cur: &sparseCursor{d: m.d, tree: m.tree}}
}

// clone returns an independent copy (own Dimensions object, copy-on-write tree).
func (m *sparseRepr) clone() representation {
	d := *m.d

	return &sparseRepr{d: &d, tree: m.tree.Clone()}
}
