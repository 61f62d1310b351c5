// SPDX-License-Identifier: MIT

// Package matrix - storage selection.
//
// Purpose:
//   - Build the initial representation of a matrix from raw inputs.
//   - Decide after every density-changing operation whether the current
//     representation should be replaced by the other kind.
//
// Policy (ratio r ∈ [0,1]):
//   - A matrix is "efficiently sparse" when at least r of its cells are zero,
//     i.e. when nnz <= (1-r)*rows*cols. Sparse wins ties.
//   - The same predicate is exported as PrefersSparse for collaborators that
//     pick a serialization layout.
//
// Determinism:
//   - Conversion replays elements in row-major order through modify.
package matrix

import "fmt"

// Factory holds the sparsity ratio and builds/converts representations.
// The zero value is NOT valid (ratio 0 would make everything sparse by
// accident); use NewFactory or DefaultFactory.
type Factory struct {
	ratio float64
}

// NewFactory validates ratio and returns a Factory.
// Errors: ErrInvalidRatio when ratio is NaN or outside [0,1].
func NewFactory(ratio float64) (Factory, error) {
	if !validRatio(ratio) {
		return Factory{}, fmt.Errorf("NewFactory(%g): %w", ratio, ErrInvalidRatio)
	}

	return Factory{ratio: ratio}, nil
}

// DefaultFactory returns a Factory with DefaultSparseRatio.
func DefaultFactory() Factory { return Factory{ratio: DefaultSparseRatio} }

// Ratio returns the configured sparsity ratio.
func (f Factory) Ratio() float64 { return f.ratio }

// PrefersSparse reports whether a rows×cols matrix with nonZero non-zero
// cells should be stored (or serialized) sparse.
// Complexity: O(1).
func (f Factory) PrefersSparse(nonZero, rows, cols int) bool {
	return float64(nonZero) <= (1-f.ratio)*float64(rows)*float64(cols)
}

// initialZero returns an all-zero rows×cols representation. An empty tree is
// the cheapest store for a matrix with no non-zeros, so it is always Sparse.
func (f Factory) initialZero(rows, cols int) (representation, error) {
	return newSparseRepr(rows, cols)
}

// initialScalar wraps a single value in a 1×1 Sparse representation.
func (f Factory) initialScalar(v float64) representation {
	s, _ := newSparseRepr(1, 1) // 1×1 is always a valid shape
	s.put(Position{}, v)

	return s
}

// literalShape validates a nested-list literal and returns its shape.
// Errors: ErrBadShape for no rows, an empty first row, or ragged rows.
func literalShape(rows [][]float64) (r, c int, err error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, 0, ErrBadShape
	}
	c = len(rows[0])
	for i, row := range rows {
		if len(row) != c {
			return 0, 0, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), c, ErrBadShape)
		}
	}

	return len(rows), c, nil
}

// literalIsSparse counts zeros while scanning and answers true as soon as
// the zero fraction reaches the ratio.
func (f Factory) literalIsSparse(rows [][]float64, cells int) bool {
	need := f.ratio * float64(cells)
	zeros := 0
	for _, row := range rows {
		for _, v := range row {
			if v == 0 {
				zeros++
			}
			if float64(zeros) >= need {
				return true
			}
		}
	}

	return false
}

// initialRows builds storage from a nested-list literal.
// MAIN DESCRIPTION:
//   - Validate shape, pick Sparse when enough zeros were seen, else Dense.
//
// Errors:
//   - ErrBadShape for empty or ragged literals.
//
// Complexity:
//   - Time O(r*c) (plus O(nnz log nnz) for Sparse), Space O(chosen storage).
func (f Factory) initialRows(rows [][]float64) (representation, error) {
	r, c, err := literalShape(rows)
	if err != nil {
		return nil, err
	}

	var repr representation
	if f.literalIsSparse(rows, r*c) {
		repr, err = newSparseRepr(r, c)
	} else {
		repr, err = newDenseRepr(r, c)
	}
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		for j, v := range row {
			if v == 0 {
				continue
			}
			if err = repr.modify(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return repr, nil
}

// initialRange materializes the elements of [begin, end) into a matrix shaped
// like the iterators' source.
// MAIN DESCRIPTION:
//   - Count the range, pick the kind against (1-ratio)*rows*cols, replay.
//
// Errors:
//   - ErrNilMatrix for nil iterators; ErrIteratorMismatch when the two
//     iterators come from different sources.
//
// Complexity:
//   - Time O(n) to count + O(n) (or O(n log n) sparse) to replay.
func (f Factory) initialRange(begin, end *Iterator) (representation, error) {
	if begin == nil || end == nil {
		return nil, ErrNilMatrix
	}
	if begin.dims != end.dims {
		return nil, ErrIteratorMismatch
	}

	d := begin.dims
	nnz := begin.Distance(end)
	var (
		repr representation
		err  error
	)
	if f.PrefersSparse(nnz, d.rows, d.cols) {
		repr, err = newSparseRepr(d.rows, d.cols)
	} else {
		repr, err = newDenseRepr(d.rows, d.cols)
	}
	if err != nil {
		return nil, err
	}
	if err = replay(repr, begin, end); err != nil {
		return nil, err
	}

	return repr, nil
}

// replay writes every element of [begin, end) into dst via modify.
func replay(dst representation, begin, end *Iterator) error {
	for e := range seq(begin, end) {
		if err := dst.modify(e.Row, e.Col, e.Value); err != nil {
			return err
		}
	}

	return nil
}

// convert returns repr unchanged when it is already the efficient kind,
// otherwise a rebuilt copy of the other kind. changed reports which.
// MAIN DESCRIPTION:
//   - The explicit re-optimization step run after density-changing operations.
//
// Implementation:
//   - Stage 1: ask repr.isEfficient(ratio); return as-is when true.
//   - Stage 2: count non-zeros, allocate the preferred kind, replay elements.
//
// Complexity:
//   - Time O(r*c) worst case, Space O(target storage).
func (f Factory) convert(repr representation) (out representation, changed bool) {
	if repr.isEfficient(f.ratio) {
		return repr, false
	}

	d := repr.dims()
	var (
		target representation
		err    error
	)
	if f.PrefersSparse(repr.nonZero(), d.rows, d.cols) {
		target, err = newSparseRepr(d.rows, d.cols)
	} else {
		target, err = newDenseRepr(d.rows, d.cols)
	}
	if err != nil || target.kind() == repr.kind() {
		// Unreachable with validated dimensions and a consistent predicate.
		return repr, false
	}
	if err = replay(target, repr.begin(), repr.end()); err != nil {
		return repr, false
	}

	return target, true
}

// zeroDense returns a Dense buffer for kernels that will write every cell.
func zeroDense(rows, cols int) (representation, error) {
	return newDenseRepr(rows, cols)
}
