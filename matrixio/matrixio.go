// SPDX-License-Identifier: MIT

// Package matrixio moves named matrices in and out of JSON documents.
//
// Document layout:
//
//	{
//	  "A": {"rows": 2, "columns": 2, "data": {"array": [[1, 2], [3, 4]]}},
//	  "B": {"rows": 3, "columns": 3, "data": {"0:0": 1, "2:1": -4}},
//	  "Z": {"rows": 5, "columns": 1, "data": null}
//	}
//
// "array" holds every cell row by row; the "r:c" form lists non-zero cells
// only; null is the all-zero matrix. Export picks the form with the same
// density predicate the storage Factory uses.
//
// The package only uses the public matrix API: matrices are read through
// the element iterators and rebuilt with matrix.NewFromRange.
package matrixio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvmatrix/matrix"
)

// ErrMalformed is returned for any document Import cannot turn into matrices.
var ErrMalformed = errors.New("matrixio: malformed document")

// JSON attribute names.
const (
	keyRows    = "rows"
	keyColumns = "columns"
	keyData    = "data"
	keyArray   = "array"
	posSep     = ":"
)

// entry is the wire shape of one matrix.
type entry struct {
	Rows    int             `json:"rows"`
	Columns int             `json:"columns"`
	Data    json.RawMessage `json:"data"`
}

// denseData is the "array" form of data.
type denseData struct {
	Array [][]float64 `json:"array"`
}

// Export writes vars to w, one entry per name in sorted order.
// Errors: matrix.ErrNilMatrix for a nil value; write errors from w.
// Complexity: O(Σ r*c) for dense entries, O(Σ nnz) for sparse ones.
func Export(w io.Writer, vars map[string]*matrix.Matrix, f matrix.Factory) error {
	doc := make(map[string]entry, len(vars))
	for name, m := range vars {
		if err := matrix.ValidateNotNil(m); err != nil {
			return fmt.Errorf("matrixio: Export %q: %w", name, err)
		}
		data, err := encodeData(m, f)
		if err != nil {
			return fmt.Errorf("matrixio: Export %q: %w", name, err)
		}
		doc[name] = entry{Rows: m.Rows(), Columns: m.Cols(), Data: data}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("matrixio: Export: %w", err)
	}

	return nil
}

// encodeData renders the data attribute of m.
func encodeData(m *matrix.Matrix, f matrix.Factory) (json.RawMessage, error) {
	nnz := m.NonZero()
	if nnz == 0 {
		return json.RawMessage("null"), nil
	}

	if f.PrefersSparse(nnz, m.Rows(), m.Cols()) {
		cells := make(map[string]float64, nnz)
		for e := range m.All() {
			cells[positionKey(e.Row, e.Col)] = e.Value
		}

		return json.Marshal(cells)
	}

	rows := make([][]float64, m.Rows())
	for i := range rows {
		rows[i] = make([]float64, m.Cols())
	}
	for e := range m.All() {
		rows[e.Row][e.Col] = e.Value
	}

	return json.Marshal(denseData{Array: rows})
}

// positionKey formats a sparse cell key.
func positionKey(row, col int) string {
	return strconv.Itoa(row) + posSep + strconv.Itoa(col)
}

// parsePositionKey is the inverse of positionKey.
func parsePositionKey(key string) (row, col int, err error) {
	rs, cs, ok := strings.Cut(key, posSep)
	if !ok {
		return 0, 0, fmt.Errorf("key %q: want \"row:col\"", key)
	}
	if row, err = strconv.Atoi(rs); err != nil {
		return 0, 0, fmt.Errorf("key %q: row: %w", key, err)
	}
	if col, err = strconv.Atoi(cs); err != nil {
		return 0, 0, fmt.Errorf("key %q: col: %w", key, err)
	}

	return row, col, nil
}

// Import reads every matrix of the document in r. The result is all or
// nothing: on error no matrices are returned.
//
// Errors (all wrapping ErrMalformed, with the matrix name):
//   - invalid JSON, missing rows/columns/data, non-numeric values;
//   - rows or columns < 1;
//   - an array whose shape differs from rows×columns;
//   - a sparse key that is not "row:col" or lies outside the matrix.
//
// opts are applied to every imported matrix (storage ratio, epsilon).
func Import(r io.Reader, opts ...matrix.Option) (map[string]*matrix.Matrix, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	out := make(map[string]*matrix.Matrix, len(raw))
	for name, body := range raw {
		m, err := decodeEntry(body, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: matrix %q: %v", ErrMalformed, name, err)
		}
		out[name] = m
	}

	return out, nil
}

// decodeEntry validates one entry and materializes it.
func decodeEntry(body json.RawMessage, opts []matrix.Option) (*matrix.Matrix, error) {
	var attrs map[string]json.RawMessage
	if err := json.Unmarshal(body, &attrs); err != nil {
		return nil, err
	}
	for _, key := range []string{keyRows, keyColumns, keyData} {
		if _, ok := attrs[key]; !ok {
			return nil, fmt.Errorf("missing %q", key)
		}
	}

	var e entry
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, err
	}
	if e.Rows < 1 || e.Columns < 1 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", e.Rows, e.Columns)
	}

	begin, end, err := decodeData(e)
	if err != nil {
		return nil, err
	}
	if begin == nil {
		return matrix.New(e.Rows, e.Columns, opts...)
	}

	return matrix.NewFromRange(begin, end, opts...)
}

// decodeData returns the element range of e, or nil iterators for null data.
func decodeData(e entry) (begin, end *matrix.Iterator, err error) {
	var obj map[string]json.RawMessage
	if err = json.Unmarshal(e.Data, &obj); err != nil {
		return nil, nil, fmt.Errorf("data: %w", err)
	}
	if obj == nil {
		return nil, nil, nil
	}

	if arr, ok := obj[keyArray]; ok {
		var rows [][]float64
		if err = json.Unmarshal(arr, &rows); err != nil {
			return nil, nil, fmt.Errorf("array: %w", err)
		}
		if len(rows) != e.Rows {
			return nil, nil, fmt.Errorf("array has %d rows, want %d", len(rows), e.Rows)
		}
		for i, row := range rows {
			if len(row) != e.Columns {
				return nil, nil, fmt.Errorf("array row %d has %d values, want %d", i, len(row), e.Columns)
			}
		}

		return matrix.RowsRange(rows)
	}

	elems := make([]matrix.Element, 0, len(obj))
	for key, raw := range obj {
		row, col, perr := parsePositionKey(key)
		if perr != nil {
			return nil, nil, perr
		}
		var v float64
		if err = json.Unmarshal(raw, &v); err != nil {
			return nil, nil, fmt.Errorf("key %q: %w", key, err)
		}
		elems = append(elems, matrix.Element{Position: matrix.Position{Row: row, Col: col}, Value: v})
	}

	return matrix.ElementsRange(e.Rows, e.Columns, elems)
}
