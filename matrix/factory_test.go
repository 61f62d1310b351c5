// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvmatrix/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewFactory_Validation rejects ratios outside [0,1].
func TestNewFactory_Validation(t *testing.T) {
	for _, r := range []float64{-0.1, 1.5, math.NaN(), math.Inf(1)} {
		_, err := matrix.NewFactory(r)
		require.ErrorIs(t, err, matrix.ErrInvalidRatio)
	}
	for _, r := range []float64{0, 0.25, 1} {
		f, err := matrix.NewFactory(r)
		require.NoError(t, err)
		require.Equal(t, r, f.Ratio())
	}
	require.Equal(t, matrix.DefaultSparseRatio, matrix.DefaultFactory().Ratio())
}

// TestFactory_PrefersSparseBoundary: Sparse wins ties at (1-r)*cells.
func TestFactory_PrefersSparseBoundary(t *testing.T) {
	f := matrix.DefaultFactory()
	require.True(t, f.PrefersSparse(0, 2, 2))
	require.True(t, f.PrefersSparse(2, 2, 2))  // 2 <= 0.5*4
	require.False(t, f.PrefersSparse(3, 2, 2)) // 3 > 2
}

// TestDimensions_CellOverflow rejects shapes whose cell count exceeds int.
func TestDimensions_CellOverflow(t *testing.T) {
	_, err := matrix.New(math.MaxInt, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, _, err = matrix.ElementsRange(math.MaxInt/2+1, 2, []matrix.Element{el(1, 1, 1)})
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewIdentity(math.MaxInt)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	// The largest representable shape is still accepted.
	m, err := matrix.New(math.MaxInt, 1)
	require.NoError(t, err)
	require.Equal(t, math.MaxInt, m.Rows())

	require.True(t, matrix.DefaultFactory().PrefersSparse(1, math.MaxInt, 2))
}

// TestFactory_LiteralSelection drives initial selection with different ratios.
func TestFactory_LiteralSelection(t *testing.T) {
	half := [][]float64{{1, 0}, {0, 1}} // 2 of 4 cells zero
	full := [][]float64{{1, 2}, {3, 4}}

	tests := []struct {
		name  string
		rows  [][]float64
		ratio float64
		want  matrix.Kind
	}{
		{"half zeros at 0.5", half, 0.5, matrix.KindSparse},
		{"half zeros at 0.75", half, 0.75, matrix.KindDense},
		{"no zeros at 0", full, 0, matrix.KindSparse},
		{"no zeros at 0.5", full, 0.5, matrix.KindDense},
		{"one non-zero at 1", [][]float64{{0, 0}, {0, 9}}, 1, matrix.KindDense},
		{"all zeros at 1", [][]float64{{0, 0}}, 1, matrix.KindSparse},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := MustRows(t, tc.rows, matrix.WithSparseRatio(tc.ratio))
			RequireKind(t, tc.want, m)
			RequireRows(t, tc.rows, m) // values independent of the kind
			require.Equal(t, tc.ratio, m.Factory().Ratio())
		})
	}
}

// TestNewFromRows_BadShape rejects empty and ragged literals.
func TestNewFromRows_BadShape(t *testing.T) {
	_, err := matrix.NewFromRows(nil)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewFromRows([][]float64{{}})
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.NewFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

// TestNewFromRows_CopiesInput: later edits to the literal do not leak in.
func TestNewFromRows_CopiesInput(t *testing.T) {
	rows := [][]float64{{1, 2}, {3, 4}}
	m := MustRows(t, rows)
	rows[0][0] = 100
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

// TestConstructors_ScalarAndIdentity covers the remaining constructors.
func TestConstructors_ScalarAndIdentity(t *testing.T) {
	s := matrix.NewScalar(4.5)
	require.Equal(t, 1, s.Rows())
	require.Equal(t, 1, s.Cols())
	RequireKind(t, matrix.KindSparse, s)
	RequireRows(t, [][]float64{{4.5}}, s)

	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, id)
	RequireKind(t, matrix.KindSparse, id) // 3 of 9 non-zero

	id2, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	RequireKind(t, matrix.KindSparse, id2) // 2 of 4: tie goes to sparse

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	d := id.Dims()
	require.Equal(t, 9, d.Cells())
}
