// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvmatrix/matrix"
	"github.com/stretchr/testify/require"
)

// TestAddSub_Basic validates element-wise sums and differences.
func TestAddSub_Basic(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := MustRows(t, [][]float64{{0, 1}, {0, -4}})

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{1, 3}, {3, 0}}, sum)

	diff, err := matrix.Sub(a, b)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{1, 1}, {3, 8}}, diff)

	RequireRows(t, [][]float64{{1, 2}, {3, 4}}, a) // operands untouched
	RequireRows(t, [][]float64{{0, 1}, {0, -4}}, b)
}

// TestAddSub_Reoptimize: density changes flip the storage kind.
func TestAddSub_Reoptimize(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 0}, {0, 0}})
	b := MustRows(t, [][]float64{{0, 2}, {3, 0}})
	RequireKind(t, matrix.KindSparse, a)
	RequireKind(t, matrix.KindSparse, b)

	sum, err := matrix.Add(a, b)
	require.NoError(t, err)
	RequireKind(t, matrix.KindDense, sum) // 3 of 4 non-zero

	zero, err := matrix.Sub(sum, sum)
	require.NoError(t, err)
	RequireKind(t, matrix.KindSparse, zero) // everything cancelled
	require.Equal(t, 0, zero.NonZero())
}

// TestAddSub_SelfInverse: A + A − A == A.
func TestAddSub_SelfInverse(t *testing.T) {
	a := MustRows(t, [][]float64{{1.5, 0, -2}, {0, 7, 0}})
	twice, err := matrix.Add(a, a)
	require.NoError(t, err)
	back, err := matrix.Sub(twice, a)
	require.NoError(t, err)

	eq, err := matrix.Equal(back, a)
	require.NoError(t, err)
	require.True(t, eq)
}

// TestAddSub_Errors covers shape mismatch and nil operands.
func TestAddSub_Errors(t *testing.T) {
	a, b := MustNew(t, 2, 2), MustNew(t, 2, 3)

	_, err := matrix.Add(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Contains(t, err.Error(), "Add: ")

	_, err = matrix.Sub(a, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Contains(t, err.Error(), "Sub: ")

	_, err = matrix.Add(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestScale multiplies non-zeros and collapses to sparse on zero.
func TestScale(t *testing.T) {
	a := MustRows(t, [][]float64{{1, -2}, {3, 4}})

	s, err := matrix.Scale(a, 2.5)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{2.5, -5}, {7.5, 10}}, s)

	z, err := matrix.Scale(a, 0)
	require.NoError(t, err)
	RequireKind(t, matrix.KindSparse, z)
	RequireRows(t, [][]float64{{0, 0}, {0, 0}}, z)

	_, err = matrix.Scale(nil, 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMul_IntegerProductIsExact is concrete scenario 6.
func TestMul_IntegerProductIsExact(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := MustRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{58, 64}, {139, 154}}, p)

	q, err := matrix.Mul(b, a)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{39, 54, 69}, {49, 68, 87}, {59, 82, 105}}, q)
}

// TestMul_ScalarOperands: a 1×1 operand on either side scales.
func TestMul_ScalarOperands(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	three := matrix.NewScalar(3)

	left, err := matrix.Mul(three, a)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{3, 6}, {9, 12}, {15, 18}}, left)

	right, err := matrix.Mul(a, three)
	require.NoError(t, err)
	RequireRows(t, ToRows(t, left), right)

	both, err := matrix.Mul(three, matrix.NewScalar(-2))
	require.NoError(t, err)
	require.Equal(t, "-6", both.String())
}

// TestMul_SparseResult: a product of sparse operands is re-optimized.
func TestMul_SparseResult(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 0, 0}, {0, 0, 0}, {0, 0, 0}})
	b := MustRows(t, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 1}})

	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	RequireKind(t, matrix.KindSparse, p) // built dense, converted back
	require.Equal(t, 0, p.NonZero())
}

// TestMul_Errors covers inner-dimension mismatch and nil operands.
func TestMul_Errors(t *testing.T) {
	a := MustNew(t, 2, 3)

	_, err := matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Contains(t, err.Error(), "Mul: ")

	_, err = matrix.Mul(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestTranspose swaps dimensions and is an involution.
func TestTranspose(t *testing.T) {
	for _, kind := range []matrix.Kind{matrix.KindDense, matrix.KindSparse} {
		t.Run(kind.String(), func(t *testing.T) {
			a := matrix.ForceKind_TestOnly(MustRows(t, [][]float64{{1, 2, 0}, {0, 5, 6}}), kind)

			at, err := matrix.Transpose(a)
			require.NoError(t, err)
			RequireRows(t, [][]float64{{1, 0}, {2, 5}, {0, 6}}, at)

			back, err := matrix.Transpose(at)
			require.NoError(t, err)
			eq, err := matrix.Equal(back, a)
			require.NoError(t, err)
			require.True(t, eq)
		})
	}

	_, err := matrix.Transpose(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestTranspose_CarriesCaches: det and rank survive transposition.
func TestTranspose_CarriesCaches(t *testing.T) {
	a := MustRows(t, [][]float64{{2, 1}, {7, 4}})
	d, ok := matrix.Det(a)
	require.True(t, ok)

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	require.True(t, matrix.HasCachedDet_TestOnly(at))
	dt, ok := matrix.Det(at)
	require.True(t, ok)
	require.Equal(t, d, dt)
}

// TestUnite is concrete scenario 4 plus the column check.
func TestUnite(t *testing.T) {
	top := MustRows(t, [][]float64{{1, 2}})
	bottom := MustRows(t, [][]float64{{3, 4}})

	u, err := matrix.Unite(top, bottom)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{1, 2}, {3, 4}}, u)

	_, err = matrix.Unite(top, MustNew(t, 1, 3))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.Contains(t, err.Error(), "Unite: ")
}

// TestCut is concrete scenario 5 plus window validation.
func TestCut(t *testing.T) {
	m := MustRows(t, [][]float64{{1, 2}, {3, 4}})

	c, err := matrix.Cut(m, 1, 1, 1, 1)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{4}}, c)

	row, err := matrix.Cut(m, 1, 2, 1, 0)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{3, 4}}, row)

	_, err = matrix.Cut(m, 0, 1, 0, 0)
	require.ErrorIs(t, err, matrix.ErrBadShape) // non-positive size

	_, err = matrix.Cut(m, 1, 1, -1, 0)
	require.ErrorIs(t, err, matrix.ErrBadShape) // negative offset

	_, err = matrix.Cut(m, 2, 2, 1, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch) // window leaves source
	require.Contains(t, err.Error(), "Cut: ")
}

// TestUniteCut_Recovery: cutting a united matrix recovers both halves.
func TestUniteCut_Recovery(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 0, 2}, {0, 3, 0}})
	b := MustRows(t, [][]float64{{4, 5, 6}})

	u, err := matrix.Unite(a, b)
	require.NoError(t, err)

	gotA, err := matrix.Cut(u, 2, 3, 0, 0)
	require.NoError(t, err)
	gotB, err := matrix.Cut(u, 1, 3, 2, 0)
	require.NoError(t, err)

	RequireRows(t, ToRows(t, a), gotA)
	RequireRows(t, ToRows(t, b), gotB)
}

// TestCutBy takes its window from 1×1 integer matrices.
func TestCutBy(t *testing.T) {
	m := MustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	one, two := matrix.NewScalar(1), matrix.NewScalar(2)
	zero := MustNew(t, 1, 1)

	c, err := matrix.CutBy(m, one, two, one, one)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{5, 6}}, c)

	c, err = matrix.CutBy(m, two, one, zero, zero)
	require.NoError(t, err)
	RequireRows(t, [][]float64{{1}, {4}}, c)

	_, err = matrix.CutBy(m, matrix.NewScalar(1.5), one, zero, zero)
	require.ErrorIs(t, err, matrix.ErrNotScalar) // fractional size

	_, err = matrix.CutBy(m, one, one, matrix.NewScalar(-1), zero)
	require.ErrorIs(t, err, matrix.ErrNotScalar) // negative offset

	_, err = matrix.CutBy(m, m, one, zero, zero)
	require.ErrorIs(t, err, matrix.ErrNotScalar) // not 1×1
	require.Contains(t, err.Error(), "argument 1")

	_, err = matrix.CutBy(m, zero, one, zero, zero)
	require.ErrorIs(t, err, matrix.ErrBadShape) // zero size reaches Cut
}

// TestEqualAndAllClose compares values regardless of storage kind.
func TestEqualAndAllClose(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 0}, {0, 2}})
	d := matrix.ForceKind_TestOnly(a, matrix.KindDense)

	eq, err := matrix.Equal(a, d)
	require.NoError(t, err)
	require.True(t, eq)

	eq, err = matrix.Equal(a, MustRows(t, [][]float64{{1, 0}, {0, 3}}))
	require.NoError(t, err)
	require.False(t, eq)

	eq, err = matrix.Equal(a, MustNew(t, 1, 2))
	require.NoError(t, err)
	require.False(t, eq) // shapes differ

	near := MustRows(t, [][]float64{{1 + 1e-12, 0}, {0, 2}})
	ok, err := matrix.AllClose(a, near, 0, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, near, 0, 0)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = matrix.AllClose(a, MustNew(t, 3, 3), 0, 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Equal(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
