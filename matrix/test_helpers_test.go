// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and assertions for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvmatrix/matrix"
	"github.com/stretchr/testify/require"
)

// closeTol is the absolute tolerance used by approximate comparisons.
const closeTol = 1e-9

// MustRows builds a matrix from a literal or fails the test.
func MustRows(t *testing.T, rows [][]float64, opts ...matrix.Option) *matrix.Matrix {
	t.Helper()
	m, err := matrix.NewFromRows(rows, opts...)
	require.NoError(t, err)

	return m
}

// MustNew builds a zero matrix or fails the test.
func MustNew(t *testing.T, r, c int, opts ...matrix.Option) *matrix.Matrix {
	t.Helper()
	m, err := matrix.New(r, c, opts...)
	require.NoError(t, err)

	return m
}

// ToRows reads every cell back into a nested slice.
func ToRows(t *testing.T, m *matrix.Matrix) [][]float64 {
	t.Helper()
	out := make([][]float64, m.Rows())
	for i := range out {
		out[i] = make([]float64, m.Cols())
		for j := range out[i] {
			v, err := m.At(i, j)
			require.NoError(t, err)
			out[i][j] = v
		}
	}

	return out
}

// RequireRows asserts that m holds exactly want.
func RequireRows(t *testing.T, want [][]float64, m *matrix.Matrix) {
	t.Helper()
	require.Equal(t, want, ToRows(t, m))
}

// RequireClose asserts element-wise closeness within closeTol.
func RequireClose(t *testing.T, want, got *matrix.Matrix) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, closeTol)
	require.NoError(t, err)
	require.Truef(t, ok, "want\n%s\ngot\n%s", want, got)
}

// RequireKind asserts the storage kind chosen for m.
func RequireKind(t *testing.T, want matrix.Kind, m *matrix.Matrix) {
	t.Helper()
	require.Equal(t, want, matrix.KindOf_TestOnly(m))
}

// RandomRows returns an r×c literal with roughly density non-zero small
// integers. Integers keep elimination results exact or nearly so.
func RandomRows(rng *rand.Rand, r, c int, density float64) [][]float64 {
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			if rng.Float64() < density {
				out[i][j] = float64(rng.Intn(19) - 9)
			}
		}
	}

	return out
}

// DiagonallyDominant returns an n×n invertible literal.
func DiagonallyDominant(rng *rand.Rand, n int) [][]float64 {
	out := RandomRows(rng, n, n, 0.6)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			if j != i {
				if out[i][j] < 0 {
					sum -= out[i][j]
				} else {
					sum += out[i][j]
				}
			}
		}
		out[i][i] = sum + 1 + float64(rng.Intn(5))
	}

	return out
}
