package zmatrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/ldematrix/zmatrix"
)

// randomGrid builds a deterministic n×n grid over alphabet 4.
func randomGrid(n int, seed int64) [][]int {
	rng := rand.New(rand.NewSource(seed))
	g := make([][]int, n)
	for i := range g {
		g[i] = make([]int, n)
		for j := range g[i] {
			g[i][j] = rng.Intn(4)
		}
	}

	return g
}

func BenchmarkRecompute6x6(b *testing.B) {
	m := zmatrix.MustFromRows(randomGrid(6, 1), 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Recompute()
	}
}

func BenchmarkLooseEquals6x6(b *testing.B) {
	x := zmatrix.MustFromRows(randomGrid(6, 1), 4)
	y := x.Transpose().Transpose()
	_ = y.SwapRows(0, 5)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.LooseEquals(y)
	}
}

func BenchmarkPermutationEquivalent6x6(b *testing.B) {
	x := zmatrix.MustFromRows(randomGrid(6, 3), 4)
	y := x.Clone()
	_ = y.SwapRows(0, 4)
	_ = y.SwapColumns(1, 5)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = x.PermutationEquivalent(y)
	}
}
