package zmatrix_test

import (
	"fmt"

	"github.com/katalvlaran/ldematrix/zmatrix"
)

// ExampleCountMatrix_LooseEquals shows that swapping rows keeps the histogram
// multisets (loose equality) while breaking cell-by-cell equality.
func ExampleCountMatrix_LooseEquals() {
	a := zmatrix.MustFromRows([][]int{
		{1, 1, 0},
		{0, 0, 0},
		{0, 1, 0},
	}, 2)
	b := a.Clone()
	_ = b.SwapRows(0, 2)

	fmt.Println(b)
	fmt.Println("strict:", a.StrictEquals(b))
	fmt.Println("loose:", a.LooseEquals(b))
	fmt.Println("permutation:", a.PermutationEquivalent(b))
	// Output:
	// [0,1,0][0,0,0][1,1,0]
	// strict: false
	// loose: true
	// permutation: true
}

// ExampleCountMatrix_CountRows reads the row meta-histogram.
func ExampleCountMatrix_CountRows() {
	m := zmatrix.MustFromRows([][]int{
		{1, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 0, 0},
	}, 2)
	cr := m.CountRows()
	fmt.Println("rows with two ones:", cr[2][1])
	fmt.Println("rows with four zeros:", cr[4][0])
	// Output:
	// rows with two ones: 2
	// rows with four zeros: 1
}
