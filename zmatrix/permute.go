// SPDX-License-Identifier: MIT

package zmatrix

// SwapRows exchanges rows i and j.
// Row histograms move with their rows; column histograms, the global
// histogram and both meta-histograms are permutation invariant and stay valid.
// Complexity: O(C + A).
func (m *CountMatrix) SwapRows(i, j int) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.r {
		return zErrorf(ctxSwapR, i, j, ErrOutOfRange)
	}
	if i == j {
		return nil
	}
	m.ensure()
	bi, bj := i*m.c, j*m.c
	for k := 0; k < m.c; k++ {
		m.z[bi+k], m.z[bj+k] = m.z[bj+k], m.z[bi+k]
	}
	m.rowCounts[i], m.rowCounts[j] = m.rowCounts[j], m.rowCounts[i]

	return nil
}

// SwapColumns exchanges columns i and j; the column dual of SwapRows.
// Complexity: O(R + A).
func (m *CountMatrix) SwapColumns(i, j int) error {
	if i < 0 || i >= m.c || j < 0 || j >= m.c {
		return zErrorf(ctxSwapC, i, j, ErrOutOfRange)
	}
	if i == j {
		return nil
	}
	m.ensure()
	for k := 0; k < m.r; k++ {
		b := k * m.c
		m.z[b+i], m.z[b+j] = m.z[b+j], m.z[b+i]
	}
	m.colCounts[i], m.colCounts[j] = m.colCounts[j], m.colCounts[i]

	return nil
}

// Clone returns an independent deep copy (cells and histograms).
func (m *CountMatrix) Clone() *CountMatrix {
	m.ensure()
	out := &CountMatrix{
		r:         m.r,
		c:         m.c,
		a:         m.a,
		z:         append([]int(nil), m.z...),
		sum:       m.sum,
		numCounts: append([]int(nil), m.numCounts...),
		rowCounts: cloneGrid(m.rowCounts),
		colCounts: cloneGrid(m.colCounts),
		countRows: cloneGrid(m.countRows),
		countCols: cloneGrid(m.countCols),
	}

	return out
}

// Transpose returns a new C×R matrix with cells (j,i) = m(i,j).
func (m *CountMatrix) Transpose() *CountMatrix {
	t := &CountMatrix{r: m.c, c: m.r, a: m.a, z: make([]int, len(m.z))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			t.z[j*t.c+i] = m.z[i*m.c+j]
		}
	}
	t.allocate()
	t.Recompute()

	return t
}

// Map returns a new matrix over the given alphabet with every cell replaced
// by f(value). It fails with ErrValueOutOfAlphabet when f leaves the alphabet.
func (m *CountMatrix) Map(f func(int) int, alphabet int) (*CountMatrix, error) {
	if alphabet <= 0 {
		return nil, ErrInvalidAlphabet
	}
	out := &CountMatrix{r: m.r, c: m.c, a: alphabet, z: make([]int, len(m.z))}
	for k, v := range m.z {
		w := f(v)
		if w < 0 || w >= alphabet {
			return nil, zErrorf("Map", k/m.c, k%m.c, ErrValueOutOfAlphabet)
		}
		out.z[k] = w
	}
	out.allocate()
	out.Recompute()

	return out, nil
}
