// SPDX-License-Identifier: MIT

// Package zmatrix - CountMatrix storage (row-major) & derived histograms.
//
// Purpose:
//   - Keep cells in a flat row-major buffer (offset = i*c + j).
//   - Keep every histogram consistent with the cells before it is read.
//   - Return sentinel errors at the public surface instead of panicking.

package zmatrix

// ---------- error context tags ----------

const (
	ctxAt    = "At"
	ctxSet   = "Set"
	ctxRow   = "Row"
	ctxSwapR = "SwapRows"
	ctxSwapC = "SwapColumns"
)

// CountMatrix is an R×C grid of values in [0, A) with derived histograms.
//   - z is the row-major cell buffer (len == r*c).
//   - numCounts[v] counts cells equal to v.
//   - rowCounts[i][v] / colCounts[j][v] count v in row i / column j.
//   - countRows[k][v] counts rows holding exactly k copies of v (k in 0..c).
//   - countCols[k][v] counts columns holding exactly k copies of v (k in 0..r).
//   - dirty is set by Set and cleared by Recompute.
type CountMatrix struct {
	r, c, a int
	z       []int
	sum     int

	numCounts []int
	rowCounts [][]int
	colCounts [][]int
	countRows [][]int
	countCols [][]int

	dirty bool
}

// New creates an all-zero rows×cols matrix over the alphabet [0, alphabet).
// MAIN DESCRIPTION:
//   - Public constructor with strict shape and alphabet validation.
//
// Implementation:
//   - Stage 1: validate rows>0, cols>0, alphabet>0.
//   - Stage 2: allocate the cell buffer and every histogram.
//   - Stage 3: derive histograms for the all-zero grid.
//
// Errors:
//   - ErrInvalidDimensions, ErrInvalidAlphabet.
//
// Complexity:
//   - Time O(R·C + (R+C)·A), Space the same.
func New(rows, cols, alphabet int) (*CountMatrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if alphabet <= 0 {
		return nil, ErrInvalidAlphabet
	}
	m := &CountMatrix{
		r: rows,
		c: cols,
		a: alphabet,
		z: make([]int, rows*cols),
	}
	m.allocate()
	m.Recompute()

	return m, nil
}

// FromRows builds a CountMatrix from a non-empty rectangular 2D slice.
// The input is deep-copied; later changes to values do not affect the matrix.
//
// Errors:
//   - ErrInvalidDimensions when values has no rows or no columns.
//   - ErrNonRectangular when row lengths differ.
//   - ErrValueOutOfAlphabet (wrapped with coordinates) on an invalid cell.
func FromRows(values [][]int, alphabet int) (*CountMatrix, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	rows, cols := len(values), len(values[0])
	for _, row := range values {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	m, err := New(rows, cols, alphabet)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := values[i][j]
			if v < 0 || v >= alphabet {
				return nil, zErrorf(ctxSet, i, j, ErrValueOutOfAlphabet)
			}
			m.z[i*cols+j] = v
		}
	}
	m.Recompute()

	return m, nil
}

// MustFromRows is FromRows for static tables; it panics on invalid input.
// Use it only for literals known to be valid at compile time.
func MustFromRows(values [][]int, alphabet int) *CountMatrix {
	m, err := FromRows(values, alphabet)
	if err != nil {
		panic(err)
	}

	return m
}

// allocate sizes every histogram for the current shape and alphabet.
func (m *CountMatrix) allocate() {
	m.numCounts = make([]int, m.a)
	m.rowCounts = make([][]int, m.r)
	for i := range m.rowCounts {
		m.rowCounts[i] = make([]int, m.a)
	}
	m.colCounts = make([][]int, m.c)
	for j := range m.colCounts {
		m.colCounts[j] = make([]int, m.a)
	}
	m.countRows = make([][]int, m.c+1)
	for k := range m.countRows {
		m.countRows[k] = make([]int, m.a)
	}
	m.countCols = make([][]int, m.r+1)
	for k := range m.countCols {
		m.countCols[k] = make([]int, m.a)
	}
}

// Rows returns the number of rows.
func (m *CountMatrix) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *CountMatrix) Cols() int { return m.c }

// Alphabet returns the alphabet size A; valid values are 0..A-1.
func (m *CountMatrix) Alphabet() int { return m.a }

// inBounds reports whether (i,j) addresses a cell.
func (m *CountMatrix) inBounds(i, j int) bool {
	return i >= 0 && i < m.r && j >= 0 && j < m.c
}

// At returns the value at (i,j) or ErrOutOfRange.
func (m *CountMatrix) At(i, j int) (int, error) {
	if !m.inBounds(i, j) {
		return 0, zErrorf(ctxAt, i, j, ErrOutOfRange)
	}

	return m.z[i*m.c+j], nil
}

// Get returns the value at (i,j) without error reporting.
// Callers must guarantee the indices are valid; it panics otherwise.
func (m *CountMatrix) Get(i, j int) int {
	if !m.inBounds(i, j) {
		panic(zErrorf(ctxAt, i, j, ErrOutOfRange))
	}

	return m.z[i*m.c+j]
}

// Set writes v at (i,j) and marks the derived statistics dirty.
//
// Errors:
//   - ErrOutOfRange for invalid indices.
//   - ErrValueOutOfAlphabet when v is outside [0, A).
func (m *CountMatrix) Set(i, j, v int) error {
	if !m.inBounds(i, j) {
		return zErrorf(ctxSet, i, j, ErrOutOfRange)
	}
	if v < 0 || v >= m.a {
		return zErrorf(ctxSet, i, j, ErrValueOutOfAlphabet)
	}
	m.z[i*m.c+j] = v
	m.dirty = true

	return nil
}

// Row returns a copy of row i.
func (m *CountMatrix) Row(i int) ([]int, error) {
	if i < 0 || i >= m.r {
		return nil, zErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]int, m.c)
	copy(out, m.z[i*m.c:(i+1)*m.c])

	return out, nil
}

// Values returns a deep copy of the grid as a 2D slice.
func (m *CountMatrix) Values() [][]int {
	out := make([][]int, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = make([]int, m.c)
		copy(out[i], m.z[i*m.c:(i+1)*m.c])
	}

	return out
}

// Dirty reports whether cells were written since the last Recompute.
func (m *CountMatrix) Dirty() bool { return m.dirty }

// Recompute rebuilds every histogram from the current cells.
// Implementation:
//   - Stage 1: zero all histograms.
//   - Stage 2: one pass over cells fills sum, numCounts, rowCounts, colCounts.
//   - Stage 3: meta-histograms from the row/column histograms.
//
// Complexity: O(R·C + (R+C)·A).
func (m *CountMatrix) Recompute() {
	m.sum = 0
	clear(m.numCounts)
	for i := range m.rowCounts {
		clear(m.rowCounts[i])
	}
	for j := range m.colCounts {
		clear(m.colCounts[j])
	}
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			v := m.z[base+j]
			m.sum += v
			m.numCounts[v]++
			m.rowCounts[i][v]++
			m.colCounts[j][v]++
		}
	}
	m.recomputeMeta()
	m.dirty = false
}

// recomputeMeta derives countRows / countCols from the row and column histograms.
func (m *CountMatrix) recomputeMeta() {
	for k := range m.countRows {
		clear(m.countRows[k])
	}
	for k := range m.countCols {
		clear(m.countCols[k])
	}
	for i := 0; i < m.r; i++ {
		for v := 0; v < m.a; v++ {
			m.countRows[m.rowCounts[i][v]][v]++
		}
	}
	for j := 0; j < m.c; j++ {
		for v := 0; v < m.a; v++ {
			m.countCols[m.colCounts[j][v]][v]++
		}
	}
}

// ensure recomputes derived state when cells changed since the last Recompute.
func (m *CountMatrix) ensure() {
	if m.dirty {
		m.Recompute()
	}
}

// Sum returns the sum of all cell values.
func (m *CountMatrix) Sum() int {
	m.ensure()

	return m.sum
}

// NumCounts returns a copy of the global value histogram (len A).
func (m *CountMatrix) NumCounts() []int {
	m.ensure()

	return append([]int(nil), m.numCounts...)
}

// RowCount returns how many cells of row i hold v. Indices must be valid.
func (m *CountMatrix) RowCount(i, v int) int {
	m.ensure()

	return m.rowCounts[i][v]
}

// ColCount returns how many cells of column j hold v. Indices must be valid.
func (m *CountMatrix) ColCount(j, v int) int {
	m.ensure()

	return m.colCounts[j][v]
}

// RowCounts returns a deep copy of the per-row histograms (R×A).
func (m *CountMatrix) RowCounts() [][]int {
	m.ensure()

	return cloneGrid(m.rowCounts)
}

// ColCounts returns a deep copy of the per-column histograms (C×A).
func (m *CountMatrix) ColCounts() [][]int {
	m.ensure()

	return cloneGrid(m.colCounts)
}

// CountRows returns a deep copy of the row meta-histogram ((C+1)×A):
// entry [k][v] is the number of rows holding exactly k copies of v.
func (m *CountMatrix) CountRows() [][]int {
	m.ensure()

	return cloneGrid(m.countRows)
}

// CountCols returns a deep copy of the column meta-histogram ((R+1)×A).
func (m *CountMatrix) CountCols() [][]int {
	m.ensure()

	return cloneGrid(m.countCols)
}

func cloneGrid(g [][]int) [][]int {
	out := make([][]int, len(g))
	for i := range g {
		out[i] = append([]int(nil), g[i]...)
	}

	return out
}
