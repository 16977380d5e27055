// SPDX-License-Identifier: MIT

// Package zmatrix - equality relations.
//
// Purpose:
//   - StrictEquals: identical shape, alphabet and cells.
//   - LooseEquals: identical row-histogram and column-histogram multisets.
//   - PermutationEquivalent: strict equality after some row and column permutation.
//
// Determinism:
//   - Multisets are compared by sorting copies lexicographically; no map iteration.

package zmatrix

import (
	"fmt"
	"slices"
)

// ValidateSameShape checks that a and b are non-nil and share rows, cols and
// alphabet. The boolean relations below treat a mismatch as "not equal";
// callers that must tell a mismatch from a genuine difference check here first.
// Errors: ErrDimensionMismatch.
func ValidateSameShape(a, b *CountMatrix) error {
	switch {
	case a == nil || b == nil:
		return fmt.Errorf("ValidateSameShape: nil operand: %w", ErrDimensionMismatch)
	case a.r != b.r || a.c != b.c:
		return fmt.Errorf("ValidateSameShape: %dx%d vs %dx%d: %w", a.r, a.c, b.r, b.c, ErrDimensionMismatch)
	case a.a != b.a:
		return fmt.Errorf("ValidateSameShape: alphabet %d vs %d: %w", a.a, b.a, ErrDimensionMismatch)
	}

	return nil
}

func (m *CountMatrix) sameShape(o *CountMatrix) bool { return ValidateSameShape(m, o) == nil }

// StrictEquals reports whether o has the same shape and identical cells.
// A nil o or a shape/alphabet mismatch reports false rather than an error;
// see ValidateSameShape.
func (m *CountMatrix) StrictEquals(o *CountMatrix) bool {
	if !m.sameShape(o) {
		return false
	}

	return slices.Equal(m.z, o.z)
}

// LooseEquals reports whether m and o have identical row-histogram multisets
// and identical column-histogram multisets (each histogram consumed at most
// once, order irrelevant). It is reflexive, symmetric and invariant under
// row/column permutation of either side. Like StrictEquals, a nil o or a
// shape/alphabet mismatch reports false; see ValidateSameShape.
// Complexity: O((R log R + C log C)·A).
func (m *CountMatrix) LooseEquals(o *CountMatrix) bool {
	if !m.sameShape(o) {
		return false
	}
	m.ensure()
	o.ensure()
	if m.sum != o.sum || !slices.Equal(m.numCounts, o.numCounts) {
		return false
	}

	return multisetEqual(m.rowCounts, o.rowCounts) && multisetEqual(m.colCounts, o.colCounts)
}

// RowHistogramsEqual reports whether the row histograms match position by position.
func (m *CountMatrix) RowHistogramsEqual(o *CountMatrix) bool {
	if !m.sameShape(o) {
		return false
	}
	m.ensure()
	o.ensure()

	return gridEqual(m.rowCounts, o.rowCounts)
}

// ColumnHistogramsEqual reports whether the column histograms match position by position.
func (m *CountMatrix) ColumnHistogramsEqual(o *CountMatrix) bool {
	if !m.sameShape(o) {
		return false
	}
	m.ensure()
	o.ensure()

	return gridEqual(m.colCounts, o.colCounts)
}

func gridEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

// multisetEqual compares two lists of equal-length vectors as multisets.
func multisetEqual(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	sa := make([][]int, len(a))
	sb := make([][]int, len(b))
	copy(sa, a)
	copy(sb, b)
	slices.SortFunc(sa, slices.Compare[[]int])
	slices.SortFunc(sb, slices.Compare[[]int])

	return gridEqual(sa, sb)
}

// PermutationEquivalent reports whether some row permutation combined with
// some column permutation maps m onto o exactly.
//
// Implementation:
//   - Stage 1: LooseEquals as a necessary condition.
//   - Stage 2: assign o's columns, left to right, to unused columns of m with
//     the same histogram.
//   - Stage 3: after each assignment, the multiset of m's row prefixes over the
//     assigned columns must equal o's row prefixes; prune otherwise. With all
//     columns assigned, equal row multisets imply a row permutation exists.
//
// Complexity: worst case O(C!·R log R·C), typically far less after pruning.
func (m *CountMatrix) PermutationEquivalent(o *CountMatrix) bool {
	if !m.LooseEquals(o) {
		return false
	}
	e := permSearch{
		m:      m,
		o:      o,
		used:   make([]bool, m.c),
		colMap: make([]int, m.c),
		pa:     make([][]int, m.r),
		pb:     make([][]int, m.r),
	}
	for i := 0; i < m.r; i++ {
		e.pa[i] = make([]int, 0, m.c)
		e.pb[i] = make([]int, 0, m.c)
	}

	return e.assign(0)
}

// permSearch holds the column-assignment state of PermutationEquivalent.
type permSearch struct {
	m, o   *CountMatrix
	used   []bool
	colMap []int   // colMap[j] = column of m placed at o's column j
	pa, pb [][]int // per-row prefixes of m (mapped) and o over assigned columns
}

func (e *permSearch) assign(j int) bool {
	if j == e.o.c {
		return true
	}
	for i := 0; i < e.m.c; i++ {
		if e.used[i] || !slices.Equal(e.m.colCounts[i], e.o.colCounts[j]) {
			continue
		}
		e.used[i] = true
		e.colMap[j] = i
		if e.prefixesMatch(j) && e.assign(j+1) {
			return true
		}
		e.used[i] = false
	}

	return false
}

// prefixesMatch compares row-prefix multisets over columns 0..j.
func (e *permSearch) prefixesMatch(j int) bool {
	for r := 0; r < e.m.r; r++ {
		e.pa[r] = e.pa[r][:0]
		e.pb[r] = e.pb[r][:0]
		for k := 0; k <= j; k++ {
			e.pa[r] = append(e.pa[r], e.m.z[r*e.m.c+e.colMap[k]])
			e.pb[r] = append(e.pb[r], e.o.z[r*e.o.c+k])
		}
	}

	return multisetEqual(e.pa, e.pb)
}
