// SPDX-License-Identifier: MIT

package pattern

import (
	"fmt"

	"github.com/katalvlaran/ldematrix/ring"
)

// ViolationKind names the failed orthonormality rule.
type ViolationKind int8

const (
	// RowNorm: row weight sum not ≡ 0 (mod 4), or an odd number of weight-3 entries.
	RowNorm ViolationKind = iota + 1
	// ColumnNorm is the column dual of RowNorm.
	ColumnNorm
	// RowOrthogonality: a row pair has an odd dot product or an odd number of
	// positions holding two different non-zero weights.
	RowOrthogonality
	// ColumnOrthogonality is the column dual of RowOrthogonality.
	ColumnOrthogonality
)

func (k ViolationKind) String() string {
	switch k {
	case RowNorm:
		return "row-norm"
	case ColumnNorm:
		return "column-norm"
	case RowOrthogonality:
		return "row-orthogonality"
	case ColumnOrthogonality:
		return "column-orthogonality"
	}

	return "unknown"
}

// Violation locates one failed rule. Other is -1 for norm rules.
type Violation struct {
	Kind  ViolationKind
	Index int
	Other int
}

func (v Violation) String() string {
	if v.Other < 0 {
		return fmt.Sprintf("%s %d", v.Kind, v.Index)
	}

	return fmt.Sprintf("%s %d,%d", v.Kind, v.Index, v.Other)
}

// OrthoReport collects every violation found by Orthonormal.
type OrthoReport struct {
	Violations []Violation
}

// OK reports whether no rule was violated.
func (r OrthoReport) OK() bool { return len(r.Violations) == 0 }

// Orthonormal checks P against the residue conditions of an orthonormal
// matrix, using the per-entry weight m = N + 2M (ring.Weight):
//
//	norm:  Σ m over a line ≡ 0 (mod 4), and the count of m == 3 is even
//	ortho: for lines i < j, Σ m_i·m_j is even, and the count of positions
//	       where both weights are non-zero and differ is even
//
// Rows and columns are checked alike. All violations are reported.
func (p *Pattern) Orthonormal() OrthoReport {
	var w [Rows][Cols]int
	for i := 0; i < Rows; i++ {
		for j := 0; j < Cols; j++ {
			w[i][j] = ring.Weight(p.P.Get(i, j))
		}
	}
	row := func(i, k int) int { return w[i][k] }
	col := func(i, k int) int { return w[k][i] }

	var rep OrthoReport
	rep.norm(Rows, Cols, row, RowNorm)
	rep.norm(Cols, Rows, col, ColumnNorm)
	rep.ortho(Rows, Cols, row, RowOrthogonality)
	rep.ortho(Cols, Rows, col, ColumnOrthogonality)

	return rep
}

func (r *OrthoReport) norm(lines, length int, at func(i, k int) int, kind ViolationKind) {
	for i := 0; i < lines; i++ {
		sum, threes := 0, 0
		for k := 0; k < length; k++ {
			m := at(i, k)
			sum += m
			if m == 3 {
				threes++
			}
		}
		if sum%4 != 0 || threes%2 != 0 {
			r.Violations = append(r.Violations, Violation{Kind: kind, Index: i, Other: -1})
		}
	}
}

func (r *OrthoReport) ortho(lines, length int, at func(i, k int) int, kind ViolationKind) {
	for i := 0; i < lines; i++ {
		for j := i + 1; j < lines; j++ {
			dot, pairs := 0, 0
			for k := 0; k < length; k++ {
				a, b := at(i, k), at(j, k)
				dot += a * b
				if a != 0 && b != 0 && a != b {
					pairs++
				}
			}
			if dot%2 != 0 || pairs%2 != 0 {
				r.Violations = append(r.Violations, Violation{Kind: kind, Index: i, Other: j})
			}
		}
	}
}
