// SPDX-License-Identifier: MIT

package pattern

import (
	"fmt"

	"github.com/katalvlaran/ldematrix/ring"
	"github.com/katalvlaran/ldematrix/zmatrix"
)

// OpKind tells left (row) from right (column) T-gate multiplication.
type OpKind int8

const (
	// LeftOp combines two rows.
	LeftOp OpKind = iota + 1
	// RightOp combines two columns.
	RightOp
)

// Op is one applied T-gate.
type Op struct {
	Kind OpKind
	A, B int
}

// String renders the op as "L(a,b)" or "R(a,b)".
func (o Op) String() string {
	k := "L"
	if o.Kind == RightOp {
		k = "R"
	}

	return fmt.Sprintf("%s(%d,%d)", k, o.A, o.B)
}

// LeftMultiply applies a left T-gate on rows a and b: for every column both
// cells are replaced with ring.Combine of their old values, both LDE counters
// grow by ring.CostIncrement and both group labels become the smaller one.
//
// Only P, LDE and Groups change; the pattern is Stale afterwards.
// Errors: ErrOutOfRange, ErrSameLine.
func (p *Pattern) LeftMultiply(a, b int) error {
	if err := checkLines(a, b, Rows); err != nil {
		return fmt.Errorf("pattern %d: LeftMultiply(%d,%d): %w", p.ID, a, b, err)
	}
	for j := 0; j < Cols; j++ {
		if err := p.combineCells(a, j, b, j); err != nil {
			return fmt.Errorf("pattern %d: LeftMultiply(%d,%d): %w", p.ID, a, b, err)
		}
	}
	p.applied(Op{Kind: LeftOp, A: a, B: b})

	return nil
}

// RightMultiply is the column dual of LeftMultiply.
func (p *Pattern) RightMultiply(a, b int) error {
	if err := checkLines(a, b, Cols); err != nil {
		return fmt.Errorf("pattern %d: RightMultiply(%d,%d): %w", p.ID, a, b, err)
	}
	for i := 0; i < Rows; i++ {
		if err := p.combineCells(i, a, i, b); err != nil {
			return fmt.Errorf("pattern %d: RightMultiply(%d,%d): %w", p.ID, a, b, err)
		}
	}
	p.applied(Op{Kind: RightOp, A: a, B: b})

	return nil
}

func checkLines(a, b, n int) error {
	if a < 0 || a >= n || b < 0 || b >= n {
		return ErrOutOfRange
	}
	if a == b {
		return ErrSameLine
	}

	return nil
}

// combineCells rewrites the cell pair (r1,c1), (r2,c2) in place.
func (p *Pattern) combineCells(r1, c1, r2, c2 int) error {
	v := ring.Combine(p.P.Get(r1, c1), p.P.Get(r2, c2))
	if err := p.P.Set(r1, c1, v); err != nil {
		return err
	}
	if err := p.P.Set(r2, c2, v); err != nil {
		return err
	}
	p.LDE[r1][c1] += ring.CostIncrement
	p.LDE[r2][c2] += ring.CostIncrement

	return mergeGroups(p.Groups, r1, c1, r2, c2)
}

// mergeGroups relabels both cells with the smaller of their labels.
func mergeGroups(g *zmatrix.CountMatrix, r1, c1, r2, c2 int) error {
	lo := min(g.Get(r1, c1), g.Get(r2, c2))
	if err := g.Set(r1, c1, lo); err != nil {
		return err
	}

	return g.Set(r2, c2, lo)
}

func (p *Pattern) applied(op Op) {
	p.Ops = append(p.Ops, op)
	p.stale = true
}

// OpsString renders the applied operations separated by blanks.
func (p *Pattern) OpsString() string {
	s := ""
	for i, op := range p.Ops {
		if i > 0 {
			s += " "
		}
		s += op.String()
	}

	return s
}
