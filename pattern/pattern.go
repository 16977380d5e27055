// SPDX-License-Identifier: MIT

package pattern

import (
	"fmt"

	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/ring"
	"github.com/katalvlaran/ldematrix/zmatrix"
)

// Pattern grid shape. Patterns share the edge length of the case references.
const (
	Rows = cases.Size
	Cols = cases.Size
)

// groupAlphabet admits labels 0..Rows*Cols; labels in use are 1..Rows*Cols.
const groupAlphabet = Rows*Cols + 1

// Pattern is a 6×6 value grid over {0,1,2,3} together with its derived views.
//
// Every view is an independent CountMatrix owned by the Pattern. PT, Swap23T
// and CVT are the transposes of P, Swap23 and CV as of the last derivation.
// T-gate operations rewrite P, LDE and Groups only; the other views keep
// their previous contents and Stale reports true until Refresh is called.
type Pattern struct {
	// ID is caller assigned and need not be unique across collections.
	ID int

	P       *zmatrix.CountMatrix // primary values
	PT      *zmatrix.CountMatrix // transpose of P
	Swap23  *zmatrix.CountMatrix // P with values 2 and 3 exchanged
	Swap23T *zmatrix.CountMatrix // transpose of Swap23
	CV      *zmatrix.CountMatrix // case projection: v < 2 -> 0, else 1
	CVT     *zmatrix.CountMatrix // transpose of CV
	Alt     *zmatrix.CountMatrix // alternate encoding, values 1 and 2 exchanged

	// Groups labels each cell with its provenance group, 1..Rows*Cols at
	// construction; T-gates merge labels.
	Groups *zmatrix.CountMatrix

	// LDE holds the accumulated per-cell T-gate cost.
	LDE [][]int

	// Original is the canonical rendering of P at construction.
	Original string

	// CaseID is cases.Unresolved until MatchCase runs.
	CaseID int

	// SubCase is cases.NoSubCase until MatchSubCase runs.
	SubCase cases.SubCase

	// Ops logs the applied T-gate operations in order.
	Ops []Op

	stale bool
}

// New parses src and builds a Pattern with every view derived.
func New(id int, src string) (*Pattern, error) {
	values, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("pattern %d: %w", id, err)
	}

	return FromValues(id, values)
}

// MustNew is New that panics on error. Intended for fixtures and tests.
func MustNew(id int, src string) *Pattern {
	p, err := New(id, src)
	if err != nil {
		panic(err)
	}

	return p
}

// FromValues builds a Pattern from a Rows×Cols grid. The grid is copied.
func FromValues(id int, values [][]int) (*Pattern, error) {
	switch {
	case len(values) > Rows:
		return nil, fmt.Errorf("pattern %d: %w", id, ErrTooManyRows)
	case len(values) < Rows:
		return nil, fmt.Errorf("pattern %d: %w", id, ErrTooFewRows)
	}
	for r, row := range values {
		switch {
		case len(row) > Cols:
			return nil, fmt.Errorf("pattern %d: row %d: %w", id, r, ErrTooManyCols)
		case len(row) < Cols:
			return nil, fmt.Errorf("pattern %d: row %d: %w", id, r, ErrTooFewCols)
		}
	}
	p, err := zmatrix.FromRows(values, ring.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("pattern %d: %w: %w", id, ErrInvalidToken, err)
	}

	return build(id, p), nil
}

// build wraps an already validated Rows×Cols primary view.
func build(id int, p *zmatrix.CountMatrix) *Pattern {
	groups := make([][]int, Rows)
	lde := make([][]int, Rows)
	label := 1
	for i := range groups {
		groups[i] = make([]int, Cols)
		lde[i] = make([]int, Cols)
		for j := range groups[i] {
			groups[i][j] = label
			label++
		}
	}

	pat := &Pattern{
		ID:      id,
		P:       p,
		Groups:  zmatrix.MustFromRows(groups, groupAlphabet),
		LDE:     lde,
		CaseID:  cases.Unresolved,
		SubCase: cases.NoSubCase,
	}
	pat.derive()
	pat.Original = pat.P.String()

	return pat
}

// derive rebuilds every view that is a function of P.
func (p *Pattern) derive() {
	p.PT = p.P.Transpose()
	p.Swap23 = project(p.P, ring.SwapTwoThree, ring.Alphabet)
	p.Swap23T = p.Swap23.Transpose()
	p.CV = project(p.P, ring.CaseBit, 2)
	p.CVT = p.CV.Transpose()
	p.Alt = project(p.P, ring.AltEncoding, ring.Alphabet)
}

// project applies a total value mapping; failure is a programming error.
func project(m *zmatrix.CountMatrix, f func(int) int, alphabet int) *zmatrix.CountMatrix {
	out, err := m.Map(f, alphabet)
	if err != nil {
		panic(fmt.Sprintf("pattern: projection outside alphabet %d: %v", alphabet, err))
	}

	return out
}

// Stale reports whether P changed since the derived views were built.
func (p *Pattern) Stale() bool { return p.stale }

// Refresh re-derives PT, Swap23, Swap23T, CV, CVT and Alt from P and drops the
// cached case and sub-case, which were computed from the old projection.
func (p *Pattern) Refresh() {
	p.derive()
	p.stale = false
	p.CaseID = cases.Unresolved
	p.SubCase = cases.NoSubCase
}

// Clone returns a deep copy.
func (p *Pattern) Clone() *Pattern {
	q := *p
	q.P = p.P.Clone()
	q.PT = p.PT.Clone()
	q.Swap23 = p.Swap23.Clone()
	q.Swap23T = p.Swap23T.Clone()
	q.CV = p.CV.Clone()
	q.CVT = p.CVT.Clone()
	q.Alt = p.Alt.Clone()
	q.Groups = p.Groups.Clone()
	q.LDE = copyGrid(p.LDE)
	q.Ops = append([]Op(nil), p.Ops...)

	return &q
}

// String renders P in the canonical single-line form accepted by Parse.
func (p *Pattern) String() string { return p.P.String() }

// Multiline renders P one row per line.
func (p *Pattern) Multiline() string { return p.P.Multiline() }

// AltString renders the alternate encoding view.
func (p *Pattern) AltString() string { return p.Alt.String() }

func copyGrid(g [][]int) [][]int {
	out := make([][]int, len(g))
	for i := range g {
		out[i] = append([]int(nil), g[i]...)
	}

	return out
}
