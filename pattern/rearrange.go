// SPDX-License-Identifier: MIT

// Rearrangement search.
//
// Given a pattern whose case projection has the reference's histograms, find
// every row/column permutation that makes the projection equal the
// reference cell by cell.
//
//  1. Column phase: at position k, a reference column with no ones is skipped
//     without branching. Otherwise every column i ≥ k of the working case
//     view with the same count of ones is swapped into k (in the value view
//     too, in lockstep) and the search recurses on k+1; the swap is undone on
//     return.
//  2. At k == Cols the working column histograms must equal the reference's
//     position by position before the row phase starts.
//  3. Row phase: the same procedure on rows. At k == Rows a strict match of
//     the case view records the value view, keyed by its String form.
//
// With WithSingleSolution both phases stop once one solution exists.
//
// Complexity: worst case Π over non-zero reference lines of the candidate
// counts; the ones-count filter prunes most branches. Depth ≤ Rows+Cols.

package pattern

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/zmatrix"
)

// RearrangeOption configures Rearrange.
type RearrangeOption func(*rearrangeOptions)

type rearrangeOptions struct {
	single bool
}

// WithSingleSolution stops the search after the first solution.
func WithSingleSolution() RearrangeOption {
	return func(o *rearrangeOptions) { o.single = true }
}

// Solution is one rearranged value view.
type Solution struct {
	// Key is View.String(); solutions are unique by Key.
	Key  string
	View *zmatrix.CountMatrix
}

// Rearrangement is the outcome of a search.
type Rearrangement struct {
	Case      int
	Solutions []Solution // sorted by Key
}

// First returns the lowest-keyed solution.
func (r Rearrangement) First() (Solution, bool) {
	if len(r.Solutions) == 0 {
		return Solution{}, false
	}

	return r.Solutions[0], true
}

// Keys returns the solution keys in order.
func (r Rearrangement) Keys() []string {
	keys := make([]string, len(r.Solutions))
	for i, s := range r.Solutions {
		keys[i] = s.Key
	}

	return keys
}

// Rearrange resolves the case if needed and searches P and PT, each one
// whose case projection has the reference's histograms. Unmatched patterns
// return ErrNotRearrangeable. A matched pattern with no exact arrangement
// returns an empty solution set and a nil error. A stale pattern yields
// ErrStalePattern; it is never refreshed implicitly.
func (p *Pattern) Rearrange(opts ...RearrangeOption) (Rearrangement, error) {
	if p.stale {
		return Rearrangement{Case: cases.Unresolved}, fmt.Errorf("pattern %d: Rearrange: %w", p.ID, ErrStalePattern)
	}
	var o rearrangeOptions
	for _, opt := range opts {
		opt(&o)
	}

	id, err := p.MatchCase()
	if err != nil {
		return Rearrangement{Case: cases.Unresolved}, err
	}
	if id == cases.Unmatched {
		return Rearrangement{Case: id}, fmt.Errorf("pattern %d: %w", p.ID, ErrNotRearrangeable)
	}
	c, _ := cases.Get(id)

	e := &rearranger{
		ref:    c,
		single: o.single,
		found:  make(map[string]*zmatrix.CountMatrix),
	}
	views := [...]struct{ values, proj *zmatrix.CountMatrix }{
		{p.P, p.CV},
		{p.PT, p.CVT},
	}
	for _, v := range views {
		if e.done() {
			break
		}
		if !c.LooseMatch(v.proj) {
			continue
		}
		e.values, e.proj = v.values.Clone(), v.proj.Clone()
		e.columns(0)
	}

	return e.result(id), nil
}

// rearranger holds the working copies permuted in lockstep.
type rearranger struct {
	ref    cases.Case
	single bool

	values *zmatrix.CountMatrix
	proj   *zmatrix.CountMatrix

	found map[string]*zmatrix.CountMatrix
}

func (e *rearranger) done() bool { return e.single && len(e.found) > 0 }

func (e *rearranger) columns(k int) {
	if e.done() {
		return
	}
	if k == Cols {
		if e.ref.ColumnSequenceMatch(e.proj) {
			e.rows(0)
		}
		return
	}
	want := e.ref.ColOnes(k)
	if want == 0 {
		e.columns(k + 1)
		return
	}
	for i := k; i < Cols && !e.done(); i++ {
		if e.proj.ColCount(i, 1) != want {
			continue
		}
		e.swapColumns(k, i)
		e.columns(k + 1)
		e.swapColumns(k, i)
	}
}

func (e *rearranger) rows(k int) {
	if e.done() {
		return
	}
	if k == Rows {
		if e.ref.StrictMatch(e.proj) {
			key := e.values.String()
			if _, ok := e.found[key]; !ok {
				e.found[key] = e.values.Clone()
			}
		}
		return
	}
	want := e.ref.RowOnes(k)
	if want == 0 {
		e.rows(k + 1)
		return
	}
	for i := k; i < Rows && !e.done(); i++ {
		if e.proj.RowCount(i, 1) != want {
			continue
		}
		e.swapRows(k, i)
		e.rows(k + 1)
		e.swapRows(k, i)
	}
}

// Indices come from the loops above and are always in range.
func (e *rearranger) swapColumns(a, b int) {
	if a == b {
		return
	}
	_ = e.values.SwapColumns(a, b)
	_ = e.proj.SwapColumns(a, b)
}

func (e *rearranger) swapRows(a, b int) {
	if a == b {
		return
	}
	_ = e.values.SwapRows(a, b)
	_ = e.proj.SwapRows(a, b)
}

func (e *rearranger) result(id int) Rearrangement {
	keys := make([]string, 0, len(e.found))
	for k := range e.found {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := Rearrangement{Case: id, Solutions: make([]Solution, len(keys))}
	for i, k := range keys {
		out.Solutions[i] = Solution{Key: k, View: e.found[k]}
	}

	return out
}
