// SPDX-License-Identifier: MIT

package pattern

import (
	"fmt"

	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/zmatrix"
)

// MatchCase returns the single catalog case (1..cases.Count) whose reference
// carries the same row and column histograms as cv or its transpose cvt, or
// cases.Unmatched when none does. Two or more matching cases yield
// ErrAmbiguousCase naming both ids.
func MatchCase(cv, cvt *zmatrix.CountMatrix) (int, error) {
	found := cases.Unmatched
	for _, c := range cases.All() {
		if !c.LooseMatch(cv) && !c.LooseMatch(cvt) {
			continue
		}
		if found != cases.Unmatched {
			return cases.Unresolved, fmt.Errorf("cases %d and %d: %w", found, c.ID, ErrAmbiguousCase)
		}
		found = c.ID
	}

	return found, nil
}

// MatchCase resolves and caches the pattern's case id from CV and CVT.
// A cached id is returned as is; Refresh clears it.
func (p *Pattern) MatchCase() (int, error) {
	if p.CaseID != cases.Unresolved {
		return p.CaseID, nil
	}
	id, err := MatchCase(p.CV, p.CVT)
	if err != nil {
		return cases.Unresolved, fmt.Errorf("pattern %d: %w", p.ID, err)
	}
	p.CaseID = id

	return id, nil
}

// MatchSubCase resolves the case if needed, aligns a value view with the case
// reference and runs the case's sub-case rules on it. Unmatched patterns,
// cases without rules and patterns with no aligned arrangement all report
// cases.NoSubCase with a nil error. A stale pattern yields ErrStalePattern.
func (p *Pattern) MatchSubCase() (cases.SubCase, error) {
	if p.stale {
		return cases.NoSubCase, fmt.Errorf("pattern %d: MatchSubCase: %w", p.ID, ErrStalePattern)
	}
	id, err := p.MatchCase()
	if err != nil {
		return cases.NoSubCase, err
	}
	p.SubCase = cases.NoSubCase
	if id == cases.Unmatched {
		return p.SubCase, nil
	}
	c, _ := cases.Get(id)
	p.SubCase = c.Classify(p.alignedView(c))

	return p.SubCase, nil
}

// alignedView returns a value view whose case projection equals c's
// reference cell by cell, or nil when no arrangement exists.
func (p *Pattern) alignedView(c cases.Case) *zmatrix.CountMatrix {
	switch {
	case c.StrictMatch(p.CV):
		return p.P
	case c.StrictMatch(p.CVT):
		return p.PT
	}
	r, err := p.Rearrange(WithSingleSolution())
	if err != nil {
		return nil
	}
	if s, ok := r.First(); ok {
		return s.View
	}

	return nil
}
