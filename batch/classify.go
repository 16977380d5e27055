// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/pattern"
	"github.com/katalvlaran/ldematrix/zmatrix"
)

// Classified is one pattern's case assignment.
type Classified struct {
	Pattern *pattern.Pattern
	Case    int
	SubCase cases.SubCase
	// Arranged is the lowest-keyed rearrangement; nil when unmatched or when
	// no exact arrangement exists.
	Arranged  *zmatrix.CountMatrix
	Solutions int
}

// Line returns the arranged view in source encoding, falling back to P.
func (c Classified) Line() string {
	if c.Arranged != nil {
		return c.Arranged.String()
	}

	return c.Pattern.String()
}

// ClassifyReport groups classified patterns by case.
type ClassifyReport struct {
	// ByCase holds patterns per case id in input order; unmatched patterns
	// are under cases.Unmatched.
	ByCase map[int][]Classified
	// Failed counts patterns that could not be classified: an ambiguous case
	// or derived views left stale by a T-gate op.
	Failed int
}

// Cases returns the case ids present in the report, ascending.
func (r ClassifyReport) Cases() []int {
	out := make([]int, 0, len(r.ByCase))
	for c := range r.ByCase {
		out = append(out, c)
	}
	slices.Sort(out)

	return out
}

// BySubCase splits one case's patterns by sub-case letter.
func (r ClassifyReport) BySubCase(caseID int) map[cases.SubCase][]Classified {
	out := make(map[cases.SubCase][]Classified)
	for _, c := range r.ByCase[caseID] {
		out[c.SubCase] = append(out[c.SubCase], c)
	}

	return out
}

// Classify resolves case, sub-case and first rearrangement for every
// pattern on a bounded worker pool. Patterns are independent, so each one is
// touched by exactly one worker. Ambiguous patterns are logged and counted
// in Failed. Only cancellation aborts the run.
func Classify(ctx context.Context, patterns []*pattern.Pattern, opts ...Option) (ClassifyReport, error) {
	o := newOptions(opts)
	o.metrics.run(stageClassify)

	results := make([]Classified, len(patterns))
	ok := make([]bool, len(patterns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, p := range patterns {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := classifyOne(p, o.single)
			if err != nil {
				o.logger.Warn("skipping pattern",
					slog.Int("id", p.ID),
					slog.String("error", err.Error()))
				o.metrics.pattern(stageClassify, outcomeFailed)

				return nil
			}
			if c.Case == cases.Unmatched {
				o.metrics.pattern(stageClassify, outcomeUnmatched)
			} else {
				o.metrics.pattern(stageClassify, outcomeOK)
			}
			results[i], ok[i] = c, true

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ClassifyReport{}, fmt.Errorf("batch: classify: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return ClassifyReport{}, fmt.Errorf("batch: classify: %w", err)
	}

	rep := ClassifyReport{ByCase: make(map[int][]Classified)}
	for i, c := range results {
		if !ok[i] {
			rep.Failed++
			continue
		}
		rep.ByCase[c.Case] = append(rep.ByCase[c.Case], c)
	}
	for _, id := range rep.Cases() {
		o.logger.Info("case classified",
			slog.Int("case", id),
			slog.Int("patterns", len(rep.ByCase[id])))
	}

	return rep, nil
}

func classifyOne(p *pattern.Pattern, single bool) (Classified, error) {
	caseID, err := p.MatchCase()
	if err != nil {
		return Classified{}, err
	}
	c := Classified{Pattern: p, Case: caseID, SubCase: cases.NoSubCase}
	if caseID == cases.Unmatched {
		return c, nil
	}

	var ropts []pattern.RearrangeOption
	if single {
		ropts = append(ropts, pattern.WithSingleSolution())
	}
	r, err := p.Rearrange(ropts...)
	if err != nil {
		return Classified{}, err
	}
	c.Solutions = len(r.Solutions)
	if s, found := r.First(); found {
		c.Arranged = s.View
	}
	if c.SubCase, err = p.MatchSubCase(); err != nil {
		return Classified{}, err
	}

	return c, nil
}
