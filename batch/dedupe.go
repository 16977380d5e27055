// SPDX-License-Identifier: MIT

package batch

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/dedupe"
	"github.com/katalvlaran/ldematrix/pattern"
	"github.com/katalvlaran/ldematrix/refdata"
	"github.com/katalvlaran/ldematrix/store"
)

// DedupeReport summarizes a Dedupe or Expand run.
type DedupeReport struct {
	RunID string
	// Uniques lists newly stored patterns per case in input order.
	Uniques map[int][]*pattern.Pattern
	// DuplicateOf counts duplicates per stored pattern id.
	DuplicateOf map[int]int
	Duplicates  int
	// Failed counts patterns that could not be checked.
	Failed int
	// StoreErrors counts uniques that could not be persisted.
	StoreErrors int
}

func newDedupeReport(runID string) DedupeReport {
	return DedupeReport{
		RunID:       runID,
		Uniques:     make(map[int][]*pattern.Pattern),
		DuplicateOf: make(map[int]int),
	}
}

// UniqueCount returns the number of new uniques across cases.
func (r DedupeReport) UniqueCount() int {
	n := 0
	for _, u := range r.Uniques {
		n += len(u)
	}

	return n
}

// Cases returns the case ids with new uniques, ascending.
func (r DedupeReport) Cases() []int {
	out := make([]int, 0, len(r.Uniques))
	for c := range r.Uniques {
		out = append(out, c)
	}
	slices.Sort(out)

	return out
}

func (r *DedupeReport) merge(caseID int, w caseRun) {
	if len(w.uniques) > 0 {
		r.Uniques[caseID] = append(r.Uniques[caseID], w.uniques...)
	}
	for id, n := range w.duplicateOf {
		r.DuplicateOf[id] += n
		r.Duplicates += n
	}
	r.Failed += w.failed
	r.StoreErrors += w.storeErrors
}

// caseRun is one worker's private tally.
type caseRun struct {
	uniques     []*pattern.Pattern
	duplicateOf map[int]int
	failed      int
	storeErrors int
}

// Dedupe partitions patterns by case and runs one seeded Deduper per case
// on a bounded worker pool. Uniques are persisted when a store is
// configured; store failures are logged and counted, never fatal. Within a
// case patterns are checked in input order, so the outcome does not depend
// on scheduling. A seed that fails to parse or cancellation aborts the run.
func Dedupe(ctx context.Context, patterns []*pattern.Pattern, table refdata.Table, opts ...Option) (DedupeReport, error) {
	o := newOptions(opts)
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	o.metrics.run(stageDedupe)
	logger := o.logger.With(slog.String("run", o.runID))
	rep := newDedupeReport(o.runID)

	parts := make(map[int][]*pattern.Pattern)
	for _, p := range patterns {
		caseID, err := p.MatchCase()
		if err != nil {
			rep.Failed++
			logger.Warn("skipping pattern", slog.Int("id", p.ID), slog.String("error", err.Error()))
			o.metrics.pattern(stageDedupe, outcomeFailed)

			continue
		}
		parts[caseID] = append(parts[caseID], p)
	}
	ids := make([]int, 0, len(parts))
	for c := range parts {
		ids = append(ids, c)
	}
	slices.Sort(ids)

	runs := make([]caseRun, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, caseID := range ids {
		g.Go(func() error {
			d, err := dedupe.New(refdata.Table{caseID: table[caseID]},
				dedupe.WithLogger(logger.With(slog.Int("case", caseID))),
				dedupe.WithMetrics(o.metrics.dedupeMetrics()))
			if err != nil {
				return err
			}
			w := &runs[i]
			w.duplicateOf = make(map[int]int)
			for _, p := range parts[caseID] {
				if err := gctx.Err(); err != nil {
					return err
				}
				check(gctx, d, p, o, logger, w)
			}
			logger.Info("case deduped",
				slog.Int("case", caseID),
				slog.Int("checked", len(parts[caseID])),
				slog.Int("unique", len(w.uniques)))

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, fmt.Errorf("batch: dedupe: %w", err)
	}
	for i, caseID := range ids {
		rep.merge(caseID, runs[i])
	}
	logger.Info("dedupe finished",
		slog.Int("unique", rep.UniqueCount()),
		slog.Int("duplicates", rep.Duplicates),
		slog.Int("failed", rep.Failed),
		slog.Int("store_errors", rep.StoreErrors))

	return rep, nil
}

// check runs one TryInsert and records the outcome in w.
func check(ctx context.Context, d *dedupe.Deduper, p *pattern.Pattern, o options, logger *slog.Logger, w *caseRun) {
	res, err := d.TryInsert(p, true)
	switch {
	case err != nil:
		w.failed++
		logger.Warn("skipping pattern", slog.Int("id", p.ID), slog.String("error", err.Error()))
		o.metrics.pattern(stageDedupe, outcomeFailed)
	case res.Duplicate:
		w.duplicateOf[res.ID]++
		o.metrics.pattern(stageDedupe, outcomeDuplicate)
	default:
		w.uniques = append(w.uniques, p)
		o.metrics.pattern(stageDedupe, outcomeUnique)
		if o.store == nil {
			return
		}
		if err := o.store.PutUnique(ctx, record(o.runID, res.Key, p)); err != nil {
			w.storeErrors++
			logger.Error("store unique", slog.Int("id", p.ID), slog.String("error", err.Error()))
			o.metrics.pattern(stageStore, outcomeFailed)

			return
		}
		o.metrics.pattern(stageStore, outcomeOK)
	}
}

func record(runID string, key int, p *pattern.Pattern) store.Record {
	rec := store.Record{
		RunID:  runID,
		Case:   p.CaseID,
		Key:    key,
		ID:     p.ID,
		Source: p.String(),
	}
	if sub, err := p.MatchSubCase(); err == nil {
		rec.SubCase = sub.String()
	}

	return rec
}

// Expand reduces every cell of a clone of p by reduce, enumerates all value
// assignments the reduced LDE exponents allow and dedupes them against table
// in enumeration order on a single Deduper.
func Expand(ctx context.Context, p *pattern.Pattern, reduce int, table refdata.Table, opts ...Option) (DedupeReport, error) {
	o := newOptions(opts)
	if o.runID == "" {
		o.runID = uuid.NewString()
	}
	o.metrics.run("expand")
	logger := o.logger.With(slog.String("run", o.runID), slog.Int("source", p.ID))
	rep := newDedupeReport(o.runID)

	q := p.Clone()
	if err := q.ReduceAll(reduce); err != nil {
		return rep, fmt.Errorf("batch: expand: %w", err)
	}
	d, err := dedupe.New(table,
		dedupe.WithLogger(logger),
		dedupe.WithMetrics(o.metrics.dedupeMetrics()))
	if err != nil {
		return rep, fmt.Errorf("batch: expand: %w", err)
	}
	assignments, err := q.Assignments()
	if err != nil {
		return rep, fmt.Errorf("batch: expand: %w", err)
	}
	logger.Info("expanding",
		slog.String("ops", q.OpsString()),
		slog.Uint64("assignments", q.AssignmentCount()))

	w := caseRun{duplicateOf: make(map[int]int)}
	byCase := make(map[int][]*pattern.Pattern)
	for a := range assignments {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("batch: expand: %w", err)
		}
		before := len(w.uniques)
		check(ctx, d, a, o, logger, &w)
		if len(w.uniques) > before {
			byCase[a.CaseID] = append(byCase[a.CaseID], a)
		}
	}
	w.uniques = nil
	rep.merge(cases.Unmatched, w)
	for caseID, u := range byCase {
		rep.Uniques[caseID] = u
	}
	logger.Info("expand finished",
		slog.Int("unique", rep.UniqueCount()),
		slog.Int("duplicates", rep.Duplicates))

	return rep, nil
}
