// SPDX-License-Identifier: MIT

// Package dedupe detects patterns that are equivalent up to transposition,
// the 2<->3 value swap and row/column permutation.
//
// The index is three levels deep: case id -> value sum -> insertion key ->
// stored pattern. Insertion keys come from a counter private to the index;
// they are distinct from pattern ids, which callers assign freely.
//
// A candidate is a duplicate of a stored pattern S when any of its views P,
// PT, Swap23 or Swap23T is permutation-equivalent to S.P. Swap23 may change
// the value sum, so both the P-sum and the Swap23-sum buckets are scanned.
//
// The index only grows. A Deduper is not safe for concurrent use; run one
// per worker (for example one per case).
package dedupe

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/katalvlaran/ldematrix/pattern"
	"github.com/katalvlaran/ldematrix/refdata"
	"github.com/katalvlaran/ldematrix/zmatrix"
)

var (
	// ErrNilPattern is returned for a nil candidate.
	ErrNilPattern = errors.New("dedupe: nil pattern")

	// ErrStalePattern is returned for a candidate whose derived views are out
	// of date; call Refresh first.
	ErrStalePattern = errors.New("dedupe: pattern views are stale")
)

// Option configures a Deduper.
type Option func(*Deduper)

// WithLogger sets the logger; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Deduper) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithMetrics reports checks and index sizes to m.
func WithMetrics(m *Metrics) Option {
	return func(d *Deduper) { d.metrics = m }
}

// Result describes one TryInsert call.
type Result struct {
	// Duplicate is true when an equivalent pattern is already stored.
	Duplicate bool
	// ID is the stored pattern's own id for duplicates, or the candidate's
	// id when it was inserted. Zero when unique and not inserted.
	ID int
	// Key is the index insertion key of the stored or inserted entry.
	Key int
}

type entry struct {
	key int
	p   *pattern.Pattern
}

// Deduper is the bucketed equivalence index.
type Deduper struct {
	// index[case][sum] lists entries in insertion order.
	index   map[int]map[int][]entry
	next    int
	logger  *slog.Logger
	metrics *Metrics
}

// New builds a Deduper seeded from table. Every seed is parsed and filed
// under its table case and its actual value sum; a sum key that disagrees
// with the pattern is logged. Parse failures abort construction.
func New(table refdata.Table, opts ...Option) (*Deduper, error) {
	d := &Deduper{
		index:  make(map[int]map[int][]entry),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}

	for _, e := range table.Entries() {
		p, err := pattern.New(e.ID, e.Source)
		if err != nil {
			return nil, fmt.Errorf("dedupe: seed case %d id %d: %w", e.Case, e.ID, err)
		}
		p.CaseID = e.Case
		if s := p.P.Sum(); s != e.Sum {
			d.logger.Warn("reference sum key mismatch",
				slog.Int("case", e.Case),
				slog.Int("id", e.ID),
				slog.Int("key", e.Sum),
				slog.Int("sum", s))
		}
		d.put(e.Case, p)
	}
	d.logger.Debug("deduper seeded", slog.Int("patterns", d.next))

	return d, nil
}

// TryInsert resolves p's case and looks for an equivalent stored pattern.
// When none exists and insert is true, p is stored under a fresh key; the
// index keeps the pointer, so callers must not mutate p afterwards.
//
// Errors: ErrNilPattern, ErrStalePattern, pattern.ErrAmbiguousCase.
func (d *Deduper) TryInsert(p *pattern.Pattern, insert bool) (Result, error) {
	if p == nil {
		return Result{}, ErrNilPattern
	}
	if p.Stale() {
		return Result{}, fmt.Errorf("dedupe: pattern %d: %w", p.ID, ErrStalePattern)
	}
	caseID, err := p.MatchCase()
	if err != nil {
		return Result{}, fmt.Errorf("dedupe: %w", err)
	}

	sum := p.P.Sum()
	sums := []int{sum}
	if s := p.Swap23.Sum(); s != sum {
		sums = append(sums, s)
	}
	for _, s := range sums {
		if hit, ok := d.scan(caseID, s, p); ok {
			d.metrics.check(caseID, resultDuplicate)
			d.logger.Debug("duplicate pattern",
				slog.Int("id", p.ID),
				slog.Int("duplicate_of", hit.p.ID),
				slog.Int("case", caseID),
				slog.Int("sum", s))

			return Result{Duplicate: true, ID: hit.p.ID, Key: hit.key}, nil
		}
	}
	d.metrics.check(caseID, resultUnique)
	if !insert {
		return Result{}, nil
	}
	key := d.put(caseID, p)

	return Result{ID: p.ID, Key: key}, nil
}

func (d *Deduper) scan(caseID, sum int, p *pattern.Pattern) (entry, bool) {
	for _, e := range d.index[caseID][sum] {
		if equivalent(p, e.p) {
			return e, true
		}
	}

	return entry{}, false
}

// equivalent reports whether any symmetric view of p maps onto stored.P.
func equivalent(p, stored *pattern.Pattern) bool {
	for _, v := range [...]*zmatrix.CountMatrix{p.P, p.PT, p.Swap23, p.Swap23T} {
		if v.PermutationEquivalent(stored.P) {
			return true
		}
	}

	return false
}

func (d *Deduper) put(caseID int, p *pattern.Pattern) int {
	sums, ok := d.index[caseID]
	if !ok {
		sums = make(map[int][]entry)
		d.index[caseID] = sums
	}
	d.next++
	sum := p.P.Sum()
	sums[sum] = append(sums[sum], entry{key: d.next, p: p})
	d.metrics.indexSize(caseID, d.UniqueCount(caseID))

	return d.next
}

// UniqueCount returns how many patterns are stored for caseID, seeds included.
func (d *Deduper) UniqueCount(caseID int) int {
	n := 0
	for _, bucket := range d.index[caseID] {
		n += len(bucket)
	}

	return n
}

// Len returns the total number of stored patterns.
func (d *Deduper) Len() int { return d.next }

// Cases returns the case ids present in the index, ascending.
func (d *Deduper) Cases() []int {
	out := make([]int, 0, len(d.index))
	for c := range d.index {
		out = append(out, c)
	}
	slices.Sort(out)

	return out
}
