// SPDX-License-Identifier: MIT

// Package cases holds the immutable catalog of reference case matrices and
// the per-case sub-case rule tables.
//
// The catalog is built once at package initialization and is read-only
// afterwards, so it is safe to share across goroutines. Reference grids are
// never handed out directly; Ref returns a clone.
package cases

import (
	"github.com/katalvlaran/ldematrix/zmatrix"
)

// Size is the edge length of every case reference matrix.
const Size = 6

// Count is the number of matchable cases (ids 1..Count).
const Count = 8

// Sentinel case ids.
const (
	// Unresolved marks a pattern whose case has not been computed yet.
	Unresolved = -1
	// Unmatched is returned when no catalog case matches; it doubles as the
	// id of the all-zero baseline, which is never matched or rearranged.
	Unmatched = 0
)

// Case is a catalog entry: an id, a binary reference grid and its sub-case rules.
type Case struct {
	ID    int
	ref   *zmatrix.CountMatrix
	rules []Rule
}

// Ref returns a copy of the reference grid.
func (c Case) Ref() *zmatrix.CountMatrix { return c.ref.Clone() }

// LooseMatch reports whether view has the reference's histogram multisets.
func (c Case) LooseMatch(view *zmatrix.CountMatrix) bool { return c.ref.LooseEquals(view) }

// StrictMatch reports whether view equals the reference cell by cell.
func (c Case) StrictMatch(view *zmatrix.CountMatrix) bool { return c.ref.StrictEquals(view) }

// ColumnSequenceMatch reports whether view's column histograms equal the
// reference's column histograms position by position.
func (c Case) ColumnSequenceMatch(view *zmatrix.CountMatrix) bool {
	return c.ref.ColumnHistogramsEqual(view)
}

// RowOnes returns how many ones reference row i holds.
func (c Case) RowOnes(i int) int { return c.ref.RowCount(i, 1) }

// ColOnes returns how many ones reference column j holds.
func (c Case) ColOnes(j int) int { return c.ref.ColCount(j, 1) }

// Support reports whether reference cell (i,j) is one.
func (c Case) Support(i, j int) bool { return c.ref.Get(i, j) == 1 }

// String renders the reference grid.
func (c Case) String() string { return c.ref.String() }

var (
	baseline Case
	catalog  []Case
)

// referenceRows lists the canonical block structures, indexed by case id.
var referenceRows = [Count + 1][Size][Size]int{
	0: {},
	1: {
		{1, 1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0, 0},
	},
	2: {
		{1, 1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0, 0},
	},
	3: {
		{1, 1, 1, 1, 0, 0},
		{1, 1, 1, 1, 0, 0},
		{1, 1, 1, 1, 0, 0},
		{1, 1, 1, 1, 0, 0},
	},
	4: {
		{1, 1, 1, 1, 0, 0},
		{1, 1, 1, 1, 0, 0},
		{1, 1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0, 0},
	},
	5: {
		{1, 1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0, 0},
		{0, 0, 1, 1, 0, 0},
		{0, 0, 1, 1, 0, 0},
	},
	6: {
		{1, 1, 1, 1, 0, 0},
		{1, 1, 1, 1, 0, 0},
		{1, 1, 0, 0, 1, 1},
		{1, 1, 0, 0, 1, 1},
	},
	7: {
		{1, 1, 0, 0, 0, 0},
		{1, 1, 0, 0, 0, 0},
		{0, 0, 1, 1, 0, 0},
		{0, 0, 1, 1, 0, 0},
		{0, 0, 0, 0, 1, 1},
		{0, 0, 0, 0, 1, 1},
	},
	8: {
		{1, 1, 1, 1, 0, 0},
		{1, 1, 1, 1, 0, 0},
		{1, 1, 0, 0, 1, 1},
		{1, 1, 0, 0, 1, 1},
		{0, 0, 1, 1, 1, 1},
		{0, 0, 1, 1, 1, 1},
	},
}

func init() {
	baseline = newCase(0)
	catalog = make([]Case, 0, Count)
	for id := 1; id <= Count; id++ {
		catalog = append(catalog, newCase(id))
	}
}

func newCase(id int) Case {
	rows := make([][]int, Size)
	for i := range rows {
		rows[i] = referenceRows[id][i][:]
	}

	return Case{
		ID:    id,
		ref:   zmatrix.MustFromRows(rows, 2),
		rules: ruleTable[id],
	}
}

// All returns the matchable cases 1..Count in id order.
func All() []Case {
	return append([]Case(nil), catalog...)
}

// Get returns the case with the given id; id 0 yields the baseline.
func Get(id int) (Case, bool) {
	switch {
	case id == Unmatched:
		return baseline, true
	case id >= 1 && id <= Count:
		return catalog[id-1], true
	}

	return Case{}, false
}

// Baseline returns the all-zero case 0.
func Baseline() Case { return baseline }
