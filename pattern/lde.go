// SPDX-License-Identifier: MIT

package pattern

import (
	"fmt"
	"iter"
	"math"

	"github.com/katalvlaran/ldematrix/ring"
	"github.com/katalvlaran/ldematrix/zmatrix"
)

// AssignmentIDStride separates the synthetic ids of enumerated assignments:
// the k-th assignment (k ≥ 1) of pattern id gets id*AssignmentIDStride + k.
// It exceeds the largest possible count, 2^(Rows*Cols).
const AssignmentIDStride = 1_000_000_000_000

// MaxAssignableID is the largest pattern id whose assignment ids all fit an int.
const MaxAssignableID = (math.MaxInt - (AssignmentIDStride - 1)) / AssignmentIDStride

// ReduceEntry lowers the LDE of cell (r,c) by amount, clamping at zero.
// Errors: ErrOutOfRange, ErrNegativeAmount.
func (p *Pattern) ReduceEntry(r, c, amount int) error {
	if r < 0 || r >= Rows || c < 0 || c >= Cols {
		return fmt.Errorf("pattern %d: ReduceEntry(%d,%d): %w", p.ID, r, c, ErrOutOfRange)
	}
	if amount < 0 {
		return fmt.Errorf("pattern %d: ReduceEntry(%d,%d) by %d: %w", p.ID, r, c, amount, ErrNegativeAmount)
	}
	p.LDE[r][c] = max(0, p.LDE[r][c]-amount)

	return nil
}

// ReduceAll lowers every LDE by amount, clamping at zero.
func (p *Pattern) ReduceAll(amount int) error {
	if amount < 0 {
		return fmt.Errorf("pattern %d: ReduceAll(%d): %w", p.ID, amount, ErrNegativeAmount)
	}
	for i := range p.LDE {
		for j := range p.LDE[i] {
			p.LDE[i][j] = max(0, p.LDE[i][j]-amount)
		}
	}

	return nil
}

// PossibleValues returns the values cell (r,c) could hold given its residual
// cost; see ring.PossibleValues.
func (p *Pattern) PossibleValues(r, c int) ([]int, error) {
	if r < 0 || r >= Rows || c < 0 || c >= Cols {
		return nil, fmt.Errorf("pattern %d: PossibleValues(%d,%d): %w", p.ID, r, c, ErrOutOfRange)
	}

	return p.choices(r, c), nil
}

func (p *Pattern) choices(r, c int) []int {
	v := p.P.Get(r, c)
	vals, err := ring.PossibleValues(v, max(0, p.LDE[r][c]))
	if err != nil {
		// P only ever holds alphabet values.
		return []int{v}
	}

	return vals
}

// MaxPossibleValues returns the largest per-cell branching factor.
func (p *Pattern) MaxPossibleValues() int {
	n := 1
	for i := 0; i < Rows; i++ {
		for j := 0; j < Cols; j++ {
			n = max(n, len(p.choices(i, j)))
		}
	}

	return n
}

// AssignmentCount is the product of per-cell branching factors, which is
// exactly the number of patterns Assignments yields.
func (p *Pattern) AssignmentCount() uint64 {
	n := uint64(1)
	for i := 0; i < Rows; i++ {
		for j := 0; j < Cols; j++ {
			n *= uint64(len(p.choices(i, j)))
		}
	}

	return n
}

// Assignments lazily enumerates the Cartesian product of PossibleValues over
// all cells, in odometer order with the last cell varying fastest and each
// cell's values ascending. P itself is always among the assignments. Each
// yielded Pattern is freshly built (all views derived) and carries copies of
// this pattern's LDE and Groups.
//
// The possibility lists are captured when Assignments is called; ranging
// over the returned sequence again restarts the enumeration.
//
// Ids outside [0, MaxAssignableID] yield ErrIDOverflow and a nil sequence.
func (p *Pattern) Assignments() (iter.Seq[*Pattern], error) {
	if p.ID < 0 || p.ID > MaxAssignableID {
		return nil, fmt.Errorf("pattern %d: Assignments: %w", p.ID, ErrIDOverflow)
	}
	const cells = Rows * Cols
	choices := make([][]int, cells)
	for idx := range choices {
		choices[idx] = p.choices(idx/Cols, idx%Cols)
	}
	base := p.ID * AssignmentIDStride
	lde := copyGrid(p.LDE)
	groups := p.Groups.Clone()

	seq := func(yield func(*Pattern) bool) {
		digits := make([]int, cells)
		grid := make([][]int, Rows)
		for i := range grid {
			grid[i] = make([]int, Cols)
		}
		for k := 1; ; k++ {
			for idx, d := range digits {
				grid[idx/Cols][idx%Cols] = choices[idx][d]
			}
			q := build(base+k, zmatrix.MustFromRows(grid, ring.Alphabet))
			q.LDE = copyGrid(lde)
			q.Groups = groups.Clone()
			if !yield(q) {
				return
			}
			if !advance(digits, choices) {
				return
			}
		}
	}

	return seq, nil
}

// advance steps the odometer; it reports false once every combination is spent.
func advance(digits []int, choices [][]int) bool {
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i]++
		if digits[i] < len(choices[i]) {
			return true
		}
		digits[i] = 0
	}

	return false
}
