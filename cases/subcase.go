// SPDX-License-Identifier: MIT

package cases

import (
	"github.com/katalvlaran/ldematrix/zmatrix"
)

// SubCase is a sub-case letter ('a', 'b', ...).
type SubCase byte

// NoSubCase is reported when no rule of the case applies, and for cases
// that declare no sub-cases at all.
const NoSubCase SubCase = '-'

// String returns the letter as a one-character string.
func (s SubCase) String() string { return string(rune(s)) }

// Predicate inspects a 6×6 value view whose case projection is aligned with
// the reference grid of c. Predicates are total and never backtrack.
type Predicate func(c Case, view *zmatrix.CountMatrix) bool

// Rule is one named sub-case predicate.
type Rule struct {
	Letter SubCase
	Name   string
	Match  Predicate
}

// ruleTable maps a case id to its rules in priority order.
var ruleTable = map[int][]Rule{
	3: {
		{'a', "uniform-blocks", uniformBlocks},
		{'b', "row-balanced-blocks", rowBalancedBlocks},
		{'c', "column-balanced-blocks", columnBalancedBlocks},
	},
	4: {
		{'a', "column-paired-blocks", columnBalancedBlocks},
		{'b', "row-paired-blocks", rowBalancedBlocks},
	},
	5: {
		{'a', "uniform-blocks", uniformBlocks},
		{'b', "paired-off-support", pairedOffSupport},
	},
	6: {
		{'a', "uniform-blocks", uniformBlocks},
		{'b', "row-balanced-blocks", rowBalancedBlocks},
		{'c', "column-balanced-blocks", columnBalancedBlocks},
	},
	8: {
		{'a', "uniform-blocks", uniformBlocks},
		{'b', "even-block-rows", evenBlockRows},
	},
}

// Rules returns the case's rules in priority order.
func (c Case) Rules() []Rule { return append([]Rule(nil), c.rules...) }

// SubCases returns the declared letters, or [NoSubCase] when there are none.
func (c Case) SubCases() []SubCase {
	if len(c.rules) == 0 {
		return []SubCase{NoSubCase}
	}
	out := make([]SubCase, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Letter
	}

	return out
}

// Classify runs the rules in order and returns the first matching letter.
// A nil view or a view of the wrong shape yields NoSubCase.
func (c Case) Classify(view *zmatrix.CountMatrix) SubCase {
	if view == nil || view.Rows() != Size || view.Cols() != Size {
		return NoSubCase
	}
	for _, r := range c.rules {
		if r.Match(c, view) {
			return r.Letter
		}
	}

	return NoSubCase
}

// ---------- block features ----------

// blocks is the number of 2×2 blocks along each axis.
const blocks = Size / 2

// supportBlock reports whether block (br,bc) lies on the reference support.
func supportBlock(c Case, br, bc int) bool { return c.Support(2*br, 2*bc) }

// blockThrees counts the value-3 entries inside block (br,bc).
func blockThrees(view *zmatrix.CountMatrix, br, bc int) int {
	n := 0
	for i := 2 * br; i < 2*br+2; i++ {
		for j := 2 * bc; j < 2*bc+2; j++ {
			if view.Get(i, j) == 3 {
				n++
			}
		}
	}

	return n
}

// balanced reports whether every support block in each group shares its
// three-count. group maps a block to its group index.
func balanced(c Case, view *zmatrix.CountMatrix, group func(br, bc int) int) bool {
	seen := map[int]int{}
	for br := 0; br < blocks; br++ {
		for bc := 0; bc < blocks; bc++ {
			if !supportBlock(c, br, bc) {
				continue
			}
			g, n := group(br, bc), blockThrees(view, br, bc)
			if prev, ok := seen[g]; ok && prev != n {
				return false
			}
			seen[g] = n
		}
	}

	return true
}

// uniformBlocks: every support block holds the same number of threes.
func uniformBlocks(c Case, view *zmatrix.CountMatrix) bool {
	return balanced(c, view, func(int, int) int { return 0 })
}

// rowBalancedBlocks: support blocks sharing a block-row hold the same number of threes.
func rowBalancedBlocks(c Case, view *zmatrix.CountMatrix) bool {
	return balanced(c, view, func(br, _ int) int { return br })
}

// columnBalancedBlocks: support blocks sharing a block-column hold the same number of threes.
func columnBalancedBlocks(c Case, view *zmatrix.CountMatrix) bool {
	return balanced(c, view, func(_, bc int) int { return bc })
}

// pairedOffSupport: the off-support cells of the leading 4×4 region hold a
// positive, even number of ones.
func pairedOffSupport(c Case, view *zmatrix.CountMatrix) bool {
	n := 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !c.Support(i, j) && view.Get(i, j) == 1 {
				n++
			}
		}
	}

	return n > 0 && n%2 == 0
}

// evenBlockRows: each block-row holds an even number of threes on its support.
func evenBlockRows(c Case, view *zmatrix.CountMatrix) bool {
	for br := 0; br < blocks; br++ {
		n := 0
		for bc := 0; bc < blocks; bc++ {
			if supportBlock(c, br, bc) {
				n += blockThrees(view, br, bc)
			}
		}
		if n%2 != 0 {
			return false
		}
	}

	return true
}
