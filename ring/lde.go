// SPDX-License-Identifier: MIT

package ring

import "fmt"

// PossibleValues returns the residues an entry with current value v and
// residual cost could have held, in ascending order.
//
// Dividing by √2 leaves the √2 bit of the quotient undetermined, and dividing
// by (√2)² = 2 leaves the integer bit undetermined while the √2 bit survives.
// Because Combine is its own inverse, an even number of pending divisions
// collapses onto the second case and an odd number onto the first:
//
//	cost == 0          -> {v}
//	cost odd           -> {v, Combine(v, 1)}
//	cost even, cost > 0 -> {v, Combine(v, 2)}
//
// Errors: ErrOutOfAlphabet, ErrNegativeCost.
func PossibleValues(v, cost int) ([]int, error) {
	if !Valid(v) {
		return nil, fmt.Errorf("ring: PossibleValues(%d,%d): %w", v, cost, ErrOutOfAlphabet)
	}
	if cost < 0 {
		return nil, fmt.Errorf("ring: PossibleValues(%d,%d): %w", v, cost, ErrNegativeCost)
	}
	if cost == 0 {
		return []int{v}, nil
	}
	alt := Combine(v, 2)
	if cost%2 == 1 {
		alt = Combine(v, 1)
	}
	if alt < v {
		return []int{alt, v}, nil
	}

	return []int{v, alt}, nil
}
