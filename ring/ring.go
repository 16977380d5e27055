// SPDX-License-Identifier: MIT

// Package ring models the residue arithmetic used by T-gate steps.
//
// Every pattern entry v in {0,1,2,3} encodes a = N + M·√2 reduced mod 2,
// with N = v div 2 and M = v mod 2:
//
//	0 == (N=0, M=0)   1 == (N=0, M=1)   2 == (N=1, M=0)   3 == (N=1, M=1)
//
// Combining two entries adds N and M independently mod 2, which is why the
// table below coincides with bitwise XOR on the encoded values:
//
//	Combine | 0 1 2 3
//	--------+--------
//	   0    | 0 1 2 3
//	   1    | 1 0 3 2
//	   2    | 2 3 0 1
//	   3    | 3 2 1 0
//
// Each application of Combine to a cell adds CostIncrement to its LDE
// (least denominator exponent) counter.
package ring

import (
	"errors"
	"fmt"
)

// Alphabet is the number of distinct residues.
const Alphabet = 4

// CostIncrement is the LDE increase charged to every cell a T-gate step touches.
const CostIncrement = 1

// ErrOutOfAlphabet is returned for values outside 0..3.
var ErrOutOfAlphabet = errors.New("ring: value outside {0,1,2,3}")

// ErrNegativeCost is returned for a negative residual cost.
var ErrNegativeCost = errors.New("ring: negative cost")

// Valid reports whether v is a residue.
func Valid(v int) bool { return v >= 0 && v < Alphabet }

// N returns the integer-part bit of v.
func N(v int) int { return v / 2 }

// M returns the √2-coefficient bit of v.
func M(v int) int { return v % 2 }

// Encode builds the residue with integer bit n and √2 bit m.
func Encode(n, m int) int { return 2*(n&1) + (m & 1) }

// Combine returns the residue of a + b.
// Rules, in order: equal operands cancel; 0 is neutral; 1 with 2 or 3
// yields the other of {2,3}; the remaining pair {2,3} yields 1.
// It panics when an operand is outside the alphabet.
func Combine(a, b int) int {
	if !Valid(a) || !Valid(b) {
		panic(fmt.Errorf("ring: Combine(%d,%d): %w", a, b, ErrOutOfAlphabet))
	}
	switch {
	case a == b:
		return 0
	case a == 0 || b == 0:
		return a + b
	case a == 1 || b == 1:
		if a+b == 4 {
			return 2
		}
		return 3
	default:
		return 1
	}
}

// CombineChecked is Combine with an error instead of a panic.
func CombineChecked(a, b int) (int, error) {
	if !Valid(a) || !Valid(b) {
		return 0, fmt.Errorf("ring: Combine(%d,%d): %w", a, b, ErrOutOfAlphabet)
	}

	return Combine(a, b), nil
}

// SwapTwoThree exchanges residues 2 and 3 and leaves 0 and 1 alone.
func SwapTwoThree(v int) int {
	switch v {
	case 2:
		return 3
	case 3:
		return 2
	}

	return v
}

// CaseBit projects a residue onto the binary case alphabet: 0,1 -> 0 and 2,3 -> 1.
func CaseBit(v int) int { return N(v) }

// AltEncoding maps the N+M·√2 encoding onto the "2y+x" encoding, which
// exchanges residues 1 and 2. It is its own inverse.
func AltEncoding(v int) int {
	switch v {
	case 1:
		return 2
	case 2:
		return 1
	}

	return v
}

// Weight returns m = N + 2M, the integer used by the orthonormality rules.
func Weight(v int) int { return N(v) + 2*M(v) }
