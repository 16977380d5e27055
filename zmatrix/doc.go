// SPDX-License-Identifier: MIT

// Package zmatrix provides CountMatrix, a small rectangular grid of
// non-negative integers over a fixed alphabet that keeps value histograms
// alongside its cells.
//
// What:
//
//   - Cells hold values in [0, A) where A is the alphabet size.
//   - Derived statistics: total value histogram, per-row and per-column
//     histograms, and meta-histograms ("how many rows hold exactly k copies
//     of value v").
//   - Row and column swaps keep the derived statistics valid without a full
//     recompute.
//   - Three equality notions:
//     StrictEquals          - identical shape and identical cells;
//     LooseEquals           - identical row-histogram and column-histogram multisets;
//     PermutationEquivalent - equal up to some row permutation and some column permutation.
//
// Why:
//
//   - Histogram multisets are invariant under row/column permutation, which
//     makes LooseEquals a cheap necessary condition for PermutationEquivalent
//     and a pruning test for permutation searches.
//
// Freshness contract:
//
//   - Set marks the matrix dirty. Recompute rebuilds every histogram. Every
//     reader of derived state recomputes first when dirty, so a stale read is
//     impossible; calling Recompute explicitly after a batch of writes is still
//     the documented way to pay that cost up front.
//   - A CountMatrix is not safe for concurrent use.
//
// Complexity:
//
//   - New/FromRows/Recompute: O(R·C + (R+C)·A).
//   - SwapRows: O(C + A); SwapColumns: O(R + A).
//   - StrictEquals: O(R·C); LooseEquals: O((R log R + C log C)·A).
//   - PermutationEquivalent: exponential in C in the worst case, pruned by
//     column histograms and row-prefix multisets.
//
// Errors:
//
//   - ErrInvalidDimensions, ErrInvalidAlphabet, ErrOutOfRange,
//     ErrValueOutOfAlphabet, ErrDimensionMismatch, ErrNonRectangular.
package zmatrix
