// SPDX-License-Identifier: MIT

// Package pattern models a 6×6 synthesis pattern over the √2 ring residues
// {0,1,2,3} and the operations performed on it.
//
// What:
//
//   - Parse / New: bracketed source "[a,b,...][...]" (digits or legacy "N M"
//     pairs) into a Pattern; NormalizeBracketed accepts the "[[a b],[c d]]" form.
//   - Views: P, PT, Swap23, Swap23T, CV, CVT, Alt, plus Groups and LDE.
//   - MatchCase / MatchSubCase: classify against the cases catalog.
//   - Rearrange: all row/column permutations aligning CV with the reference.
//   - LeftMultiply / RightMultiply: single T-gate steps with LDE tracking.
//   - ReduceEntry, ReduceAll, PossibleValues, Assignments: LDE bookkeeping and
//     lazy enumeration of the value assignments consistent with it.
//   - Orthonormal: residue checks for norm and orthogonality.
//
// View freshness:
//
// T-gates rewrite P, LDE and Groups in place and leave every other view
// untouched, so a caller can compare pre- and post-step projections. After a
// T-gate Stale reports true; Refresh re-derives the views and clears the
// cached case. Nothing refreshes automatically.
//
// Concurrency:
//
// A Pattern is not safe for concurrent mutation. Distinct patterns share
// nothing but the read-only case catalog.
package pattern
