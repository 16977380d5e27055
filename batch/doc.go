// SPDX-License-Identifier: MIT

// Package batch drives the pattern algorithms over whole input files.
//
// Read parses one pattern per line, skipping blank and '#' lines.
// Classify resolves case, sub-case and first rearrangement for each pattern
// on a bounded errgroup pool; WriteClassified lays the results out as
// per-case and per-sub-case files that Read can load again. Dedupe splits
// the input by case and runs one seeded dedupe.Deduper per case, persisting
// uniques to a store.Store under a run id. Expand enumerates the value
// assignments of a T-gate product and dedupes them.
//
// Per-pattern failures (ambiguous case, stale views, store or file errors)
// are logged and counted in the run report; only cancellation and a broken
// reference table abort a run.
package batch
