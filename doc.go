// Package ldematrix studies 6×6 count-matrix patterns over Z[1/√2] residues:
// which of eight reference cases a pattern belongs to, how its rows and
// columns line up with that case, which sub-case it falls in, and which
// patterns are the same up to transposition, the 2<->3 value swap and
// row/column permutation.
//
// The module is organized as small top-level packages:
//
//	ring/       the 4-element residue alphabet, Combine (T-gate product) and LDE possible values
//	zmatrix/    CountMatrix: fixed-size integer grid with cached per-row/column value counts
//	cases/      the eight reference case matrices and their sub-case rules
//	pattern/    Pattern: parsing, derived views, case matching, rearrangement, T-gates, LDE enumeration
//	refdata/    the seed reference table (embedded YAML)
//	dedupe/     the bucketed equivalence index
//	store/      BadgerDB persistence of batch results
//	config/     YAML + environment configuration
//	batch/      file readers and the classify/dedupe/expand drivers
//	cmd/ldematrix  the command line front end
//
// Core packages are synchronous and allocate per call; concurrency lives in
// batch, which gives every worker its own patterns and its own dedupe index.
package ldematrix
