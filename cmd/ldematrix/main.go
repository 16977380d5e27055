// SPDX-License-Identifier: MIT

// Command ldematrix classifies, rearranges, sub-cases and dedupes 6×6
// Z[1/√2] count-matrix patterns, and applies T-gate products to them.
//
//	ldematrix classify patterns.txt --out results/
//	ldematrix rearrange "[2,3,0,0,0,0][3,2,0,0,0,0]..." --first
//	ldematrix dedupe patterns.txt --out uniques.txt
//	ldematrix tgate "<pattern>" --op R1,4 --op R2,3 --reduce 1 --expand
//
// Settings come from --config (YAML), then LDEMATRIX_* environment
// variables, then flags. A .env file in the working directory is loaded
// first when present.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
