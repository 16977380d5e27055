// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ldematrix/batch"
	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/pattern"
)

// errBadOp reports a malformed --op value.
var errBadOp = errors.New(`op must look like "L0,1" or "R1,4"`)

func (a *app) readFile(path string) ([]*pattern.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := batch.Read(f, a.batchOptions()...)
	if err != nil {
		return nil, err
	}

	return res.Patterns, nil
}

func (a *app) classifyCmd() *cobra.Command {
	var (
		outDir string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "classify FILE",
		Short: "Match case, sub-case and first rearrangement for every pattern in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns, err := a.readFile(args[0])
			if err != nil {
				return err
			}
			var extra []batch.Option
			if all {
				extra = append(extra, batch.WithAllSolutions())
			}
			rep, err := batch.Classify(cmd.Context(), patterns, a.batchOptions(extra...)...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, id := range rep.Cases() {
				if id == cases.Unmatched {
					fmt.Fprintf(out, "unmatched: %d\n", len(rep.ByCase[id]))
					continue
				}
				fmt.Fprintf(out, "case %d: %d\n", id, len(rep.ByCase[id]))
				c, _ := cases.Get(id)
				if len(c.Rules()) == 0 {
					continue
				}
				split := rep.BySubCase(id)
				for _, sub := range append(c.SubCases(), cases.NoSubCase) {
					fmt.Fprintf(out, "  %s: %d\n", sub, len(split[sub]))
				}
			}
			if rep.Failed > 0 {
				fmt.Fprintf(out, "failed: %d\n", rep.Failed)
			}
			if outDir == "" {
				return nil
			}
			w, err := batch.WriteClassified(outDir, rep, a.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "wrote %d files to %s\n", len(w.Files), outDir)
			if w.Failed > 0 {
				return fmt.Errorf("%d output files could not be written", w.Failed)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "directory for per-case and per-sub-case files")
	cmd.Flags().BoolVar(&all, "all", false, "count every rearrangement instead of stopping at the first")

	return cmd
}

func (a *app) rearrangeCmd() *cobra.Command {
	var first bool
	cmd := &cobra.Command{
		Use:   "rearrange PATTERN",
		Short: "List the row/column arrangements of PATTERN aligned with its case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parsePattern(args[0])
			if err != nil {
				return err
			}
			var opts []pattern.RearrangeOption
			if first || a.cfg.SingleSolution {
				opts = append(opts, pattern.WithSingleSolution())
			}
			r, err := p.Rearrange(opts...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "case %d\n", r.Case)
			for _, key := range r.Keys() {
				fmt.Fprintln(out, key)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&first, "first", false, "stop at the first arrangement")

	return cmd
}

func (a *app) subcaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subcase PATTERN",
		Short: "Report the case and sub-case of PATTERN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parsePattern(args[0])
			if err != nil {
				return err
			}
			sub, err := p.MatchSubCase()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "case %d sub-case %s\n", p.CaseID, sub)

			return nil
		},
	}
}

func (a *app) dedupeCmd() *cobra.Command {
	var (
		outPath string
		noStore bool
	)
	cmd := &cobra.Command{
		Use:   "dedupe FILE",
		Short: "Keep one pattern per equivalence class, seeded from the reference table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patterns, err := a.readFile(args[0])
			if err != nil {
				return err
			}
			tbl, err := a.table()
			if err != nil {
				return err
			}
			opts := a.batchOptions()
			if !noStore {
				s, err := a.openStore()
				if err != nil {
					return err
				}
				defer s.Close()
				opts = append(opts, batch.WithStore(s))
			}
			rep, err := batch.Dedupe(cmd.Context(), patterns, tbl, opts...)
			if err != nil {
				return err
			}

			return a.emitReport(cmd, outPath, rep)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write uniques to this file instead of stdout")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist uniques")

	return cmd
}

// emitReport writes the uniques followed by per-id duplicate counts.
func (a *app) emitReport(cmd *cobra.Command, outPath string, rep batch.DedupeReport) (err error) {
	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, f.Close()) }()
		w = f
	}
	if err := batch.WriteUniques(w, rep); err != nil {
		return err
	}
	ids := make([]int, 0, len(rep.DuplicateOf))
	for id := range rep.DuplicateOf {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if _, err := fmt.Fprintf(w, "# duplicates of %d: %d\n", id, rep.DuplicateOf[id]); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) tgateCmd() *cobra.Command {
	var (
		ops     []string
		reduce  int
		expand  bool
		outPath string
		noStore bool
	)
	cmd := &cobra.Command{
		Use:   "tgate PATTERN",
		Short: "Apply T-gate products to PATTERN, reduce LDEs and optionally expand",
		Long: `Apply T-gate products in the order given. "L0,1" multiplies rows 0 and 1
from the left, "R1,4" multiplies columns 1 and 4 from the right. --reduce lowers
every LDE exponent afterwards; --expand enumerates every value assignment the
remaining exponents allow and dedupes them against the reference table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parsePattern(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "before:\n%s", p.Multiline())
			for _, s := range ops {
				if err := applyOp(p, s); err != nil {
					return err
				}
			}
			p.Refresh()
			if err := p.ReduceAll(reduce); err != nil {
				return err
			}
			fmt.Fprintf(out, "after %s:\n%s", p.OpsString(), p.Multiline())
			fmt.Fprintln(out, "lde:")
			for _, row := range p.LDE {
				fmt.Fprintln(out, formatRow(row))
			}
			fmt.Fprintf(out, "max possible values: %d\nassignments: %d\n", p.MaxPossibleValues(), p.AssignmentCount())
			if !expand {
				return nil
			}

			tbl, err := a.table()
			if err != nil {
				return err
			}
			opts := a.batchOptions()
			if !noStore {
				s, err := a.openStore()
				if err != nil {
					return err
				}
				defer s.Close()
				opts = append(opts, batch.WithStore(s))
			}
			rep, err := batch.Expand(cmd.Context(), p, 0, tbl, opts...)
			if err != nil {
				return err
			}

			return a.emitReport(cmd, outPath, rep)
		},
	}
	cmd.Flags().StringArrayVar(&ops, "op", nil, `T-gate product, "L<a>,<b>" or "R<a>,<b>"; repeatable`)
	cmd.Flags().IntVar(&reduce, "reduce", 0, "lower every LDE exponent by this amount")
	cmd.Flags().BoolVar(&expand, "expand", false, "enumerate and dedupe all value assignments")
	cmd.Flags().StringVar(&outPath, "out", "", "write expanded uniques to this file instead of stdout")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist expanded uniques")

	return cmd
}

func applyOp(p *pattern.Pattern, s string) error {
	if len(s) < 2 {
		return fmt.Errorf("%q: %w", s, errBadOp)
	}
	left, right, ok := strings.Cut(s[1:], ",")
	if !ok {
		return fmt.Errorf("%q: %w", s, errBadOp)
	}
	x, err1 := strconv.Atoi(strings.TrimSpace(left))
	y, err2 := strconv.Atoi(strings.TrimSpace(right))
	if err := errors.Join(err1, err2); err != nil {
		return fmt.Errorf("%q: %w: %w", s, errBadOp, err)
	}
	switch s[0] {
	case 'L', 'l':
		return p.LeftMultiply(x, y)
	case 'R', 'r':
		return p.RightMultiply(x, y)
	}

	return fmt.Errorf("%q: %w", s, errBadOp)
}

func formatRow(row []int) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = strconv.Itoa(v)
	}

	return "[" + strings.Join(parts, ",") + "]"
}

func (a *app) orthoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ortho PATTERN",
		Short: "Check the row and column orthonormality conditions of PATTERN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.parsePattern(args[0])
			if err != nil {
				return err
			}
			rep := p.Orthonormal()
			out := cmd.OutOrStdout()
			if rep.OK() {
				fmt.Fprintln(out, "orthonormal")
				return nil
			}
			for _, v := range rep.Violations {
				fmt.Fprintln(out, v)
			}

			return nil
		},
	}
}
