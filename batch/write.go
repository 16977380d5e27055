// SPDX-License-Identifier: MIT

package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/pattern"
)

// Output file names. Every file is readable by Read.
const (
	NoMatchesFile = "no-matches.txt"
	caseFile      = "case%d-matches.txt"
	subCaseFile   = "case%d%c-matches.txt"
	noSubCaseFile = "case%d-no-subcase-match.txt"
)

// CaseFileName returns the per-case output name.
func CaseFileName(caseID int) string { return fmt.Sprintf(caseFile, caseID) }

// SubCaseFileName returns the per-sub-case output name; NoSubCase maps to
// the no-subcase file.
func SubCaseFileName(caseID int, sub cases.SubCase) string {
	if sub == cases.NoSubCase {
		return fmt.Sprintf(noSubCaseFile, caseID)
	}

	return fmt.Sprintf(subCaseFile, caseID, sub)
}

// WriteReport lists written files and failures.
type WriteReport struct {
	Files  []string
	Failed int
}

// WriteClassified writes one file per matched case holding the arranged
// line of each pattern, one file per sub-case for cases with sub-case
// rules, and the unmatched patterns to NoMatchesFile. A file that cannot
// be written is logged and counted; the others are still written.
func WriteClassified(dir string, rep ClassifyReport, logger *slog.Logger) (WriteReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return WriteReport{}, fmt.Errorf("batch: output dir: %w", err)
	}

	var out WriteReport
	emit := func(name, header string, items []Classified) {
		path := filepath.Join(dir, name)
		err := writeLines(path, header, func(w io.Writer) error {
			for _, c := range items {
				if _, err := fmt.Fprintln(w, c.Line()); err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			out.Failed++
			logger.Error("write output", slog.String("file", path), slog.String("error", err.Error()))

			return
		}
		out.Files = append(out.Files, path)
	}

	for _, id := range rep.Cases() {
		items := rep.ByCase[id]
		if id == cases.Unmatched {
			emit(NoMatchesFile, "# unmatched patterns", items)
			continue
		}
		emit(CaseFileName(id), fmt.Sprintf("# case %d", id), items)

		c, _ := cases.Get(id)
		if len(c.Rules()) == 0 {
			continue
		}
		split := rep.BySubCase(id)
		for _, sub := range append(c.SubCases(), cases.NoSubCase) {
			emit(SubCaseFileName(id, sub), fmt.Sprintf("# case %d sub-case %s", id, sub), split[sub])
		}
	}

	return out, nil
}

// WriteUniques writes the run's new uniques to w grouped by case, each
// group behind a comment line.
func WriteUniques(w io.Writer, rep DedupeReport) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# run %s\n", rep.RunID)
	for _, id := range rep.Cases() {
		fmt.Fprintf(bw, "# case %d\n", id)
		for _, p := range rep.Uniques[id] {
			fmt.Fprintln(bw, p.String())
		}
	}

	return bw.Flush()
}

// WriteMultiline writes patterns in the human-readable multiline form,
// separated by blank lines.
func WriteMultiline(w io.Writer, patterns []*pattern.Pattern) error {
	bw := bufio.NewWriter(w)
	for _, p := range patterns {
		fmt.Fprintf(bw, "# %d\n%s\n", p.ID, p.Multiline())
	}

	return bw.Flush()
}

func writeLines(path, header string, body func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	bw := bufio.NewWriter(f)
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}
	if err := body(bw); err != nil {
		return err
	}

	return bw.Flush()
}
