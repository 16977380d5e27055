// SPDX-License-Identifier: MIT

package batch

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/ldematrix/pattern"
)

// CommentPrefix marks lines the reader ignores.
const CommentPrefix = "#"

// maxLine bounds a single input line; a 6x6 pattern in legacy pair form is
// well under 1 KiB.
const maxLine = 64 * 1024

// ReadResult is the outcome of Read.
type ReadResult struct {
	Patterns []*pattern.Pattern
	Comments int
	// Rejected counts non-comment lines that failed to parse.
	Rejected int
}

// Read parses one pattern per line from r. Blank and comment lines are
// skipped. Patterns get sequential ids from 1 in reading order, counting
// only parsed lines. Malformed lines are logged and counted; only I/O errors
// abort.
func Read(r io.Reader, opts ...Option) (ReadResult, error) {
	o := newOptions(opts)
	var res ReadResult

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, CommentPrefix):
			res.Comments++
			o.logger.Debug("ignoring comment", slog.Int("line", lineNo))
			continue
		}
		if o.extraBrackets {
			line = pattern.NormalizeBracketed(line)
		}
		p, err := pattern.New(len(res.Patterns)+1, line)
		if err != nil {
			res.Rejected++
			o.logger.Warn("skipping malformed pattern",
				slog.Int("line", lineNo),
				slog.String("error", err.Error()))
			o.metrics.pattern(stageRead, outcomeRejected)

			continue
		}
		o.metrics.pattern(stageRead, outcomeOK)
		res.Patterns = append(res.Patterns, p)
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("batch: read line %d: %w", lineNo+1, err)
	}
	o.logger.Info("patterns loaded",
		slog.Int("patterns", len(res.Patterns)),
		slog.Int("comments", res.Comments),
		slog.Int("rejected", res.Rejected))

	return res, nil
}
