// SPDX-License-Identifier: MIT

package pattern

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/ldematrix/ring"
)

const (
	_rowOpen  = "["
	_rowClose = "]"
	_tokenSep = ","
)

// legacyTokens maps the legacy "N M" bit-pair notation onto the digit encoding.
var legacyTokens = map[string]int{
	"0 0": ring.Encode(0, 0),
	"0 1": ring.Encode(0, 1),
	"1 0": ring.Encode(1, 0),
	"1 1": ring.Encode(1, 1),
}

// Parse decodes a bracketed source such as
//
//	[1,1,0,0,0,0][1,1,0,0,0,0][0,0,0,0,0,0]...
//
// into a Rows×Cols value grid. A token is a single digit 0..3 or a legacy
// "N M" bit pair. Leading/trailing blanks around the whole source and around
// each row are ignored.
//
// Errors: ErrEmptySource, ErrTooManyRows, ErrTooFewRows, ErrTooManyCols,
// ErrTooFewCols, ErrInvalidToken; all wrapped with the offending row/column.
func Parse(src string) ([][]int, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrEmptySource
	}
	segments := strings.Split(src, _rowClose)
	if last := len(segments) - 1; strings.TrimSpace(segments[last]) == "" {
		segments = segments[:last]
	}

	grid := make([][]int, 0, Rows)
	for r, seg := range segments {
		if r == Rows {
			return nil, fmt.Errorf("pattern: row %d: %w", r, ErrTooManyRows)
		}
		row, err := parseRow(r, seg)
		if err != nil {
			return nil, err
		}
		grid = append(grid, row)
	}
	if len(grid) != Rows {
		return nil, fmt.Errorf("pattern: got %d rows, want %d: %w", len(grid), Rows, ErrTooFewRows)
	}

	return grid, nil
}

func parseRow(r int, seg string) ([]int, error) {
	seg = strings.TrimSpace(seg)
	seg = strings.TrimPrefix(seg, _rowOpen)
	row := make([]int, 0, Cols)
	for c, tok := range strings.Split(seg, _tokenSep) {
		if c == Cols {
			return nil, fmt.Errorf("pattern: row %d col %d: %w", r, c, ErrTooManyCols)
		}
		v, err := parseToken(tok)
		if err != nil {
			return nil, fmt.Errorf("pattern: row %d col %d: %q: %w", r, c, tok, err)
		}
		row = append(row, v)
	}
	if len(row) != Cols {
		return nil, fmt.Errorf("pattern: row %d: got %d columns, want %d: %w", r, len(row), Cols, ErrTooFewCols)
	}

	return row, nil
}

func parseToken(tok string) (int, error) {
	tok = strings.TrimSpace(tok)
	if v, ok := legacyTokens[tok]; ok {
		return v, nil
	}
	if len(tok) == 1 && tok[0] >= '0' && tok[0] < '0'+ring.Alphabet {
		return int(tok[0] - '0'), nil
	}

	return 0, ErrInvalidToken
}

// NormalizeBracketed rewrites the doubly bracketed, space separated form
//
//	[[0 1 2 3 0 0],[0 0 0 0 0 0],...]
//
// into the canonical "[0,1,2,3,0,0][0,0,0,0,0,0]..." form accepted by Parse.
// The outermost bracket pair is dropped, blanks become separators and the
// "],[" row joints collapse to "][".
func NormalizeBracketed(line string) string {
	line = strings.TrimSpace(line)
	if len(line) >= 2 {
		line = line[1 : len(line)-1]
	}
	line = strings.ReplaceAll(line, " ", _tokenSep)

	return strings.ReplaceAll(line, _rowClose+_tokenSep+_rowOpen, _rowClose+_rowOpen)
}
