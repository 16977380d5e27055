// SPDX-License-Identifier: MIT

// Package refdata holds the reference pattern table that seeds a deduper:
// case id -> value sum -> pattern id -> source encoding.
//
// The table ships embedded (patterns.yaml) and can be replaced by any YAML
// file with the same layout:
//
//	cases:
//	  1:
//	    8:
//	      1: "[2,2,0,0,0,0][2,2,0,0,0,0][0,0,0,0,0,0]..."
//
// A loaded Table is treated as read-only.
package refdata

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/ldematrix/pattern"
)

//go:embed patterns.yaml
var defaultYAML []byte

var (
	// ErrCaseMismatch: an entry does not match the case it is filed under.
	ErrCaseMismatch = errors.New("refdata: case key does not match pattern")

	// ErrSumMismatch: an entry's value sum differs from its sum key.
	ErrSumMismatch = errors.New("refdata: sum key does not match pattern")

	// ErrDuplicateID: the same pattern id appears twice.
	ErrDuplicateID = errors.New("refdata: duplicate pattern id")
)

// Table maps case -> value sum -> pattern id -> source encoding.
type Table map[int]map[int]map[int]string

// Entry is one flattened table row.
type Entry struct {
	Case   int
	Sum    int
	ID     int
	Source string
}

type document struct {
	Cases Table `yaml:"cases"`
}

// Default decodes the embedded table.
func Default() (Table, error) {
	return decode(defaultYAML)
}

// Load decodes a table from r.
func Load(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("refdata: read: %w", err)
	}

	return decode(data)
}

// LoadFile decodes the table stored at path.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refdata: %w", err)
	}

	return decode(data)
}

func decode(data []byte) (Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("refdata: parse: %w", err)
	}
	if doc.Cases == nil {
		doc.Cases = Table{}
	}

	return doc.Cases, nil
}

// Entries flattens the table ordered by case, sum and id.
func (t Table) Entries() []Entry {
	var out []Entry
	for c, sums := range t {
		for s, ids := range sums {
			for id, src := range ids {
				out = append(out, Entry{Case: c, Sum: s, ID: id, Source: src})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Case != b.Case {
			return a.Case < b.Case
		}
		if a.Sum != b.Sum {
			return a.Sum < b.Sum
		}

		return a.ID < b.ID
	})

	return out
}

// Len returns the number of entries.
func (t Table) Len() int {
	n := 0
	for _, sums := range t {
		for _, ids := range sums {
			n += len(ids)
		}
	}

	return n
}

// Validate parses every entry and checks that it matches its case key and
// sum key and that pattern ids are unique. The first failure is returned.
func (t Table) Validate() error {
	seen := make(map[int]bool)
	for _, e := range t.Entries() {
		if seen[e.ID] {
			return fmt.Errorf("refdata: id %d: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = true

		p, err := pattern.New(e.ID, e.Source)
		if err != nil {
			return fmt.Errorf("refdata: case %d sum %d: %w", e.Case, e.Sum, err)
		}
		got, err := p.MatchCase()
		if err != nil {
			return fmt.Errorf("refdata: case %d sum %d: %w", e.Case, e.Sum, err)
		}
		if got != e.Case {
			return fmt.Errorf("refdata: id %d filed under case %d, matches %d: %w", e.ID, e.Case, got, ErrCaseMismatch)
		}
		if s := p.P.Sum(); s != e.Sum {
			return fmt.Errorf("refdata: id %d filed under sum %d, sums to %d: %w", e.ID, e.Sum, s, ErrSumMismatch)
		}
	}

	return nil
}
