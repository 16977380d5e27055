// SPDX-License-Identifier: MIT

package zmatrix

import (
	"fmt"
	"strconv"
	"strings"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]"
	_fmtSep      = ","
)

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*CountMatrix)(nil)

// String renders the grid on one line as "[a,b,c][d,e,f]".
// This is the canonical serialization used for identity and dedup keys.
func (m *CountMatrix) String() string {
	var sb strings.Builder
	sb.Grow(m.r * (2*m.c + 1))
	m.writeRows(&sb, "")

	return sb.String()
}

// Multiline renders one bracketed row per line, each terminated by '\n'.
func (m *CountMatrix) Multiline() string {
	var sb strings.Builder
	m.writeRows(&sb, "\n")

	return sb.String()
}

func (m *CountMatrix) writeRows(sb *strings.Builder, rowEnd string) {
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			sb.WriteString(strconv.Itoa(m.z[i*m.c+j]))
		}
		sb.WriteString(_fmtRowClose)
		sb.WriteString(rowEnd)
	}
}

// Debug renders the grid together with every derived histogram.
func (m *CountMatrix) Debug() string {
	m.ensure()
	var sb strings.Builder
	fmt.Fprintf(&sb, "shape=%dx%d alphabet=%d sum=%d\n", m.r, m.c, m.a, m.sum)
	sb.WriteString(m.Multiline())
	fmt.Fprintf(&sb, "numCounts=%v\n", m.numCounts)
	fmt.Fprintf(&sb, "rowCounts=%v\n", m.rowCounts)
	fmt.Fprintf(&sb, "colCounts=%v\n", m.colCounts)
	fmt.Fprintf(&sb, "countRows=%v\n", m.countRows)
	fmt.Fprintf(&sb, "countCols=%v\n", m.countCols)

	return sb.String()
}
