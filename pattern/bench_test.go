package pattern_test

import (
	"testing"

	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/pattern"
)

func BenchmarkNew(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = pattern.MustNew(i, mixed)
	}
}

func BenchmarkMatchCase(b *testing.B) {
	p := pattern.MustNew(1, crossed)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.CaseID = cases.Unresolved
		_, _ = p.MatchCase()
	}
}

// BenchmarkRearrangeCase8 searches the densest reference in full.
func BenchmarkRearrangeCase8(b *testing.B) {
	c8, _ := cases.Get(8)
	vals := c8.Ref().Values()
	for i := range vals {
		for j := range vals[i] {
			vals[i][j] *= 3
		}
	}
	p, err := pattern.FromValues(8, vals)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.Rearrange(); err != nil {
			b.Fatal(err)
		}
	}
}
