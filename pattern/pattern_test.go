package pattern_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/pattern"
	"github.com/katalvlaran/ldematrix/ring"
	"github.com/stretchr/testify/require"
)

const (
	zeroRow = "[0,0,0,0,0,0]"
	// crossed holds a 2×2 case-1 block spread over rows/cols 1 and 3.
	crossed = zeroRow + "[0,2,0,3,0,0]" + zeroRow + "[0,3,0,2,0,0]" + zeroRow + zeroRow
	mixed   = "[1,2,3,0,0,0][1,3,3,2,0,0][0,1,0,0,0,0][0,0,0,0,0,0][0,0,0,0,2,0][0,0,0,0,0,3]"
)

var allZero = strings.Repeat(zeroRow, pattern.Rows)

// fromCase builds a pattern whose case projection is the reference of c,
// with every support cell set to v (2 or 3).
func fromCase(t *testing.T, c cases.Case, v int) *pattern.Pattern {
	t.Helper()
	vals := c.Ref().Values()
	for i := range vals {
		for j := range vals[i] {
			vals[i][j] *= v
		}
	}
	p, err := pattern.FromValues(c.ID, vals)
	require.NoError(t, err)

	return p
}

func TestParseRoundTrip(t *testing.T) {
	for _, src := range []string{mixed, crossed, allZero} {
		p, err := pattern.New(1, src)
		require.NoError(t, err)
		require.Equal(t, src, p.String())
		require.Equal(t, src, p.Original)

		q, err := pattern.New(2, p.String())
		require.NoError(t, err)
		require.True(t, q.P.StrictEquals(p.P))
	}
}

func TestParseLegacyPairs(t *testing.T) {
	legacy := "[0 0,0 1,1 0,1 1,0 0,0 0]" + strings.Repeat(zeroRow, pattern.Rows-1)
	digits := "[0,1,2,3,0,0]" + strings.Repeat(zeroRow, pattern.Rows-1)

	a, err := pattern.Parse(legacy)
	require.NoError(t, err)
	b, err := pattern.Parse(digits)
	require.NoError(t, err)
	require.Equal(t, b, a)
}

func TestParseTolerance(t *testing.T) {
	p, err := pattern.New(1, "  "+crossed+"\n")
	require.NoError(t, err)
	require.Equal(t, crossed, p.String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", pattern.ErrEmptySource},
		{"blank", "   ", pattern.ErrEmptySource},
		{"too many rows", allZero + zeroRow, pattern.ErrTooManyRows},
		{"too few rows", strings.Repeat(zeroRow, 5), pattern.ErrTooFewRows},
		{"too many cols", "[0,0,0,0,0,0,0]" + strings.Repeat(zeroRow, 5), pattern.ErrTooManyCols},
		{"too few cols", "[0,0,0,0,0]" + strings.Repeat(zeroRow, 5), pattern.ErrTooFewCols},
		{"out of alphabet", "[0,0,4,0,0,0]" + strings.Repeat(zeroRow, 5), pattern.ErrInvalidToken},
		{"garbage", "[0,x,0,0,0,0]" + strings.Repeat(zeroRow, 5), pattern.ErrInvalidToken},
		{"bad pair", "[0 2,0,0,0,0,0]" + strings.Repeat(zeroRow, 5), pattern.ErrInvalidToken},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := pattern.New(7, tc.src)
			require.ErrorIs(t, err, tc.want)
			require.Nil(t, p)
		})
	}
}

func TestFromValuesShape(t *testing.T) {
	_, err := pattern.FromValues(1, [][]int{{0}})
	require.ErrorIs(t, err, pattern.ErrTooFewRows)

	vals, err := pattern.Parse(mixed)
	require.NoError(t, err)
	vals[2] = append(vals[2], 0)
	_, err = pattern.FromValues(1, vals)
	require.ErrorIs(t, err, pattern.ErrTooManyCols)

	vals, _ = pattern.Parse(mixed)
	vals[0][0] = 9
	_, err = pattern.FromValues(1, vals)
	require.ErrorIs(t, err, pattern.ErrInvalidToken)
}

func TestNormalizeBracketed(t *testing.T) {
	line := "[[0 1 2 3 0 0],[0 0 0 0 0 0],[0 0 0 0 0 0],[0 0 0 0 0 0],[0 0 0 0 0 0],[0 0 0 0 0 1]]"
	want := "[0,1,2,3,0,0]" + strings.Repeat(zeroRow, 4) + "[0,0,0,0,0,1]"
	require.Equal(t, want, pattern.NormalizeBracketed(line))

	_, err := pattern.New(1, pattern.NormalizeBracketed(line))
	require.NoError(t, err)
}

func TestViews(t *testing.T) {
	p := pattern.MustNew(3, mixed)
	for i := 0; i < pattern.Rows; i++ {
		for j := 0; j < pattern.Cols; j++ {
			v := p.P.Get(i, j)
			require.Equal(t, v, p.PT.Get(j, i))
			require.Equal(t, ring.SwapTwoThree(v), p.Swap23.Get(i, j))
			require.Equal(t, ring.SwapTwoThree(v), p.Swap23T.Get(j, i))
			require.Equal(t, ring.CaseBit(v), p.CV.Get(i, j))
			require.Equal(t, ring.CaseBit(v), p.CVT.Get(j, i))
			require.Equal(t, ring.AltEncoding(v), p.Alt.Get(i, j))
			require.Equal(t, i*pattern.Cols+j+1, p.Groups.Get(i, j))
			require.Zero(t, p.LDE[i][j])
		}
	}
	require.Equal(t, cases.Unresolved, p.CaseID)
	require.Equal(t, cases.NoSubCase, p.SubCase)
	require.False(t, p.Stale())
	require.Equal(t, "[2,1,3,0,0,0]", p.AltString()[:13])
	require.Equal(t, 6, strings.Count(p.Multiline(), "\n"))
}

func TestClone(t *testing.T) {
	p := pattern.MustNew(3, mixed)
	q := p.Clone()
	require.NoError(t, q.LeftMultiply(0, 1))
	require.Equal(t, mixed, p.String())
	require.Zero(t, p.LDE[0][0])
	require.Empty(t, p.Ops)
	require.Equal(t, 7, p.Groups.Get(1, 0))
}
