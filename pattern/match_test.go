package pattern_test

import (
	"testing"

	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/pattern"
	"github.com/katalvlaran/ldematrix/ring"
	"github.com/stretchr/testify/require"
)

// TestMatchCaseReferences: a pattern projecting onto a reference (directly or
// transposed) matches exactly that case.
func TestMatchCaseReferences(t *testing.T) {
	for _, c := range cases.All() {
		for _, v := range []int{2, 3} {
			p := fromCase(t, c, v)
			id, err := p.MatchCase()
			require.NoError(t, err)
			require.Equal(t, c.ID, id, "case %d scaled by %d", c.ID, v)
			require.Equal(t, c.ID, p.CaseID)

			tp, err := pattern.FromValues(0, p.PT.Values())
			require.NoError(t, err)
			id, err = tp.MatchCase()
			require.NoError(t, err)
			require.Equal(t, c.ID, id, "transposed case %d", c.ID)
		}
	}
}

func TestMatchCaseEndToEnd(t *testing.T) {
	c1, _ := cases.Get(1)
	p := fromCase(t, c1, 2)
	require.Equal(t, "[2,2,0,0,0,0][2,2,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0]", p.String())
	id, err := p.MatchCase()
	require.NoError(t, err)
	require.Equal(t, 1, id)

	z := pattern.MustNew(0, allZero)
	id, err = z.MatchCase()
	require.NoError(t, err)
	require.Equal(t, cases.Unmatched, id)

	r, err := z.Rearrange()
	require.ErrorIs(t, err, pattern.ErrNotRearrangeable)
	require.Empty(t, r.Solutions)
}

// TestMatchCaseIgnoresOnes: value 1 projects to zero, so a grid of ones is unmatched.
func TestMatchCaseIgnoresOnes(t *testing.T) {
	p := pattern.MustNew(1, "[1,1,0,0,0,0][1,1,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0]")
	id, err := p.MatchCase()
	require.NoError(t, err)
	require.Equal(t, cases.Unmatched, id)
}

func TestMatchCaseAmbiguous(t *testing.T) {
	c1, _ := cases.Get(1)
	c2, _ := cases.Get(2)
	_, err := pattern.MatchCase(c1.Ref(), c2.Ref())
	require.ErrorIs(t, err, pattern.ErrAmbiguousCase)
}

func TestMatchCaseCached(t *testing.T) {
	p := pattern.MustNew(1, crossed)
	p.CaseID = 5
	id, err := p.MatchCase()
	require.NoError(t, err)
	require.Equal(t, 5, id)
}

func TestMatchSubCase(t *testing.T) {
	c3, _ := cases.Get(3)
	s, err := fromCase(t, c3, 2).MatchSubCase()
	require.NoError(t, err)
	require.Equal(t, cases.SubCase('a'), s)

	// Case-3 support spread over columns 0,2,3,5: alignment needs a rearrangement.
	spread := "[2,0,2,2,0,2][2,0,2,2,0,2][2,0,2,2,0,2][2,0,2,2,0,2][0,0,0,0,0,0][0,0,0,0,0,0]"
	p := pattern.MustNew(9, spread)
	s, err = p.MatchSubCase()
	require.NoError(t, err)
	require.Equal(t, 3, p.CaseID)
	require.Equal(t, cases.SubCase('a'), s)
	require.Equal(t, s, p.SubCase)

	c1, _ := cases.Get(1)
	s, err = fromCase(t, c1, 3).MatchSubCase()
	require.NoError(t, err)
	require.Equal(t, cases.NoSubCase, s)

	s, err = pattern.MustNew(0, allZero).MatchSubCase()
	require.NoError(t, err)
	require.Equal(t, cases.NoSubCase, s)
}

func TestRearrangeAllSolutions(t *testing.T) {
	p := pattern.MustNew(4, crossed)
	r, err := p.Rearrange()
	require.NoError(t, err)
	require.Equal(t, 1, r.Case)
	require.Equal(t, []string{
		"[2,3,0,0,0,0][3,2,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0]",
		"[3,2,0,0,0,0][2,3,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0]",
	}, r.Keys())

	c1, _ := cases.Get(1)
	for _, s := range r.Solutions {
		require.Equal(t, s.Key, s.View.String())
		proj, err := s.View.Map(ring.CaseBit, 2)
		require.NoError(t, err)
		require.True(t, c1.StrictMatch(proj))
	}
	// The search works on copies.
	require.Equal(t, crossed, p.String())
}

func TestRearrangeSingleSolution(t *testing.T) {
	full, err := pattern.MustNew(4, crossed).Rearrange()
	require.NoError(t, err)

	r, err := pattern.MustNew(4, crossed).Rearrange(pattern.WithSingleSolution())
	require.NoError(t, err)
	require.Len(t, r.Solutions, 1)
	require.Contains(t, full.Keys(), r.Solutions[0].Key)
}

func TestRearrangeRejectsStale(t *testing.T) {
	p := pattern.MustNew(4, crossed)
	require.NoError(t, p.RightMultiply(1, 3))
	require.True(t, p.Stale())

	r, err := p.Rearrange()
	require.ErrorIs(t, err, pattern.ErrStalePattern)
	require.Empty(t, r.Solutions)
	_, err = p.MatchSubCase()
	require.ErrorIs(t, err, pattern.ErrStalePattern)
	require.True(t, p.Stale())

	// 2 xor 3 = 1 on both touched columns, so nothing projects onto a case.
	p.Refresh()
	_, err = p.Rearrange()
	require.ErrorIs(t, err, pattern.ErrNotRearrangeable)
	s, err := p.MatchSubCase()
	require.NoError(t, err)
	require.Equal(t, cases.NoSubCase, s)
}

// TestRearrangeEveryCase: every case reference, shuffled, rearranges back.
func TestRearrangeEveryCase(t *testing.T) {
	perm := []int{5, 3, 0, 4, 1, 2}
	for _, c := range cases.All() {
		base := fromCase(t, c, 2).P.Values()
		shuffled := make([][]int, pattern.Rows)
		for i := range shuffled {
			shuffled[i] = make([]int, pattern.Cols)
			for j := range shuffled[i] {
				shuffled[i][j] = base[perm[i]][perm[(j+1)%pattern.Cols]]
			}
		}
		p, err := pattern.FromValues(c.ID, shuffled)
		require.NoError(t, err)

		r, err := p.Rearrange(pattern.WithSingleSolution())
		require.NoError(t, err)
		require.Equal(t, c.ID, r.Case)
		s, ok := r.First()
		require.True(t, ok, "case %d", c.ID)
		proj, err := s.View.Map(ring.CaseBit, 2)
		require.NoError(t, err)
		require.True(t, c.StrictMatch(proj), "case %d", c.ID)
	}
}
