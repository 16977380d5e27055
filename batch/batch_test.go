package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ldematrix/batch"
	"github.com/katalvlaran/ldematrix/cases"
	"github.com/katalvlaran/ldematrix/pattern"
	"github.com/katalvlaran/ldematrix/refdata"
	"github.com/katalvlaran/ldematrix/store"
)

const (
	zeroRows = "[0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0][0,0,0,0,0,0]"
	zero     = "[0,0,0,0,0,0][0,0,0,0,0,0]" + zeroRows
	seed1    = "[2,2,0,0,0,0][2,2,0,0,0,0]" + zeroRows
	seed2    = "[2,3,0,0,0,0][3,3,0,0,0,0]" + zeroRows
	patA     = "[2,2,1,0,0,0][2,2,0,1,0,0]" + zeroRows
	// patA with rows 0 and 1 exchanged
	patAPerm = "[2,2,0,1,0,0][2,2,1,0,0,0]" + zeroRows
	patB     = "[2,2,1,1,0,0][2,2,0,0,0,0]" + zeroRows
)

func table(t *testing.T) refdata.Table {
	t.Helper()
	tbl, err := refdata.Default()
	require.NoError(t, err)

	return tbl
}

func read(t *testing.T, src string, opts ...batch.Option) []*pattern.Pattern {
	t.Helper()
	res, err := batch.Read(strings.NewReader(src), opts...)
	require.NoError(t, err)

	return res.Patterns
}

func TestRead(t *testing.T) {
	src := strings.Join([]string{
		"# comment",
		seed1,
		"",
		"  " + seed2 + "  ",
		"[2,2]",
		"#" + seed1,
		patA,
	}, "\n")
	res, err := batch.Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, res.Comments)
	require.Equal(t, 1, res.Rejected)
	require.Len(t, res.Patterns, 3)
	for i, p := range res.Patterns {
		require.Equal(t, i+1, p.ID)
	}
	require.Equal(t, seed2, res.Patterns[1].String())
	require.Equal(t, patA, res.Patterns[2].String())
}

func TestReadExtraBrackets(t *testing.T) {
	line := "[[2 2 0 0 0 0],[2 2 0 0 0 0],[0 0 0 0 0 0],[0 0 0 0 0 0],[0 0 0 0 0 0],[0 0 0 0 0 0]]"
	got := read(t, line+"\n", batch.WithExtraBrackets())
	require.Len(t, got, 1)
	require.Equal(t, seed1, got[0].String())

	res, err := batch.Read(strings.NewReader(line))
	require.NoError(t, err)
	require.Empty(t, res.Patterns)
	require.Equal(t, 1, res.Rejected)
}

func TestReadMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := batch.Read(strings.NewReader(seed1+"\nbad\n"+seed2), batch.WithMetrics(batch.NewMetrics(reg)))
	require.NoError(t, err)

	want := `
# HELP ldematrix_batch_patterns_total Patterns processed by stage and outcome
# TYPE ldematrix_batch_patterns_total counter
ldematrix_batch_patterns_total{outcome="ok",stage="read"} 2
ldematrix_batch_patterns_total{outcome="rejected",stage="read"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "ldematrix_batch_patterns_total"))
}

func seedLines(t *testing.T) []string {
	t.Helper()
	var lines []string
	for _, e := range table(t).Entries() {
		lines = append(lines, e.Source)
	}

	return lines
}

func TestClassify(t *testing.T) {
	lines := append(seedLines(t), zero)
	patterns := read(t, strings.Join(lines, "\n"))

	rep, err := batch.Classify(context.Background(), patterns, batch.WithWorkers(3))
	require.NoError(t, err)
	require.Zero(t, rep.Failed)
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, rep.Cases())

	want := map[int]int{0: 1, 1: 3, 2: 2, 3: 2, 4: 1, 5: 1, 6: 1, 7: 1, 8: 1}
	for id, n := range want {
		require.Len(t, rep.ByCase[id], n, "case %d", id)
	}

	// Input order is kept within a case.
	require.Equal(t, []int{1, 2, 3}, []int{
		rep.ByCase[1][0].Pattern.ID, rep.ByCase[1][1].Pattern.ID, rep.ByCase[1][2].Pattern.ID,
	})
	for _, id := range rep.Cases() {
		for _, c := range rep.ByCase[id] {
			if id == cases.Unmatched {
				require.Nil(t, c.Arranged)
				require.Equal(t, cases.NoSubCase, c.SubCase)
				require.Equal(t, zero, c.Line())
				continue
			}
			require.NotNil(t, c.Arranged, "pattern %d", c.Pattern.ID)
			require.Equal(t, 1, c.Solutions)
			ref, _ := cases.Get(id)
			require.True(t, ref.StrictMatch(pattern.MustNew(0, c.Line()).CV))
		}
	}
	require.Len(t, rep.BySubCase(1)[cases.NoSubCase], 3)
}

func TestClassifyAllSolutions(t *testing.T) {
	crossed := "[0,0,0,0,0,0][0,2,0,3,0,0][0,0,0,0,0,0][0,3,0,2,0,0][0,0,0,0,0,0][0,0,0,0,0,0]"
	rep, err := batch.Classify(context.Background(), read(t, crossed), batch.WithAllSolutions())
	require.NoError(t, err)
	require.Equal(t, 2, rep.ByCase[1][0].Solutions)
	require.Equal(t, "[2,3,0,0,0,0][3,2,0,0,0,0]"+zeroRows, rep.ByCase[1][0].Line())
}

func TestClassifyStaleIsFailed(t *testing.T) {
	patterns := read(t, seed1+"\n"+patA)
	require.NoError(t, patterns[1].LeftMultiply(2, 3))

	rep, err := batch.Classify(context.Background(), patterns)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Failed)
	require.Len(t, rep.ByCase[1], 1)
	require.Equal(t, 1, rep.ByCase[1][0].Pattern.ID)
}

func TestClassifyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := batch.Classify(ctx, read(t, seed1+"\n"+seed2))
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteClassified(t *testing.T) {
	patterns := read(t, strings.Join(append(seedLines(t), zero), "\n"))
	rep, err := batch.Classify(context.Background(), patterns)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "out")
	out, err := batch.WriteClassified(dir, rep, nil)
	require.NoError(t, err)
	require.Zero(t, out.Failed)

	for _, name := range []string{
		batch.NoMatchesFile,
		batch.CaseFileName(1),
		batch.CaseFileName(8),
		"case3a-matches.txt",
		"case3c-matches.txt",
		"case3-no-subcase-match.txt",
		"case8b-matches.txt",
	} {
		require.FileExists(t, filepath.Join(dir, name))
	}
	require.NoFileExists(t, filepath.Join(dir, "case1-no-subcase-match.txt"))

	f, err := os.Open(filepath.Join(dir, batch.CaseFileName(1)))
	require.NoError(t, err)
	defer f.Close()
	again, err := batch.Read(f)
	require.NoError(t, err)
	require.Len(t, again.Patterns, 3)
	require.Equal(t, 1, again.Comments)
}

func dedupeInput(t *testing.T) []*pattern.Pattern {
	t.Helper()

	return read(t, strings.Join([]string{
		"# mixed input",
		seed2,            // 1: duplicate of seed 2
		patA,             // 2: unique
		patAPerm,         // 3: duplicate of 2
		patB,             // 4: unique
		zero,             // 5: unique, unmatched
		seedLines(t)[11], // 6: duplicate of seed 12
		zero,             // 7: duplicate of 5
	}, "\n"))
}

func TestDedupe(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(store.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	rep, err := batch.Dedupe(ctx, dedupeInput(t), table(t),
		batch.WithStore(s), batch.WithRunID("run-1"), batch.WithWorkers(2))
	require.NoError(t, err)
	require.Equal(t, "run-1", rep.RunID)
	require.Equal(t, 3, rep.UniqueCount())
	require.Equal(t, 4, rep.Duplicates)
	// Seed 2 and input pattern 2 share an id.
	require.Equal(t, map[int]int{2: 2, 5: 1, 12: 1}, rep.DuplicateOf)
	require.Zero(t, rep.Failed)
	require.Zero(t, rep.StoreErrors)
	require.Equal(t, []int{0, 1}, rep.Cases())

	ids := func(ps []*pattern.Pattern) []int {
		out := make([]int, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}

		return out
	}
	require.Equal(t, []int{2, 4}, ids(rep.Uniques[1]))
	require.Equal(t, []int{5}, ids(rep.Uniques[0]))

	recs, err := s.Uniques(ctx, "run-1", 1)
	require.NoError(t, err)
	require.Equal(t, []store.Record{
		{RunID: "run-1", Case: 1, Key: 4, ID: 2, SubCase: "-", Source: patA},
		{RunID: "run-1", Case: 1, Key: 5, ID: 4, SubCase: "-", Source: patB},
	}, recs)
	counts, err := s.CountByCase(ctx, "run-1")
	require.NoError(t, err)
	require.Equal(t, map[int]int{0: 1, 1: 2}, counts)
}

func TestDedupeDeterministic(t *testing.T) {
	ctx := context.Background()
	one, err := batch.Dedupe(ctx, dedupeInput(t), table(t), batch.WithWorkers(1), batch.WithRunID("a"))
	require.NoError(t, err)
	many, err := batch.Dedupe(ctx, dedupeInput(t), table(t), batch.WithWorkers(8), batch.WithRunID("a"))
	require.NoError(t, err)

	require.Equal(t, one.DuplicateOf, many.DuplicateOf)
	require.Equal(t, one.Cases(), many.Cases())
	for _, c := range one.Cases() {
		require.Len(t, many.Uniques[c], len(one.Uniques[c]))
		for i := range one.Uniques[c] {
			require.Equal(t, one.Uniques[c][i].String(), many.Uniques[c][i].String())
		}
	}
}

func TestDedupeGeneratesRunID(t *testing.T) {
	rep, err := batch.Dedupe(context.Background(), nil, table(t))
	require.NoError(t, err)
	require.Len(t, rep.RunID, 36)
	require.Zero(t, rep.UniqueCount())
}

func TestDedupeStoreErrorsAreCounted(t *testing.T) {
	s, err := store.Open(store.InMemoryConfig())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	rep, err := batch.Dedupe(context.Background(), read(t, patA+"\n"+patB), table(t), batch.WithStore(s))
	require.NoError(t, err)
	require.Equal(t, 2, rep.UniqueCount())
	require.Equal(t, 2, rep.StoreErrors)
}

func TestDedupeStaleIsFailed(t *testing.T) {
	patterns := read(t, patA+"\n"+patB)
	require.NoError(t, patterns[0].LeftMultiply(2, 3))

	rep, err := batch.Dedupe(context.Background(), patterns, table(t))
	require.NoError(t, err)
	require.Equal(t, 1, rep.Failed)
	require.Equal(t, 1, rep.UniqueCount())
}

func TestDedupeBadSeedAborts(t *testing.T) {
	bad := refdata.Table{1: {8: {1: "[2,2]"}}}
	_, err := batch.Dedupe(context.Background(), read(t, patA), bad)
	require.ErrorIs(t, err, pattern.ErrTooFewCols)
}

func TestDedupeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := batch.Dedupe(ctx, read(t, patA), table(t))
	require.ErrorIs(t, err, context.Canceled)
}

func TestExpand(t *testing.T) {
	p := pattern.MustNew(7, seed1)
	require.NoError(t, p.RightMultiply(4, 5))
	// Keep a residual cost on (0,4) and (1,5) only.
	for r := 0; r < pattern.Rows; r++ {
		for c := 4; c < 6; c++ {
			if (r == 0 && c == 4) || (r == 1 && c == 5) {
				continue
			}
			require.NoError(t, p.ReduceEntry(r, c, 1))
		}
	}
	require.Equal(t, uint64(4), p.AssignmentCount())

	rep, err := batch.Expand(context.Background(), p, 0, table(t))
	require.NoError(t, err)

	k := func(n int) int { return 7*pattern.AssignmentIDStride + n }
	require.Equal(t, []int{1}, rep.Cases())
	require.Len(t, rep.Uniques[1], 2)
	require.Equal(t, k(2), rep.Uniques[1][0].ID)
	require.Equal(t, k(4), rep.Uniques[1][1].ID)
	require.Equal(t, map[int]int{1: 1, k(2): 1}, rep.DuplicateOf)
	require.Equal(t, 2, rep.Duplicates)

	// The source pattern is untouched.
	require.Equal(t, 1, p.LDE[0][4])

	// Reducing past every residual cost leaves P alone.
	rep, err = batch.Expand(context.Background(), p, 1, table(t))
	require.NoError(t, err)
	require.Zero(t, rep.UniqueCount())
	require.Equal(t, map[int]int{1: 1}, rep.DuplicateOf)

	_, err = batch.Expand(context.Background(), p, -1, table(t))
	require.ErrorIs(t, err, pattern.ErrNegativeAmount)

	big := pattern.MustNew(352000001, seed1)
	_, err = batch.Expand(context.Background(), big, 0, table(t))
	require.ErrorIs(t, err, pattern.ErrIDOverflow)
}

func TestWriteUniques(t *testing.T) {
	rep, err := batch.Dedupe(context.Background(), read(t, patA+"\n"+zero), table(t), batch.WithRunID("r"))
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, batch.WriteUniques(&sb, rep))
	require.Equal(t, "# run r\n# case 0\n"+zero+"\n# case 1\n"+patA+"\n", sb.String())

	again := read(t, sb.String())
	require.Len(t, again, 2)
}
