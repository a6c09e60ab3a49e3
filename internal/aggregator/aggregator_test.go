package aggregator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-insights-go/internal/types"
)

// table builds a score table from columns of ints; 0 means missing.
func table(cols ...[]int) types.ScoreTable {
	t := types.ScoreTable{}
	for _, c := range cols {
		scores := make([]types.Score, len(c))
		for i, v := range c {
			scores[i] = types.NewScore(v)
		}
		t.Scores = append(t.Scores, scores)
		t.Columns = append(t.Columns, "")
		t.Rows = len(c)
	}
	return t
}

func uniform(v, rows int) types.ScoreTable {
	cols := make([][]int, 15)
	for i := range cols {
		cols[i] = make([]int, rows)
		for j := range cols[i] {
			cols[i][j] = v
		}
	}
	return table(cols...)
}

func TestMeanPerQuestion(t *testing.T) {
	means := MeanPerQuestion(table([]int{1, 2, 3}, []int{4, 0, 5}, []int{0, 0, 0}))
	require.Len(t, means, 3)
	assert.InDelta(t, 2.0, means[0].Value, 1e-9)
	assert.InDelta(t, 4.5, means[1].Value, 1e-9)
	assert.False(t, means[2].Valid)
}

func TestAllAgreeScenario(t *testing.T) {
	a := uniform(4, 10)
	means := MeanPerQuestion(a)
	for _, m := range means {
		assert.Equal(t, types.Stat{Value: 4, Valid: true}, m)
	}
	assert.Equal(t, types.Stat{Value: 4, Valid: true}, OverallMean(means))
}

func TestOverallMeanIsMeanOfMeans(t *testing.T) {
	tb := table([]int{5, 5, 5, 5}, []int{1, 0, 0, 0})
	overall := OverallMean(MeanPerQuestion(tb))

	require.True(t, overall.Valid)
	assert.InDelta(t, 3.0, overall.Value, 1e-9)

	// pooled over every response would be 21/5
	pooled := 21.0 / 5.0
	assert.NotEqual(t, pooled, overall.Value)
}

func TestOverallMeanSkipsUndefined(t *testing.T) {
	overall := OverallMean([]types.Stat{{Value: 2, Valid: true}, {}, {Value: 4, Valid: true}})
	assert.InDelta(t, 3.0, overall.Value, 1e-9)
	assert.False(t, OverallMean([]types.Stat{{}, {}}).Valid)
	assert.False(t, OverallMean(nil).Valid)
}

func TestDifference(t *testing.T) {
	b := []types.Stat{{Value: 4, Valid: true}, {Value: 3, Valid: true}, {}, {Value: 2, Valid: true}}
	a := []types.Stat{{Value: 3.5, Valid: true}, {}, {Value: 1, Valid: true}, {Value: 2.5, Valid: true}}
	assert.Equal(t, []float64{0.5, 0, 0, -0.5}, Difference(b, a))
	assert.Len(t, Difference(b, a[:2]), 2)
}

func TestDifferenceMatchesMeans(t *testing.T) {
	a := table([]int{1, 2, 3}, []int{5, 5, 0}, []int{0, 0, 0})
	b := table([]int{3, 3, 3}, []int{4, 2, 3}, []int{2, 0, 0})
	ma, mb := MeanPerQuestion(a), MeanPerQuestion(b)
	diff := Difference(mb, ma)
	for i := range diff {
		if ma[i].Valid && mb[i].Valid {
			assert.InDelta(t, mb[i].Value-ma[i].Value, diff[i], 1e-9)
		} else {
			assert.Equal(t, 0.0, diff[i])
		}
	}
}

func TestValueCounts(t *testing.T) {
	tb := table([]int{5, 1, 0, 3, 5, 1, 5})
	counts := ValueCounts(tb, 0)
	assert.Equal(t, []types.ValueCount{{Score: 1, Count: 2}, {Score: 3, Count: 1}, {Score: 5, Count: 3}}, counts)

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, 6, total)

	assert.Empty(t, ValueCounts(tb, 7))
	assert.Empty(t, ValueCounts(table([]int{0, 0}), 0))
}

func TestRank(t *testing.T) {
	qs := types.Questions()[:4]
	ranked := Rank([]types.Stat{{Value: 2, Valid: true}, {}, {Value: 4, Valid: true}, {Value: 2, Valid: true}}, qs)
	require.Len(t, ranked, 4)
	assert.Equal(t, 2, ranked[0].Question.Index)
	assert.Equal(t, 0, ranked[1].Question.Index)
	assert.Equal(t, 3, ranked[2].Question.Index)
	assert.Equal(t, 1, ranked[3].Question.Index)
	assert.False(t, ranked[3].Mean.Valid)
}

func TestCompare(t *testing.T) {
	a := uniform(3, 4)
	b := uniform(4, 4)
	b.Scores[0] = []types.Score{types.NewScore(1), types.NewScore(2), types.NewScore(3), {}}

	c := Compare(a, b)
	assert.Len(t, c.Questions, 15)
	assert.Equal(t, 3.0, c.A.Overall.Value)
	assert.InDelta(t, -1.0, c.Difference[0], 1e-9)
	assert.InDelta(t, 1.0, c.Difference[1], 1e-9)
	assert.Equal(t, 15, c.Correlation.Size)
	assert.Equal(t, []types.ValueCount{{Score: 1, Count: 1}, {Score: 2, Count: 1}, {Score: 3, Count: 1}}, c.Distribution[0])
	assert.Equal(t, []types.ValueCount{{Score: 4, Count: 4}}, c.Distribution[1])
	assert.Equal(t, 0, c.Ranking[len(c.Ranking)-1].Question.Index)

	d := c.OverallDifference()
	require.True(t, d.Valid)
	assert.InDelta(t, c.B.Overall.Value-c.A.Overall.Value, d.Value, 1e-9)
}

func TestCompareDoesNotMutate(t *testing.T) {
	a := table([]int{1, 0, 3})
	b := table([]int{2, 2, 0})
	before := table([]int{2, 2, 0})
	_ = Compare(a, b)
	assert.Equal(t, before, b)
}

func TestCompareEmpty(t *testing.T) {
	c := Compare(uniform(0, 0), uniform(0, 0))
	assert.False(t, c.A.Overall.Valid)
	assert.False(t, c.OverallDifference().Valid)
	for _, d := range c.Difference {
		assert.Equal(t, 0.0, d)
		assert.False(t, math.IsNaN(d))
	}
}
