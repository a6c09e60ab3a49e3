package aggregator

import (
	"sort"

	"survey-insights-go/internal/types"
)

// MeanPerQuestion averages the valid scores of each column. A column with no
// valid score yields an invalid stat.
func MeanPerQuestion(t types.ScoreTable) []types.Stat {
	out := make([]types.Stat, len(t.Scores))
	for i, col := range t.Scores {
		sum, n := 0, 0
		for _, s := range col {
			if s.Valid {
				sum += s.Value
				n++
			}
		}
		if n > 0 {
			out[i] = types.NewStat(float64(sum) / float64(n))
		}
	}
	return out
}

// OverallMean is the unweighted mean of the per-question means, skipping
// undefined ones. Each question weighs the same regardless of how many
// respondents answered it.
func OverallMean(means []types.Stat) types.Stat {
	var sum float64
	n := 0
	for _, m := range means {
		if m.Valid {
			sum += m.Value
			n++
		}
	}
	if n == 0 {
		return types.Stat{}
	}
	return types.NewStat(sum / float64(n))
}

// Difference returns b[i]-a[i] with undefined results set to 0.
func Difference(b, a []types.Stat) []float64 {
	n := len(b)
	if len(a) < n {
		n = len(a)
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		if b[i].Valid && a[i].Valid {
			out[i] = b[i].Value - a[i].Value
		}
	}
	return out
}

// ValueCounts counts rows per distinct valid score in column col, ascending by score.
func ValueCounts(t types.ScoreTable, col int) []types.ValueCount {
	counts := map[int]int{}
	for _, s := range t.Column(col) {
		if s.Valid {
			counts[s.Value]++
		}
	}
	out := make([]types.ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, types.ValueCount{Score: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// RankedMean pairs a question with its mean for ordered reporting.
type RankedMean struct {
	Question types.Question `json:"question"`
	Mean     types.Stat     `json:"mean"`
}

// Rank orders means descending; undefined means go last, ties keep question order.
func Rank(means []types.Stat, questions []types.Question) []RankedMean {
	n := len(means)
	if len(questions) < n {
		n = len(questions)
	}
	out := make([]RankedMean, n)
	for i := 0; i < n; i++ {
		out[i] = RankedMean{Question: questions[i], Mean: means[i]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Mean, out[j].Mean
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Value > b.Value
	})
	return out
}

// ScenarioStats bundles the per-scenario aggregates.
type ScenarioStats struct {
	Means   []types.Stat `json:"means"`
	Overall types.Stat   `json:"overall"`
}

// Comparison is everything the report needs about A versus B.
type Comparison struct {
	Questions    []types.Question     `json:"questions"`
	A            ScenarioStats        `json:"scenario_a"`
	B            ScenarioStats        `json:"scenario_b"`
	Difference   []float64            `json:"difference"`
	Correlation  Matrix               `json:"correlation_b"`
	Distribution [][]types.ValueCount `json:"distribution_b"`
	Ranking      []RankedMean         `json:"ranking_b"`
}

// OverallDifference is B minus A on the overall means; undefined when either is.
func (c Comparison) OverallDifference() types.Stat {
	if !c.A.Overall.Valid || !c.B.Overall.Valid {
		return types.Stat{}
	}
	return types.NewStat(c.B.Overall.Value - c.A.Overall.Value)
}

// Compare aggregates both tables. Only Scenario B is correlated and
// distributed; Scenario A contributes means.
func Compare(a, b types.ScoreTable) Comparison {
	questions := types.Questions()
	meanA := MeanPerQuestion(a)
	meanB := MeanPerQuestion(b)
	dist := make([][]types.ValueCount, len(b.Scores))
	for i := range b.Scores {
		dist[i] = ValueCounts(b, i)
	}
	return Comparison{
		Questions:    questions,
		A:            ScenarioStats{Means: meanA, Overall: OverallMean(meanA)},
		B:            ScenarioStats{Means: meanB, Overall: OverallMean(meanB)},
		Difference:   Difference(meanB, meanA),
		Correlation:  CorrelationMatrix(b),
		Distribution: dist,
		Ranking:      Rank(meanB, questions),
	}
}
