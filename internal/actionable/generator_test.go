package actionable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-insights-go/internal/aggregator"
	"survey-insights-go/internal/types"
)

func comparison(diff []float64, meansB []types.Stat) aggregator.Comparison {
	qs := types.Questions()[:len(diff)]
	return aggregator.Comparison{
		Questions:  qs,
		Difference: diff,
		Ranking:    aggregator.Rank(meansB, qs),
	}
}

func TestGenerateGapsAndWeakest(t *testing.T) {
	c := comparison(
		[]float64{0.2, 1.1, -0.7},
		[]types.Stat{{Value: 4, Valid: true}, {Value: 3.5, Valid: true}, {Value: 2.2, Valid: true}},
	)
	cards := Generate(c)
	require.Len(t, cards, 3)
	assert.Contains(t, cards[0].Insight, "Q2: Fair criteria (+1.10)")
	assert.Contains(t, cards[1].Insight, "Q3: Chance to be heard (-0.70)")
	assert.Contains(t, cards[2].Insight, "Weakest Scenario B item Q3")
}

func TestGenerateSkipsUndefinedWeakest(t *testing.T) {
	c := comparison(
		[]float64{0, 0},
		[]types.Stat{{Value: 2.5, Valid: true}, {}},
	)
	cards := Generate(c)
	require.Len(t, cards, 1)
	assert.Contains(t, cards[0].Insight, "Q1: Fair treatment (2.50)")
}

func TestGenerateFallback(t *testing.T) {
	c := comparison(
		[]float64{0.1, -0.1},
		[]types.Stat{{Value: 4, Valid: true}, {Value: 3.9, Valid: true}},
	)
	cards := Generate(c)
	require.Len(t, cards, 1)
	assert.Equal(t, "No strong difference between scenarios detected", cards[0].Insight)

	assert.Len(t, Generate(aggregator.Comparison{}), 1)
}
