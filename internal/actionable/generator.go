package actionable

import (
	"fmt"

	"survey-insights-go/internal/aggregator"
)

// Thresholds on the 1–5 scale.
const (
	gapThreshold     = 0.5
	neutralThreshold = 3.0
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// Generate turns the scenario comparison into headline cards.
func Generate(c aggregator.Comparison) []ActionCard {
	var cards []ActionCard

	best, worst := -1, -1
	for i, d := range c.Difference {
		if best == -1 || d > c.Difference[best] {
			best = i
		}
		if worst == -1 || d < c.Difference[worst] {
			worst = i
		}
	}
	if best >= 0 && best < len(c.Questions) && c.Difference[best] >= gapThreshold {
		q := c.Questions[best]
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("Scenario B rated higher on %s: %s (%+.2f)", q.Short(), q.Label, c.Difference[best]),
			Action:  fmt.Sprintf("Carry the Scenario B approach to %q over to Scenario A", q.Label),
			Impact:  "Raise perceived fairness where the gap is widest",
		})
	}
	if worst >= 0 && worst < len(c.Questions) && c.Difference[worst] <= -gapThreshold {
		q := c.Questions[worst]
		cards = append(cards, ActionCard{
			Insight: fmt.Sprintf("Scenario B rated lower on %s: %s (%+.2f)", q.Short(), q.Label, c.Difference[worst]),
			Action:  fmt.Sprintf("Review what Scenario B loses on %q", q.Label),
			Impact:  "Avoid eroding trust while adopting Scenario B",
		})
	}

	// Ranking is descending with undefined means last.
	for i := len(c.Ranking) - 1; i >= 0; i-- {
		r := c.Ranking[i]
		if !r.Mean.Valid {
			continue
		}
		if r.Mean.Value < neutralThreshold {
			cards = append(cards, ActionCard{
				Insight: fmt.Sprintf("Weakest Scenario B item %s: %s (%.2f)", r.Question.Short(), r.Question.Label, r.Mean.Value),
				Action:  "Prioritise this safeguard in the next iteration",
				Impact:  "Lift the lowest-rated aspect above neutral",
			})
		}
		break
	}

	if len(cards) == 0 {
		return []ActionCard{{
			Insight: "No strong difference between scenarios detected",
			Action:  "Monitor and collect more responses",
			Impact:  "Low immediate intervention",
		}}
	}
	return cards
}
