// Package normalizer converts trilingual Likert labels into 1–5 scores.
package normalizer

import (
	"fmt"
	"strconv"
	"strings"

	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/types"
)

// RatingMapping is the canonical label → score table. Keys are matched
// exactly: no trimming, no case folding, no per-language matching.
var RatingMapping = map[string]int{
	"Strongly disagree | Мүлде келіспеймін | Совершенно не согласен": 1,
	"Disagree | Келіспеймін | Не согласен":                           2,
	"Neutral | Бейтарап | Нейтрален":                                 3,
	"Agree | Келісемін | Согласен":                                   4,
	"Strongly agree | Толықтай келісемін | Полностью согласен":       5,
}

const (
	headerPreview = 30
	valuePreview  = 3
)

// Warning reports a column that held values other than canonical labels.
type Warning struct {
	Index     int      `json:"index"`
	Column    string   `json:"column"`
	Values    []string `json:"values"`
	Offending int      `json:"offending"`
}

func (w Warning) String() string {
	return fmt.Sprintf("column %s contains non-numeric values: %q", w.Column, w.Values)
}

type Normalizer struct {
	mapping map[string]int
	log     *logger.Logger
}

func New(log *logger.Logger) *Normalizer {
	return &Normalizer{mapping: RatingMapping, log: log.WithComponent("normalizer")}
}

// Normalize builds a fresh score table for the columns in r. Every cell ends
// up as a valid score or missing; malformed input never fails the call.
func (n *Normalizer) Normalize(header []string, rows []types.Response, r types.Range) (types.ScoreTable, []Warning) {
	table := types.ScoreTable{
		Columns: make([]string, 0, r.Len()),
		Scores:  make([][]types.Score, 0, r.Len()),
		Rows:    len(rows),
	}
	var warnings []Warning
	for col := r.Start; col < r.End; col++ {
		name := ""
		if col < len(header) {
			name = header[col]
		}
		scores, w := n.column(col, name, rows)
		table.Columns = append(table.Columns, name)
		table.Scores = append(table.Scores, scores)
		if w != nil {
			n.log.WithFields(map[string]interface{}{
				"scenario": r.Name,
				"column":   w.Column,
				"values":   w.Values,
				"distinct": w.Offending,
			}).Warn("non-numeric value detected")
			warnings = append(warnings, *w)
		}
	}
	return table, warnings
}

func (n *Normalizer) column(idx int, name string, rows []types.Response) ([]types.Score, *Warning) {
	substituted := make([]string, len(rows))
	for i, row := range rows {
		raw, _ := row.Cell(idx)
		if v, ok := n.mapping[raw]; ok {
			substituted[i] = strconv.Itoa(v)
		} else {
			substituted[i] = raw
		}
	}

	seen := map[string]bool{}
	var offending []string
	for _, v := range substituted {
		if seen[v] {
			continue
		}
		seen[v] = true
		if _, ok := parseScore(v); !ok {
			offending = append(offending, v)
		}
	}

	scores := make([]types.Score, len(substituted))
	for i, v := range substituted {
		if s, ok := parseScore(v); ok {
			scores[i] = types.NewScore(s)
		}
	}

	if len(offending) == 0 {
		return scores, nil
	}
	preview := offending
	if len(preview) > valuePreview {
		preview = preview[:valuePreview]
	}
	return scores, &Warning{
		Index:     idx,
		Column:    truncate(name, headerPreview),
		Values:    append([]string(nil), preview...),
		Offending: len(offending),
	}
}

// parseScore accepts only ASCII digit strings that land on the rating scale.
func parseScore(v string) (int, bool) {
	if v == "" || strings.TrimLeft(v, "0123456789") != "" {
		return 0, false
	}
	s, err := strconv.Atoi(v)
	if err != nil || s < types.MinScore || s > types.MaxScore {
		return 0, false
	}
	return s, true
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
