package types

import "math"

// Response is one survey participant as read from the input file.
type Response struct {
	Row      int      `json:"row"`
	Cells    []string `json:"-"`
	Age      string   `json:"age,omitempty"`
	Gender   string   `json:"gender,omitempty"`
	Field    string   `json:"field_of_study,omitempty"`
	Fairness string   `json:"fairness_text,omitempty"`
	Feature  string   `json:"feature_text,omitempty"`
}

// Cell returns the raw cell at idx and whether the row was long enough to hold it.
func (r Response) Cell(idx int) (string, bool) {
	if idx < 0 || idx >= len(r.Cells) {
		return "", false
	}
	return r.Cells[idx], true
}

// Score is a normalized rating. Valid scores are integers in [1,5].
type Score struct {
	Value int  `json:"value"`
	Valid bool `json:"valid"`
}

func NewScore(v int) Score {
	if v < MinScore || v > MaxScore {
		return Score{}
	}
	return Score{Value: v, Valid: true}
}

// Stat is a derived float that may be undefined (empty column, zero variance).
type Stat struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

func NewStat(v float64) Stat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Stat{}
	}
	return Stat{Value: v, Valid: true}
}

// OrZero sanitizes an undefined stat to 0.
func (s Stat) OrZero() float64 {
	if !s.Valid {
		return 0
	}
	return s.Value
}

// ScoreTable is column-major: Scores[col][row]. Built once, never mutated.
type ScoreTable struct {
	Columns []string  `json:"columns"`
	Scores  [][]Score `json:"scores"`
	Rows    int       `json:"rows"`
}

func (t ScoreTable) Column(i int) []Score {
	if i < 0 || i >= len(t.Scores) {
		return nil
	}
	return t.Scores[i]
}

type ValueCount struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}
