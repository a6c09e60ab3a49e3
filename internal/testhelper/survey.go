// Package testhelper builds survey exports for tests.
package testhelper

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/types"
)

const (
	StronglyDisagree = "Strongly disagree | Мүлде келіспеймін | Совершенно не согласен"
	Disagree         = "Disagree | Келіспеймін | Не согласен"
	Neutral          = "Neutral | Бейтарап | Нейтрален"
	Agree            = "Agree | Келісемін | Согласен"
	StronglyAgree    = "Strongly agree | Толықтай келісемін | Полностью согласен"
)

// Labels indexed by score-1.
var Labels = []string{StronglyDisagree, Disagree, Neutral, Agree, StronglyAgree}

// Width is the column count of a generated export.
const Width = types.MinColumns + 2

// Header returns metadata, 15 A questions, 15 B questions and the two free-text columns.
func Header() []string {
	h := []string{
		"Timestamp",
		"Age | Жас | Возраст",
		"Gender | Жыныс | Пол",
		"Field of study | Мамандық | Специальность",
	}
	for _, sc := range []string{"A", "B"} {
		for i, l := range types.QuestionLabels {
			h = append(h, fmt.Sprintf("Scenario %s Q%d %s | Сценарий | Сценарий", sc, i+1, l))
		}
	}
	return append(h, types.FairnessTextHeader, types.FeatureTextHeader)
}

// Row is one generated response.
type Row struct {
	Age, Gender, Field string
	A, B               [15]string
	Fairness, Feature  string
}

// Uniform fills both scenarios with fixed labels.
func Uniform(a, b string) Row {
	var r Row
	for i := range r.A {
		r.A[i] = a
		r.B[i] = b
	}
	r.Age, r.Gender, r.Field = "21", "Female", "Law"
	return r
}

func (r Row) Cells() []string {
	c := []string{"2025-01-01 10:00", r.Age, r.Gender, r.Field}
	c = append(c, r.A[:]...)
	c = append(c, r.B[:]...)
	return append(c, r.Fairness, r.Feature)
}

// Records returns header plus rows as string records.
func Records(rows ...Row) [][]string {
	out := [][]string{Header()}
	for _, r := range rows {
		out = append(out, r.Cells())
	}
	return out
}

// CSV renders rows as a CSV document.
func CSV(t testing.TB, rows ...Row) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(Records(rows...)); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return buf.Bytes()
}

// WriteCSV writes rows into dir/name and returns the path.
func WriteCSV(t testing.TB, dir, name string, rows ...Row) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, CSV(t, rows...), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// Quiet returns a logger that discards output.
func Quiet() *logger.Logger {
	return logger.Discard()
}

// Responses converts generated rows into loaded responses.
func Responses(rows ...Row) []types.Response {
	out := make([]types.Response, len(rows))
	for i, r := range rows {
		out[i] = types.Response{
			Row:      i + 1,
			Cells:    r.Cells(),
			Age:      r.Age,
			Gender:   r.Gender,
			Field:    r.Field,
			Fairness: r.Fairness,
			Feature:  r.Feature,
		}
	}
	return out
}
