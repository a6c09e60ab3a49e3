// Package report renders computed survey tables into spreadsheet artifacts.
// It only consumes results; nothing it produces flows back into the analysis.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"survey-insights-go/internal/actionable"
	"survey-insights-go/internal/aggregator"
	"survey-insights-go/internal/dataset"
	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/normalizer"
	"survey-insights-go/internal/types"
)

// Artifact base names, written as <name>.xlsx in the output directory.
const (
	ComparisonAB        = "comparison_AB"
	DifferenceAB        = "difference_AB"
	CorrelationMatrix   = "correlation_matrix"
	AnswersDistribution = "answers_distribution"
	MeanRatings         = "mean_ratings"
	WordCloud           = "wordcloud"
	Summary             = "summary"
)

// Input is everything the sink renders.
type Input struct {
	Comparison   aggregator.Comparison
	Words        []types.WordCount
	Demographics dataset.Demographics
	Cards        []actionable.ActionCard
	Warnings     []normalizer.Warning
	Rows, Cols   int
}

type Sink struct {
	dir         string
	saveTimeout time.Duration
	log         *logger.Logger
}

func NewSink(dir string, saveTimeout time.Duration, log *logger.Logger) *Sink {
	return &Sink{dir: dir, saveTimeout: saveTimeout, log: log.WithComponent("report")}
}

type renderer struct {
	name  string
	sheet string
	fill  func(w *workbook, in Input) error
}

var renderers = []renderer{
	{ComparisonAB, "Comparison", renderComparison},
	{DifferenceAB, "Difference", renderDifference},
	{CorrelationMatrix, "Correlation", renderCorrelation},
	{AnswersDistribution, "Distribution", renderDistribution},
	{MeanRatings, "MeanRatings", renderMeanRatings},
	{WordCloud, "Words", renderWords},
	{Summary, "Overview", renderSummary},
}

// Write renders every artifact. A failing artifact is logged and skipped so
// the others are still produced; the joined failures are returned with the
// paths that were written.
func (s *Sink) Write(in Input) ([]string, error) {
	var (
		paths []string
		errs  []error
	)
	for _, r := range renderers {
		if r.name == WordCloud && len(in.Words) == 0 {
			s.log.Info("no text responses, skipping word frequency artifact")
			continue
		}
		path, err := s.render(r, in)
		if err != nil {
			s.log.WithError(err).WithField("artifact", r.name).Error("artifact failed")
			errs = append(errs, err)
			continue
		}
		s.log.WithField("path", path).Info("artifact saved")
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

func (s *Sink) render(r renderer, in Input) (string, error) {
	w, err := newWorkbook(r.sheet)
	if err != nil {
		return "", fmt.Errorf("%s: %w", r.name, err)
	}
	defer w.Close()
	if err := r.fill(w, in); err != nil {
		return "", fmt.Errorf("%s: %w", r.name, err)
	}
	return save(w, s.dir, r.name, s.saveTimeout)
}

// renderComparison: grouped columns per question plus overall-mean lines.
func renderComparison(w *workbook, in Input) error {
	c := in.Comparison
	if err := w.row(1, "Question", "Label", "Scenario A", "Scenario B", "Overall A", "Overall B"); err != nil {
		return err
	}
	n := len(c.Questions)
	for i, q := range c.Questions {
		r := i + 2
		if err := w.row(r, q.Short(), q.Label); err != nil {
			return err
		}
		for col, s := range []types.Stat{statAt(c.A.Means, i), statAt(c.B.Means, i), c.A.Overall, c.B.Overall} {
			if err := w.stat(col+3, r, s); err != nil {
				return err
			}
		}
	}
	last := n + 1
	bars := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{Name: w.cellRef(3, 1), Categories: w.ref(1, 2, 1, last), Values: w.ref(3, 2, 3, last)},
			{Name: w.cellRef(4, 1), Categories: w.ref(1, 2, 1, last), Values: w.ref(4, 2, 4, last)},
		},
		Title:     title("Comparison of Average Scores: Scenario A vs Scenario B"),
		Legend:    excelize.ChartLegend{Position: "bottom"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		XAxis:     excelize.ChartAxis{Title: title("Questions")},
		YAxis:     excelize.ChartAxis{Title: title("Average rating"), Minimum: float(0), Maximum: float(5.5)},
		Dimension: excelize.ChartDimension{Width: 960, Height: 540},
	}
	lines := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{Name: w.cellRef(5, 1), Categories: w.ref(1, 2, 1, last), Values: w.ref(5, 2, 5, last)},
			{Name: w.cellRef(6, 1), Categories: w.ref(1, 2, 1, last), Values: w.ref(6, 2, 6, last)},
		},
	}
	return w.chart("H2", bars, lines)
}

func renderDifference(w *workbook, in Input) error {
	c := in.Comparison
	if err := w.row(1, "Question", "Label", "Difference (B - A)"); err != nil {
		return err
	}
	for i, d := range c.Difference {
		q := questionAt(c.Questions, i)
		if err := w.row(i+2, q.Short(), q.Label, d); err != nil {
			return err
		}
	}
	last := len(c.Difference) + 1
	if err := w.styleRange(w.signed, 3, 2, 3, last); err != nil {
		return err
	}
	return w.chart("E2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{Name: w.cellRef(3, 1), Categories: w.ref(1, 2, 1, last), Values: w.ref(3, 2, 3, last)},
		},
		Title:     title("Difference in Average Scores: Scenario B minus Scenario A"),
		Legend:    excelize.ChartLegend{Position: "none"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		YAxis:     excelize.ChartAxis{Title: title("Difference (B - A)")},
		Dimension: excelize.ChartDimension{Width: 960, Height: 480},
	})
}

// renderCorrelation writes the strictly lower triangle with a colour scale.
func renderCorrelation(w *workbook, in Input) error {
	lower := in.Comparison.Correlation.LowerTriangle()
	if err := w.set(1, 1, "Question number"); err != nil {
		return err
	}
	for i := 0; i < lower.Size; i++ {
		q := questionAt(in.Comparison.Questions, i)
		if err := w.set(i+2, 1, q.Short()); err != nil {
			return err
		}
		if err := w.set(1, i+2, q.Short()); err != nil {
			return err
		}
		for j := 0; j < i; j++ {
			if err := w.stat(j+2, i+2, lower.At(i, j)); err != nil {
				return err
			}
		}
	}
	if lower.Size == 0 {
		return nil
	}
	area := fmt.Sprintf("%s:%s", cellName(2, 2), cellName(lower.Size+1, lower.Size+1))
	return w.f.SetConditionalFormat(w.sheet, area, []excelize.ConditionalFormatOptions{{
		Type:     "2_color_scale",
		Criteria: "=",
		MinType:  "num",
		MinValue: "0.3",
		MaxType:  "num",
		MaxValue: "0.93",
		MinColor: "#FDE0DD",
		MaxColor: "#7A0177",
	}})
}

// renderDistribution: one row of counts per question and a 5×3 chart grid.
func renderDistribution(w *workbook, in Input) error {
	c := in.Comparison
	header := []interface{}{"Question", "Label"}
	for s := types.MinScore; s <= types.MaxScore; s++ {
		header = append(header, s)
	}
	if err := w.row(1, header...); err != nil {
		return err
	}
	for i, counts := range c.Distribution {
		q := questionAt(c.Questions, i)
		r := i + 2
		if err := w.row(r, q.Short(), q.Label); err != nil {
			return err
		}
		for _, vc := range counts {
			if err := w.set(vc.Score-types.MinScore+3, r, vc.Count); err != nil {
				return err
			}
		}
	}
	lastCol := types.MaxScore - types.MinScore + 3
	for i := range c.Distribution {
		q := questionAt(c.Questions, i)
		r := i + 2
		anchor := cellName(lastCol+2+(i%3)*8, 1+(i/3)*14)
		err := w.chart(anchor, &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{
				{Name: w.cellRef(1, r), Categories: w.ref(3, 1, lastCol, 1), Values: w.ref(3, r, lastCol, r)},
			},
			Title:     title(fmt.Sprintf("%s: %s", q.Short(), q.Label)),
			Legend:    excelize.ChartLegend{Position: "none"},
			PlotArea:  excelize.ChartPlotArea{ShowVal: true},
			YAxis:     excelize.ChartAxis{Title: title("Count")},
			Dimension: excelize.ChartDimension{Width: 480, Height: 260},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// renderMeanRatings: Scenario B means from highest to lowest.
func renderMeanRatings(w *workbook, in Input) error {
	ranking := in.Comparison.Ranking
	if err := w.row(1, "Question", "Average rating"); err != nil {
		return err
	}
	for i, r := range ranking {
		if err := w.set(1, i+2, fmt.Sprintf("%s: %s", r.Question.Short(), r.Question.Label)); err != nil {
			return err
		}
		if err := w.stat(2, i+2, r.Mean); err != nil {
			return err
		}
	}
	last := len(ranking) + 1
	return w.chart("D2", &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{
			{Name: w.cellRef(2, 1), Categories: w.ref(1, 2, 1, last), Values: w.ref(2, 2, 2, last)},
		},
		Title:     title("Average Fairness and Trust Ratings"),
		Legend:    excelize.ChartLegend{Position: "none"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		XAxis:     excelize.ChartAxis{ReverseOrder: true},
		YAxis:     excelize.ChartAxis{Title: title("Average rating (1-5)")},
		Dimension: excelize.ChartDimension{Width: 860, Height: 500},
	})
}

func renderWords(w *workbook, in Input) error {
	if err := w.row(1, "Word", "Count"); err != nil {
		return err
	}
	for i, wc := range in.Words {
		if err := w.row(i+2, wc.Word, wc.Count); err != nil {
			return err
		}
	}
	last := len(in.Words) + 1
	return w.chart("D2", &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{
			{Name: w.cellRef(2, 1), Categories: w.ref(1, 2, 1, last), Values: w.ref(2, 2, 2, last)},
		},
		Title:     title("Word Frequencies from Open-Ended Responses"),
		Legend:    excelize.ChartLegend{Position: "none"},
		XAxis:     excelize.ChartAxis{ReverseOrder: true},
		Dimension: excelize.ChartDimension{Width: 720, Height: 1200},
	})
}

// renderSummary collects run metadata, demographics, insight cards and
// conversion warnings on separate sheets.
func renderSummary(w *workbook, in Input) error {
	c := in.Comparison
	rows := [][]interface{}{
		{"Responses", in.Rows},
		{"Columns", in.Cols},
		{"Questions per scenario", len(c.Questions)},
	}
	for i, r := range rows {
		if err := w.row(i+1, r...); err != nil {
			return err
		}
	}
	next := len(rows) + 1
	for _, kv := range []struct {
		label string
		s     types.Stat
	}{
		{"Overall mean A", c.A.Overall},
		{"Overall mean B", c.B.Overall},
		{"Difference (B - A)", c.OverallDifference()},
	} {
		if err := w.set(1, next, kv.label); err != nil {
			return err
		}
		if err := w.stat(2, next, kv.s); err != nil {
			return err
		}
		next++
	}

	if err := demographicsSheet(w, in.Demographics); err != nil {
		return err
	}
	if err := insightsSheet(w, in.Cards); err != nil {
		return err
	}
	return warningsSheet(w, in.Warnings)
}

func demographicsSheet(w *workbook, d dataset.Demographics) error {
	const sheet = "Demographics"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	sw := &workbook{f: w.f, sheet: sheet, twoDec: w.twoDec, signed: w.signed}
	if err := sw.row(1, "Respondents", d.Respondents); err != nil {
		return err
	}
	if err := sw.row(2, "Age answered", d.Age.Valid, "Age missing", d.Age.Missing); err != nil {
		return err
	}
	for i, kv := range []struct {
		label string
		s     types.Stat
	}{{"Age mean", d.Age.Mean}, {"Age min", d.Age.Min}, {"Age max", d.Age.Max}} {
		if err := sw.set(1, 3+i, kv.label); err != nil {
			return err
		}
		if err := sw.stat(2, 3+i, kv.s); err != nil {
			return err
		}
	}
	r := 7
	for _, group := range []struct {
		title string
		cats  []dataset.Category
	}{{"Gender", d.Gender}, {"Field of study", d.Field}} {
		if err := sw.row(r, group.title, "Count"); err != nil {
			return err
		}
		r++
		for _, c := range group.cats {
			if err := sw.row(r, c.Value, c.Count); err != nil {
				return err
			}
			r++
		}
		r++
	}
	return nil
}

func insightsSheet(w *workbook, cards []actionable.ActionCard) error {
	const sheet = "Insights"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	sw := &workbook{f: w.f, sheet: sheet}
	if err := sw.row(1, "Insight", "Action", "Impact"); err != nil {
		return err
	}
	for i, c := range cards {
		if err := sw.row(i+2, c.Insight, c.Action, c.Impact); err != nil {
			return err
		}
	}
	return nil
}

func warningsSheet(w *workbook, warnings []normalizer.Warning) error {
	const sheet = "Warnings"
	if _, err := w.f.NewSheet(sheet); err != nil {
		return err
	}
	sw := &workbook{f: w.f, sheet: sheet}
	if err := sw.row(1, "Column index", "Column", "Distinct offending values", "Examples"); err != nil {
		return err
	}
	for i, wn := range warnings {
		if err := sw.row(i+2, wn.Index, wn.Column, wn.Offending, fmt.Sprintf("%q", wn.Values)); err != nil {
			return err
		}
	}
	return nil
}

func statAt(s []types.Stat, i int) types.Stat {
	if i < 0 || i >= len(s) {
		return types.Stat{}
	}
	return s[i]
}

func questionAt(qs []types.Question, i int) types.Question {
	if i >= 0 && i < len(qs) {
		return qs[i]
	}
	return types.Question{Index: i, Label: fmt.Sprintf("Question %d", i+1)}
}
