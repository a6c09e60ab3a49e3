// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"os"

	"survey-insights-go/internal/actionable"
	"survey-insights-go/internal/aggregator"
	"survey-insights-go/internal/config"
	"survey-insights-go/internal/dataset"
	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/normalizer"
	"survey-insights-go/internal/report"
	"survey-insights-go/internal/tokenizer"
	"survey-insights-go/internal/types"
)

// Result is what one analysis run produced.
type Result struct {
	Rows         int                     `json:"rows"`
	Cols         int                     `json:"cols"`
	Comparison   aggregator.Comparison   `json:"comparison"`
	Warnings     []normalizer.Warning    `json:"warnings"`
	Demographics dataset.Demographics    `json:"demographics"`
	Words        []types.WordCount       `json:"words"`
	Cards        []actionable.ActionCard `json:"cards"`
	Artifacts    []string                `json:"artifacts"`

	// ReportErr holds artifact failures. They do not fail the run.
	ReportErr error `json:"-"`
}

// Run analyzes one survey export end to end. Only loading and layout
// problems (and cancellation) are returned as errors.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) (Result, error) {
	var res Result

	log.WithField("input", cfg.Input).Info("loading survey export")
	ds, err := dataset.Load(cfg.Input)
	if err != nil {
		return res, fmt.Errorf("load %s: %w", cfg.Input, err)
	}
	res.Rows, res.Cols = ds.Shape()
	log.WithFields(map[string]interface{}{
		"rows": res.Rows,
		"cols": res.Cols,
	}).Info("dataset loaded")
	for _, r := range []types.Range{types.ScenarioA, types.ScenarioB} {
		log.WithField("scenario", r.Name).WithField("questions", r.Len()).Info("scenario columns")
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	n := normalizer.New(log)
	tableA, warnA := n.Normalize(ds.Header, ds.Responses, types.ScenarioA)
	tableB, warnB := n.Normalize(ds.Header, ds.Responses, types.ScenarioB)
	res.Warnings = append(warnA, warnB...)
	log.WithField("responses", tableB.Rows).Info("ratings normalized")

	res.Comparison = aggregator.Compare(tableA, tableB)
	log.WithFields(map[string]interface{}{
		"overall_a":  fmt.Sprintf("%.2f", res.Comparison.A.Overall.OrZero()),
		"overall_b":  fmt.Sprintf("%.2f", res.Comparison.B.Overall.OrZero()),
		"difference": fmt.Sprintf("%+.2f", res.Comparison.OverallDifference().OrZero()),
	}).Info("overall means")

	res.Demographics = dataset.Summarize(ds.Responses, log)

	sources := tokenizer.Sources(ds.Responses, ds.Columns.Fairness >= 0, ds.Columns.Feature >= 0)
	blob := tokenizer.Blob(sources, log)
	if tokenizer.HasText(blob) {
		res.Words = tokenizer.Frequencies(blob, tokenizer.NewFilter(tokenizer.DefaultStopwords...), cfg.MaxWords)
		log.WithField("distinct_words", len(res.Words)).Info("word frequencies counted")
	}

	res.Cards = actionable.Generate(res.Comparison)
	for _, c := range res.Cards {
		log.WithField("action", c.Action).WithField("impact", c.Impact).Info(c.Insight)
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("create output dir: %w", err)
	}
	sink := report.NewSink(cfg.OutputDir, cfg.SaveTimeout, log)
	res.Artifacts, res.ReportErr = sink.Write(report.Input{
		Comparison:   res.Comparison,
		Words:        res.Words,
		Demographics: res.Demographics,
		Cards:        res.Cards,
		Warnings:     res.Warnings,
		Rows:         res.Rows,
		Cols:         res.Cols,
	})
	if res.ReportErr != nil {
		log.WithError(res.ReportErr).Warn("some artifacts were not written")
	}
	log.WithField("artifacts", len(res.Artifacts)).Info("analysis complete")
	return res, nil
}
