package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"survey-insights-go/internal/config"
	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "survey",
	Short: "Analyze an AI fairness survey export",
	Long: `survey compares two decision-making scenarios rated on a trilingual
five-point scale and writes spreadsheet reports with charts.`,
	SilenceUsage: true,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [input]",
	Short: "Run the full analysis and write report workbooks",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	config.Flags(analyzeCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if err := cmd.Flags().Set(config.KeyInput, args[0]); err != nil {
			return err
		}
	}
	v, err := config.New(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	log := logger.New().WithRun()
	log.Logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	log.WithField("service", "survey-insights-go").Info("starting analysis")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := pipeline.Run(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("analysis failed")
		return err
	}
	if res.ReportErr != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", firstLine(res.ReportErr))
	}
	for _, p := range res.Artifacts {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		n := strings.Count(msg, "\n")
		return fmt.Sprintf("%s (and %d more)", msg[:i], n)
	}
	return msg
}
