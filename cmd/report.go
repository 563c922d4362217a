package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/qrislens/qrislens-cli/internal/analysis"
	"github.com/qrislens/qrislens-cli/internal/report"
	"github.com/qrislens/qrislens-cli/internal/sentiment"
)

var (
	repOutputPath    string
	repSkipSentiment bool
)

var reportCmd = &cobra.Command{
	Use:   "report [dataset]",
	Short: "Run the full pipeline and export a JSON report",
	Long:  `Runs correlation and quadrant analysis over the dataset, polls the sentiment endpoint per monitoring pillar, and exports the assembled report as JSON.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := resolveDataset(args)
		if err != nil {
			return err
		}
		x, y := metricNames()

		corr, corrErr := analysis.Correlate(ds, x, y)
		if corrErr != nil {
			log.Warn().Err(corrErr).Msg("correlation unavailable")
		}
		quad, quadErr := analysis.Classify(ds, x, y)
		if quadErr != nil {
			log.Warn().Err(quadErr).Msg("quadrant analysis unavailable")
		}

		var results []sentiment.PillarResult
		if !repSkipSentiment {
			pillars, err := resolvePillars()
			if err != nil {
				return err
			}
			results = newCollector().Poll(context.Background(), pillars)
		}

		rep := report.Build(ds, corr, corrErr, quad, quadErr, results)
		fmt.Print(rep.Markdown())

		path := repOutputPath
		if path == "" {
			path = report.DefaultExportName(time.Now())
		}
		if err := rep.ExportJSON(path); err != nil {
			return err
		}
		fmt.Printf("\n✓ Wrote report to %s\n", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&repOutputPath, "output", "o", "", "export path (default qrislens_report_<timestamp>.json)")
	reportCmd.Flags().BoolVar(&repSkipSentiment, "skip-sentiment", false, "skip the sentiment polling stage")
	reportCmd.Flags().BoolVar(&anaSynthetic, "synthetic", false, "use the built-in demonstration dataset")
	rootCmd.AddCommand(reportCmd)
}
