package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/qrislens/qrislens-cli/internal/analysis"
	"github.com/qrislens/qrislens-cli/internal/dataset"
	"github.com/qrislens/qrislens-cli/internal/report"
)

var (
	anaOutputPath string
	anaJSON       bool
	anaSynthetic  bool
	anaDensity    string
	anaGrowth     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [dataset]",
	Short: "Run correlation and quadrant analysis over a regional dataset",
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

		rep := report.Build(ds, corr, corrErr, quad, quadErr, nil)
		return emitReport(rep, anaOutputPath, anaJSON)
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&anaJSON, "json", false, "emit JSON instead of text")
	analyzeCmd.Flags().BoolVar(&anaSynthetic, "synthetic", false, "use the built-in demonstration dataset")
	analyzeCmd.Flags().StringVar(&anaDensity, "density-metric", "", "metric name for adoption density (X axis)")
	analyzeCmd.Flags().StringVar(&anaGrowth, "growth-metric", "", "metric name for growth rate (Y axis)")
	rootCmd.AddCommand(analyzeCmd)
}

// resolveDataset loads the dataset from the argument, a discovered
// benchmarks file, or the synthetic generator, in that order.
func resolveDataset(args []string) (*dataset.Dataset, error) {
	if anaSynthetic {
		return dataset.Synthetic(), nil
	}
	if len(args) == 1 {
		return dataset.Load(args[0])
	}
	if path := dataset.Discover(); path != "" {
		return dataset.Load(path)
	}
	log.Info().Msg("no dataset found, using synthetic demonstration data")
	return dataset.Synthetic(), nil
}

func metricNames() (x, y string) {
	c := effectiveConfig()
	x, y = c.DensityMetric, c.GrowthMetric
	if anaDensity != "" {
		x = anaDensity
	}
	if anaGrowth != "" {
		y = anaGrowth
	}
	if x == "" {
		x = dataset.MetricDensity
	}
	if y == "" {
		y = dataset.MetricGrowth
	}
	return x, y
}

func emitReport(rep *report.Report, outputPath string, asJSON bool) error {
	if asJSON || (outputPath != "" && isJSONPath(outputPath)) {
		if outputPath != "" {
			if err := rep.ExportJSON(outputPath); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote report to %s\n", outputPath)
			return nil
		}
		b, err := rep.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}
	md := rep.Markdown()
	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(md), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("✓ Wrote report to %s\n", outputPath)
		return nil
	}
	fmt.Print(md)
	return nil
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
}
