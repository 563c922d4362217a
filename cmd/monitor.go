package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/qrislens/qrislens-cli/internal/sentiment"
	"github.com/qrislens/qrislens-cli/internal/utils"
)

var (
	monDays    int
	monPillar  string
	monPillars string
	monJSON    bool
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Poll the news-search endpoint for per-pillar sentiment signals",
	RunE: func(cmd *cobra.Command, args []string) error {
		pillars, err := resolvePillars()
		if err != nil {
			return err
		}
		if monPillar != "" {
			p, ok := sentiment.Find(pillars, monPillar)
			if !ok {
				return fmt.Errorf("unknown pillar: %s", monPillar)
			}
			pillars = []sentiment.Pillar{p}
		}

		collector := newCollector()
		results := collector.Poll(context.Background(), pillars)

		if monJSON {
			b, err := utils.PrettyJSON(results)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		for _, r := range results {
			if r.Err != "" {
				fmt.Printf("- %s: error (%s) | risk %s | %s\n", r.Pillar, r.Err, r.RiskLevel, r.Advice)
				continue
			}
			fmt.Printf("- %s: %d articles | risk %s | %s\n", r.Pillar, r.ArticleCount, r.RiskLevel, r.Advice)
		}
		return nil
	},
}

func init() {
	monitorCmd.Flags().IntVar(&monDays, "days", 0, "lookback window in days (overrides config)")
	monitorCmd.Flags().StringVar(&monPillar, "pillar", "", "poll a single named pillar")
	monitorCmd.Flags().StringVar(&monPillars, "pillars-file", "", "YAML pillar catalog replacing the built-in set")
	monitorCmd.Flags().BoolVar(&monJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(monitorCmd)
}

func resolvePillars() ([]sentiment.Pillar, error) {
	path := monPillars
	if path == "" {
		path = effectiveConfig().PillarsFile
	}
	if path != "" {
		return sentiment.LoadCatalog(path)
	}
	return sentiment.DefaultCatalog(), nil
}

func newCollector() *sentiment.Collector {
	c := effectiveConfig()
	opts := sentiment.Options{
		BaseURL:       c.GDELTBaseURL,
		Timeout:       time.Duration(c.GDELTTimeoutSec) * time.Second,
		SourceCountry: c.SourceCountry,
		MaxRecords:    c.GDELTMaxRecords,
		TimespanDays:  c.TimespanDays,
		RequestDelay:  time.Duration(c.GDELTDelayMs) * time.Millisecond,
	}
	if monDays > 0 {
		opts.TimespanDays = monDays
	}
	return sentiment.NewCollector(opts)
}
