package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/qrislens/qrislens-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set QRIS Lens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("density_metric: %s\n", cfg.DensityMetric)
		fmt.Printf("growth_metric: %s\n", cfg.GrowthMetric)
		fmt.Printf("gdelt_base_url: %s\n", cfg.GDELTBaseURL)
		fmt.Printf("gdelt_timeout_sec: %d\n", cfg.GDELTTimeoutSec)
		fmt.Printf("gdelt_max_records: %d\n", cfg.GDELTMaxRecords)
		fmt.Printf("gdelt_delay_ms: %d\n", cfg.GDELTDelayMs)
		fmt.Printf("source_country: %s\n", cfg.SourceCountry)
		fmt.Printf("timespan_days: %d\n", cfg.TimespanDays)
		if cfg.PillarsFile != "" {
			fmt.Printf("pillars_file: %s\n", cfg.PillarsFile)
		}
		fmt.Printf("bps_api_key: %s\n", mask(cfg.BPSAPIKey))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "density_metric":
			cfg.DensityMetric = val
		case "growth_metric":
			cfg.GrowthMetric = val
		case "gdelt_base_url":
			cfg.GDELTBaseURL = val
		case "source_country":
			cfg.SourceCountry = val
		case "pillars_file":
			cfg.PillarsFile = val
		case "bps_api_key":
			cfg.BPSAPIKey = val
		case "gdelt_timeout_sec", "gdelt_max_records", "gdelt_delay_ms", "timespan_days":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return fmt.Errorf("%s must be a non-negative integer", key)
			}
			switch key {
			case "gdelt_timeout_sec":
				cfg.GDELTTimeoutSec = n
			case "gdelt_max_records":
				cfg.GDELTMaxRecords = n
			case "gdelt_delay_ms":
				cfg.GDELTDelayMs = n
			case "timespan_days":
				cfg.TimespanDays = n
			}
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func mask(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "..." + s[len(s)-3:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
