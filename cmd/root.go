package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	cfgpkg "github.com/qrislens/qrislens-cli/internal/config"
)

var (
	// Global flags (wired to config in loadConfig)
	cfgFile string
	debug   bool
	// Collector overrides (apply over config if set)
	flagTimeoutSec int
	flagDelayMs    int
	flagMaxRecords int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "qrislens",
	Short: "QRIS Lens: regional QRIS adoption analytics and sentiment monitoring",
	Long:  `QRIS Lens analyzes provincial QRIS adoption against economic growth: it computes correlation statistics, classifies provinces into strategic quadrants by quartile thresholds, and polls a news-search API for per-pillar sentiment signals.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.qrislens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagTimeoutSec, "http-timeout", 0, "sentiment request timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagDelayMs, "request-delay-ms", 0, "delay between pillar requests in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagMaxRecords, "max-records", 0, "max articles per pillar (overrides config)")
}

func loadConfig() {
	initLogging()
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagTimeoutSec > 0 {
		cfg.GDELTTimeoutSec = flagTimeoutSec
	}
	if f.Changed("request-delay-ms") && flagDelayMs >= 0 {
		cfg.GDELTDelayMs = flagDelayMs
	}
	if f.Changed("max-records") && flagMaxRecords > 0 {
		cfg.GDELTMaxRecords = flagMaxRecords
	}
}

func initLogging() {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// effectiveConfig returns the loaded config, falling back to defaults when
// config loading failed earlier.
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	c, err := cfgpkg.Load("")
	if err != nil {
		return &cfgpkg.Global{}
	}
	return c
}
