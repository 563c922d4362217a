package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Paired variables for correlation and quadrant analysis.
	DensityMetric string `mapstructure:"density_metric" yaml:"density_metric"`
	GrowthMetric  string `mapstructure:"growth_metric" yaml:"growth_metric"`

	// Sentiment endpoint configuration.
	GDELTBaseURL    string `mapstructure:"gdelt_base_url" yaml:"gdelt_base_url"`
	GDELTTimeoutSec int    `mapstructure:"gdelt_timeout_sec" yaml:"gdelt_timeout_sec"`
	GDELTMaxRecords int    `mapstructure:"gdelt_max_records" yaml:"gdelt_max_records"`
	GDELTDelayMs    int    `mapstructure:"gdelt_delay_ms" yaml:"gdelt_delay_ms"`
	SourceCountry   string `mapstructure:"source_country" yaml:"source_country"`
	TimespanDays    int    `mapstructure:"timespan_days" yaml:"timespan_days"`

	// Optional override for the built-in pillar catalog.
	PillarsFile string `mapstructure:"pillars_file" yaml:"pillars_file"`

	// Reserved for statistics-office API integration.
	BPSAPIKey string `mapstructure:"bps_api_key" yaml:"bps_api_key"`
}

// envProbePaths are checked in order for a dotenv file before viper reads
// the environment.
func envProbePaths() []string {
	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".qrislens.env"))
	}
	return append(paths, "/etc/qrislens/.env")
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.qrislens/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".qrislens")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	for _, p := range envProbePaths() {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	v := viper.New()
	v.SetEnvPrefix("QRISLENS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("density_metric", "qris_merchant_density")
	v.SetDefault("growth_metric", "pdrb_growth_pct")
	v.SetDefault("gdelt_base_url", "https://api.gdeltproject.org/api/v2/doc/doc")
	v.SetDefault("gdelt_timeout_sec", 15)
	v.SetDefault("gdelt_max_records", 5)
	v.SetDefault("gdelt_delay_ms", 1500)
	v.SetDefault("source_country", "ID")
	v.SetDefault("timespan_days", 30)
	v.SetDefault("pillars_file", "")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".qrislens")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// The statistics-office key is conventionally set without the prefix.
	if c.BPSAPIKey == "" {
		c.BPSAPIKey = os.Getenv("BPS_API_KEY")
	}
	return &c, nil
}
