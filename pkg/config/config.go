// Package config provides configuration loading and validation for the
// downstats CLI.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrMissingFeedURL      = errors.New("feed URL must be set")
	ErrInvalidTopCountries = errors.New("top countries must be positive")
	ErrInvalidTrendKeys    = errors.New("trend keys must be positive")
	ErrInvalidLogLevel     = errors.New("log level must be debug, info, warn or error")
)

// Default configuration values.
const (
	defaultMetricsBase  = "https://storage.googleapis.com/access-logs-summaries-nodejs"
	defaultOutput       = "downloads.html"
	defaultTitle        = "Node.js Download Statistics"
	defaultTopCountries = 15
	defaultTrendKeys    = 8
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultOverridePath = "downloads-by-release.csv"
	configEnvPrefix     = "DOWNSTATS"
	configName          = "config"
	configType          = "yaml"
	configPathCwd       = "."
	configPathConfigDir = "./config"
	configPathSystemEtc = "/etc/downstats"
)

// validLogLevels are the accepted logging.level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all configuration for the downstats CLI.
type Config struct {
	Feeds    FeedsConfig    `mapstructure:"feeds"`
	Override OverrideConfig `mapstructure:"override"`
	Report   ReportConfig   `mapstructure:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// FeedsConfig holds the remote feed endpoints.
type FeedsConfig struct {
	TotalsURL    string `mapstructure:"totals_url"`
	VersionsURL  string `mapstructure:"versions_url"`
	OSURL        string `mapstructure:"os_url"`
	CountriesURL string `mapstructure:"countries_url"`
}

// OverrideConfig holds the local override feed settings.
type OverrideConfig struct {
	Path string `mapstructure:"path"`
}

// ReportConfig holds report rendering settings.
type ReportConfig struct {
	Output       string `mapstructure:"output"`
	Title        string `mapstructure:"title"`
	TopCountries int    `mapstructure:"top_countries"`
	TrendKeys    int    `mapstructure:"trend_keys"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType(configType)
		viperCfg.AddConfigPath(configPathCwd)
		viperCfg.AddConfigPath(configPathConfigDir)
		viperCfg.AddConfigPath(configPathSystemEtc)
	}

	viperCfg.SetEnvPrefix(configEnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("feeds.totals_url", defaultMetricsBase+"/downloads.csv")
	v.SetDefault("feeds.versions_url", defaultMetricsBase+"/versions.csv")
	v.SetDefault("feeds.os_url", defaultMetricsBase+"/oses.csv")
	v.SetDefault("feeds.countries_url", defaultMetricsBase+"/countries.csv")
	v.SetDefault("override.path", defaultOverridePath)
	v.SetDefault("report.output", defaultOutput)
	v.SetDefault("report.title", defaultTitle)
	v.SetDefault("report.top_countries", defaultTopCountries)
	v.SetDefault("report.trend_keys", defaultTrendKeys)
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)
}

func validateConfig(cfg *Config) error {
	urls := []struct {
		name string
		url  string
	}{
		{name: "totals", url: cfg.Feeds.TotalsURL},
		{name: "versions", url: cfg.Feeds.VersionsURL},
		{name: "os", url: cfg.Feeds.OSURL},
		{name: "countries", url: cfg.Feeds.CountriesURL},
	}

	for _, u := range urls {
		if u.url == "" {
			return fmt.Errorf("%w: %s", ErrMissingFeedURL, u.name)
		}
	}

	if cfg.Report.TopCountries <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTopCountries, cfg.Report.TopCountries)
	}

	if cfg.Report.TrendKeys <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTrendKeys, cfg.Report.TrendKeys)
	}

	if !slices.Contains(validLogLevels, strings.ToLower(cfg.Logging.Level)) {
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, cfg.Logging.Level)
	}

	return nil
}
