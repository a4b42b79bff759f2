// Package config loads settings from defaults, an optional YAML file,
// FCFF_* environment variables and command-line flags, in increasing
// priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "FCFF"

// Config is the complete application configuration.
type Config struct {
	DataDir        string   `mapstructure:"data_dir"`
	ValuationPath  string   `mapstructure:"valuation_path"`
	ReferencePath  string   `mapstructure:"reference_path"`
	DatabaseDir    string   `mapstructure:"database_dir"`
	TickerSuffixes []string `mapstructure:"ticker_suffixes"`

	Watchlist  WatchlistConfig  `mapstructure:"watchlist"`
	Navigation NavigationConfig `mapstructure:"navigation"`
	Quotes     QuotesConfig     `mapstructure:"quotes"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Display    DisplayConfig    `mapstructure:"display"`
}

type WatchlistConfig struct {
	Path    string `mapstructure:"path"`
	Backend string `mapstructure:"backend"` // "text" or "sqlite"
}

type NavigationConfig struct {
	Boundary string `mapstructure:"boundary"` // "clamp", "wrap" or "reject"
}

// QuotesConfig controls optional live prices from Yahoo Finance.
type QuotesConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Timeout     time.Duration `mapstructure:"timeout"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	CacheSize   int           `mapstructure:"cache_size"`
	Concurrency int           `mapstructure:"concurrency"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
	File   string `mapstructure:"file"`
}

type DisplayConfig struct {
	MaxColWidth int  `mapstructure:"max_col_width"`
	Color       bool `mapstructure:"color"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", ".")
	v.SetDefault("valuation_path", "FCFF_analysis_filtered.xlsx")
	v.SetDefault("reference_path", "myData.csv")
	v.SetDefault("database_dir", "Database")
	v.SetDefault("ticker_suffixes", []string{".SI"})

	v.SetDefault("watchlist.path", filepath.Join("Cache", "watchlist.txt"))
	v.SetDefault("watchlist.backend", "text")

	v.SetDefault("navigation.boundary", "clamp")

	v.SetDefault("quotes.enabled", false)
	v.SetDefault("quotes.timeout", 5*time.Second)
	v.SetDefault("quotes.cache_ttl", time.Minute)
	v.SetDefault("quotes.cache_size", 256)
	v.SetDefault("quotes.concurrency", 4)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")

	v.SetDefault("display.max_col_width", 40)
	v.SetDefault("display.color", true)
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"data-dir":   "data_dir",
	"valuations": "valuation_path",
	"reference":  "reference_path",
	"database":   "database_dir",
	"watchlist":  "watchlist.path",
	"backend":    "watchlist.backend",
	"boundary":   "navigation.boundary",
	"live":       "quotes.enabled",
	"log-level":  "logging.level",
	"log-format": "logging.format",
	"log-file":   "logging.file",
}

// Load reads configuration. An empty path searches ./fcff.yaml and
// $HOME/.config/fcff/fcff.yaml; a missing file is not an error unless
// path was given explicitly. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fcff")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "fcff"))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if flags != nil {
		if off, err := flags.GetBool("no-color"); err == nil && off {
			cfg.Display.Color = false
		}
	}
	cfg.resolvePaths()
	return &cfg, nil
}

// resolvePaths makes dataset and watchlist paths relative to DataDir.
func (c *Config) resolvePaths() {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(c.DataDir, p)
	}
	c.ValuationPath = abs(c.ValuationPath)
	c.ReferencePath = abs(c.ReferencePath)
	c.DatabaseDir = abs(c.DatabaseDir)
	c.Watchlist.Path = abs(c.Watchlist.Path)
	c.Logging.File = abs(c.Logging.File)
}
