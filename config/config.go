// Package config loads the capgains settings.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this package.
//  2. Values from a capgains.yaml file, in the current directory or in $HOME, or
//     the file given explicitly.
//  3. CAPGAINS_* environment variables, e.g. CAPGAINS_DECIMAL_PLACES=2.
//
// Command line flags use the loaded values as their defaults.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/etnz/capgains"
	"github.com/spf13/viper"
)

// Config holds the full configuration of a run.
type Config struct {
	Report   ReportConfig
	Matching MatchingConfig
	Log      LogConfig
}

// ReportConfig holds the rendering settings.
type ReportConfig struct {
	DecimalPlaces       int    // DECIMAL_PLACES
	SharesDecimalPlaces int    // SHARES_DECIMAL_PLACES
	Currency            string // CURRENCY, an ISO code
}

// MatchingConfig holds the lot matching settings.
type MatchingConfig struct {
	WashSales      bool              // WASH_SALES
	WashSaleWindow int               // WASH_SALE_WINDOW, in days
	NameRule       capgains.NameRule // NAME_RULE: distinct, ignore or same
	Workers        int               // WORKERS
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string // LOG_LEVEL
	Pretty bool   // LOG_PRETTY
}

// AppConfig is the configuration of the process, populated by LoadConfig.
var AppConfig Config

// LoadConfig reads the configuration into AppConfig. When path is empty, a
// missing configuration file is not an error.
func LoadConfig(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load reads the configuration without touching AppConfig.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("DECIMAL_PLACES", 0)
	v.SetDefault("SHARES_DECIMAL_PLACES", 0)
	v.SetDefault("CURRENCY", "")
	v.SetDefault("WASH_SALES", true)
	v.SetDefault("WASH_SALE_WINDOW", capgains.WashSaleWindow)
	v.SetDefault("NAME_RULE", capgains.NameDistinct.String())
	v.SetDefault("WORKERS", runtime.NumCPU())
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_PRETTY", false)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
		}
	} else {
		v.SetConfigName("capgains")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("could not read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("CAPGAINS")
	v.AutomaticEnv()

	rule, err := capgains.ParseNameRule(v.GetString("NAME_RULE"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid NAME_RULE: %w", err)
	}
	cfg := Config{
		Report: ReportConfig{
			DecimalPlaces:       v.GetInt("DECIMAL_PLACES"),
			SharesDecimalPlaces: v.GetInt("SHARES_DECIMAL_PLACES"),
			Currency:            v.GetString("CURRENCY"),
		},
		Matching: MatchingConfig{
			WashSales:      v.GetBool("WASH_SALES"),
			WashSaleWindow: v.GetInt("WASH_SALE_WINDOW"),
			NameRule:       rule,
			Workers:        v.GetInt("WORKERS"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// validate rejects values no run could use.
func (c Config) validate() error {
	var invalid []string
	if c.Report.DecimalPlaces < 0 {
		invalid = append(invalid, "DECIMAL_PLACES")
	}
	if c.Report.SharesDecimalPlaces < 0 {
		invalid = append(invalid, "SHARES_DECIMAL_PLACES")
	}
	if c.Matching.WashSaleWindow < 0 {
		invalid = append(invalid, "WASH_SALE_WINDOW")
	}
	if c.Matching.Workers < 0 {
		invalid = append(invalid, "WORKERS")
	}
	if len(invalid) > 0 {
		return fmt.Errorf("negative configuration values: %v", invalid)
	}
	return nil
}

// Options returns the matching options.
func (m MatchingConfig) Options() capgains.Options {
	return capgains.Options{
		WashSales: m.WashSales,
		Window:    m.WashSaleWindow,
		NameRule:  m.NameRule,
		Workers:   m.Workers,
	}
}
