// Package config loads service settings from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"property_valuation/pkg/core/agent"
	"property_valuation/pkg/core/calc"
	"property_valuation/pkg/core/comparables"
)

// Config is the full service configuration.
type Config struct {
	HTTPAddr       string `yaml:"http_addr"`
	DatabaseURL    string `yaml:"database_url"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	ExportWorkers  int    `yaml:"export_workers"`
	ResultCacheDir string `yaml:"result_cache_dir"`
	// PromptsDir holds prompt overrides; empty keeps the built-ins.
	PromptsDir string `yaml:"prompts_dir"`

	// RentalBasis is "as_reported" or "market_rate".
	RentalBasis string               `yaml:"rental_basis"`
	Comparables comparables.Criteria `yaml:"comparables"`
	Agents      agent.Config         `yaml:"llm"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		HTTPAddr:       ":8080",
		LogLevel:       "info",
		LogFormat:      "json",
		ExportWorkers:  4,
		ResultCacheDir: ".cache/valuations",
		RentalBasis:    "as_reported",
		Comparables: comparables.Criteria{
			MaxAgeMonths:       24,
			ExtentTolerancePct: 50,
			Limit:              5,
		},
		Agents: agent.Config{ActiveProvider: "disabled"},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	if _, err := cfg.Basis(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"HTTP_ADDR":        &c.HTTPAddr,
		"DATABASE_URL":     &c.DatabaseURL,
		"LOG_LEVEL":        &c.LogLevel,
		"LOG_FORMAT":       &c.LogFormat,
		"RESULT_CACHE_DIR": &c.ResultCacheDir,
		"PROMPTS_DIR":      &c.PromptsDir,
		"RENTAL_BASIS":     &c.RentalBasis,
		"LLM_PROVIDER":     &c.Agents.ActiveProvider,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("EXPORT_WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("EXPORT_WORKERS: invalid value %q", v)
		}
		c.ExportWorkers = n
	}
	return nil
}

// Basis converts RentalBasis to the calculator enum.
func (c Config) Basis() (calc.RentalBasis, error) {
	basis, err := calc.ParseRentalBasis(c.RentalBasis)
	if err != nil {
		return basis, fmt.Errorf("rental_basis: %w", err)
	}
	return basis, nil
}
