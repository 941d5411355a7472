package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "CHEMFP_CONFIG"
	databaseDSNEnv = "DATABASE_DSN"
	logLevelEnv    = "CHEMFP_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	HTTP        HTTPConfig        `yaml:"http"`
	Fingerprint FingerprintConfig `yaml:"fingerprint"`
	Source      SourceConfig      `yaml:"source"`
	Database    DatabaseConfig    `yaml:"database"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HTTPConfig tunes the outbound structure-fetch client.
type HTTPConfig struct {
	TimeoutSeconds int `yaml:"timeoutSeconds"`
}

// Timeout resolves the configured client timeout.
func (h HTTPConfig) Timeout() time.Duration {
	if h.TimeoutSeconds <= 0 {
		return 20 * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// FingerprintConfig sets the Morgan parameters.
type FingerprintConfig struct {
	Radius int  `yaml:"radius"`
	Bits   uint `yaml:"bits"`
}

// SourceConfig selects the structure-retrieval strategy.
type SourceConfig struct {
	Strategy     string `yaml:"strategy"`
	HTMLSelector string `yaml:"htmlSelector"`
}

// DatabaseConfig describes the optional Postgres sink; an empty DSN disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.HTTP.TimeoutSeconds > 0 {
		base.HTTP = override.HTTP
	}

	if override.Fingerprint.Radius > 0 {
		base.Fingerprint.Radius = override.Fingerprint.Radius
	}
	if override.Fingerprint.Bits > 0 {
		base.Fingerprint.Bits = override.Fingerprint.Bits
	}

	if override.Source.Strategy != "" {
		base.Source.Strategy = override.Source.Strategy
	}
	if override.Source.HTMLSelector != "" {
		base.Source.HTMLSelector = override.Source.HTMLSelector
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:     LoggingConfig{Level: "info"},
		HTTP:        HTTPConfig{TimeoutSeconds: 20},
		Fingerprint: FingerprintConfig{Radius: 2, Bits: 2048},
		Source:      SourceConfig{Strategy: "chembl-json"},
		Database:    DatabaseConfig{DSN: ""},
	}
}
