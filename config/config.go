// Package config loads application configuration from yaml or json files
// with environment variable overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gridwatt/stationuptime/core/metrics"
	"github.com/gridwatt/stationuptime/core/reportfile"
)

type Config struct {
	Parser  ParserConfig   `json:"parser"`
	Logging LoggingConfig  `json:"logging"`
	Metrics metrics.Config `json:"metrics"`
	Server  ServerConfig   `json:"server"`
}

// ParserConfig controls input-file validation behavior.
type ParserConfig struct {
	// ConflictPolicy selects how a charger declared under two stations is
	// handled: "reject" or "last-wins".
	ConflictPolicy string `json:"conflict_policy"`
}

// SetDefaults applies sane defaults.
func (c *ParserConfig) SetDefaults() {
	if c.ConflictPolicy == "" {
		c.ConflictPolicy = string(reportfile.ConflictReject)
	}
}

// Validate checks mandatory fields.
func (c ParserConfig) Validate() error {
	if !reportfile.ConflictPolicy(c.ConflictPolicy).Valid() {
		return fmt.Errorf("unknown conflict policy %q", c.ConflictPolicy)
	}
	return nil
}

// LoggingConfig defines log verbosity.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown log level %q", c.Level)
}

// ServerConfig defines settings for the serve mode HTTP API.
type ServerConfig struct {
	Port int `json:"port"`
	// AuthToken, when set, is required as a bearer token on API requests.
	AuthToken string `json:"auth_token"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = 8880
	}
}

// Default returns a configuration with all defaults applied, used when no
// config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	c.Parser.SetDefaults()
	c.Logging.SetDefaults()
	c.Metrics.SetDefaults()
	c.Server.SetDefaults()
}

// Load reads the configuration at path. The format is chosen by file
// extension. Environment variables prefixed with SU_ override file values,
// with __ separating nesting levels (SU_SERVER__PORT -> server.port).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("SU_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "su_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Parser.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
