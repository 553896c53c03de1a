// Package config loads the declarative component description consumed by
// the resolver and the CLI.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/libforge/internal/dimension"
	ferrors "git.home.luguber.info/inful/libforge/internal/errors"
	"git.home.luguber.info/inful/libforge/internal/variant"
)

// Config represents the application configuration
type Config struct {
	Component ComponentConfig `yaml:"component"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ComponentConfig describes the native-library component to resolve.
type ComponentConfig struct {
	BaseName   string   `yaml:"base_name"`
	Group      string   `yaml:"group,omitempty"`
	Version    string   `yaml:"version,omitempty"`
	Linkages   []string `yaml:"linkages"`
	OsFamilies []string `yaml:"os_families"`
}

// LoggingConfig controls the CLI log handler.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug|info|warn|error
	Format string `yaml:"format,omitempty"` // text|json
}

// MetricsConfig enables the Prometheus recorder.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load loads configuration from the specified file. Environment variables
// referenced in the YAML are expanded; .env/.env.local are loaded first when
// present without overriding the process environment.
func Load(configPath string) (*Config, error) {
	// Missing .env files are the normal case, not an error.
	_ = godotenv.Load(".env", ".env.local")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, ferrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// applyDefaults fills in the values a minimal config may omit. Empty linkage
// and OS sets are left empty: the resolver owns that failure mode.
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Component.Version == "" {
		c.Component.Version = "unspecified"
	}
}

// Validate checks the parts of the configuration that must be resolvable to
// typed values. Dimension-set emptiness is deliberately not checked here.
func (c *Config) Validate() error {
	if c.Component.BaseName == "" {
		return ferrors.ConfigRequired("component.base_name")
	}
	for _, l := range c.Component.Linkages {
		if _, err := dimension.ParseLinkage(l); err != nil {
			return ferrors.ValidationFailed("component.linkages", err.Error())
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ferrors.ValidationFailed("logging.level", fmt.Sprintf("unknown level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return ferrors.ValidationFailed("logging.format", fmt.Sprintf("unknown format %q", c.Logging.Format))
	}
	return nil
}

// ComponentSpec converts the configured component into the resolver's input.
// Group and version are handed over as lazy providers reading the live
// config, so later mutation of the config (e.g. a version bump applied after
// loading) is observed at read time.
func (c *Config) ComponentSpec() variant.Component {
	linkages := make([]dimension.Linkage, 0, len(c.Component.Linkages))
	for _, l := range c.Component.Linkages {
		parsed, err := dimension.ParseLinkage(l)
		if err != nil {
			continue // Validate already rejected unknown values
		}
		linkages = append(linkages, parsed)
	}
	osFamilies := make([]dimension.OsFamily, 0, len(c.Component.OsFamilies))
	for _, o := range c.Component.OsFamilies {
		osFamilies = append(osFamilies, dimension.OsFamily(o))
	}
	return variant.Component{
		BaseName:         c.Component.BaseName,
		Linkages:         linkages,
		OperatingSystems: osFamilies,
		Group:            func() string { return c.Component.Group },
		Version:          func() string { return c.Component.Version },
	}
}
