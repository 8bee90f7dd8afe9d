package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/mcalc/foundation/core/error"
	mdwlog "github.com/msto63/mcalc/foundation/core/log"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "MCALC_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Engine  EngineConfig  `toml:"engine" yaml:"engine"`
	History HistoryConfig `toml:"history" yaml:"history"`
	Repl    ReplConfig    `toml:"repl" yaml:"repl"`

	// Source is the file the configuration was read from, empty for defaults
	Source string `toml:"-" yaml:"-"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// EngineConfig holds calculator engine settings
type EngineConfig struct {
	MaxInputLength int      `toml:"max_input_length" yaml:"max_input_length"`
	CacheEnabled   bool     `toml:"cache_enabled" yaml:"cache_enabled"`
	CacheSize      int      `toml:"cache_size" yaml:"cache_size"`
	CacheTTL       Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// HistoryConfig holds evaluation history settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
	Limit   int    `toml:"limit" yaml:"limit"`
}

// ReplConfig holds interactive mode settings
type ReplConfig struct {
	Prompt     string `toml:"prompt" yaml:"prompt"`
	ShowTokens bool   `toml:"show_tokens" yaml:"show_tokens"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{
		Engine: EngineConfig{
			CacheEnabled: true,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	// Decode on top of the defaults so absent keys keep their default value
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		_, err = toml.Decode(string(content), cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, cfg)
	default:
		return nil, mdwerror.New(fmt.Sprintf("unsupported config format %q", ext)).
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to parse config").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg.Source = path
	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from the MCALC_CONFIG environment variable
// or the default locations. Without any file the defaults are returned.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// DefaultPaths lists the locations searched by LoadFromEnv
func DefaultPaths() []string {
	paths := []string{
		"./mcalc.toml",
		"./mcalc.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "mcalc", "config.toml"),
			filepath.Join(home, ".config", "mcalc", "config.yaml"),
		)
	}
	return paths
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	invalid := func(key string, value interface{}, reason string) error {
		return mdwerror.New(fmt.Sprintf("invalid %s: %s", key, reason)).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("key", key).
			WithDetail("value", value)
	}

	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, err.Error())
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, err.Error())
	}
	if c.Engine.MaxInputLength < 0 {
		return invalid("engine.max_input_length", c.Engine.MaxInputLength, "must not be negative")
	}
	if c.Engine.CacheSize < 0 {
		return invalid("engine.cache_size", c.Engine.CacheSize, "must not be negative")
	}
	if c.Engine.CacheTTL.Duration < 0 {
		return invalid("engine.cache_ttl", c.Engine.CacheTTL.String(), "must not be negative")
	}
	if c.History.Limit < 0 {
		return invalid("history.limit", c.History.Limit, "must not be negative")
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "mcalc"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Engine
	if c.Engine.MaxInputLength == 0 {
		c.Engine.MaxInputLength = 4096
	}
	if c.Engine.CacheSize == 0 {
		c.Engine.CacheSize = 1024
	}
	if c.Engine.CacheTTL.Duration == 0 {
		c.Engine.CacheTTL = Duration{10 * time.Minute}
	}

	// History
	if c.History.Path == "" {
		c.History.Path = "$HOME/.local/share/mcalc/history.db"
	}
	if c.History.Limit == 0 {
		c.History.Limit = 20
	}

	// REPL
	if c.Repl.Prompt == "" {
		c.Repl.Prompt = "> "
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.History.Path = os.ExpandEnv(c.History.Path)
}
