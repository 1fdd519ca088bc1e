package faroeste

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration or dump file format.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// ParseFormat accepts "toml", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("unknown format %q (want toml or yaml)", s)
}

// Config holds the settings of the faroeste tools.
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// LogConfig configures NewLogger.
type LogConfig struct {
	Level      string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format     string `toml:"format" yaml:"format"` // text, json, logfmt
	Timestamps bool   `toml:"timestamps" yaml:"timestamps"`
}

// OutputConfig controls what the CLI prints after a successful check.
type OutputConfig struct {
	Color       bool   `toml:"color" yaml:"color"`
	ShowAST     bool   `toml:"show_ast" yaml:"show_ast"`
	ShowScopes  bool   `toml:"show_scopes" yaml:"show_scopes"`
	ScopeFormat string `toml:"scope_format" yaml:"scope_format"`
}

// ConfigFileNames are searched for by FindConfig, in order.
var ConfigFileNames = []string{"faroeste.toml", "faroeste.yaml", "faroeste.yml"}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: OutputConfig{
			Color:       true,
			ScopeFormat: "yaml",
		},
	}
}

// LoadConfig reads path as TOML or YAML, chosen by extension (.toml is the
// default). Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	switch detectFormat(path) {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfig loads the first of ConfigFileNames present in dir. With no
// config file it returns the defaults and an empty path.
func FindConfig(dir string) (*Config, string, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadConfig(path)
			return cfg, path, err
		}
	}
	return DefaultConfig(), "", nil
}

// Validate rejects unknown log levels, log formats and scope formats.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if _, err := ParseFormat(c.Output.ScopeFormat); err != nil {
		return fmt.Errorf("output.scope_format: %w", err)
	}
	return nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}
