package jsval

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads a configuration file. Files ending in .toml are TOML;
// anything else is YAML.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("jsval: cannot read config %s: %w", path, err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = "toml"
	}
	cfg, err := ParseConfig(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("jsval: config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes configuration data in the given format, "yaml" or
// "toml", and checks its limits.
func ParseConfig(data []byte, format string) (Config, error) {
	var cfg Config
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse error: %w", err)
		}
	case "toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("parse error: %w", err)
		}
		if und := md.Undecoded(); len(und) != 0 {
			return Config{}, fmt.Errorf("unknown config key %s", und[0])
		}
	default:
		return Config{}, fmt.Errorf("unknown config format %q", format)
	}
	switch {
	case cfg.MaxStringLength < 0:
		return Config{}, fmt.Errorf("maximum string length %d is negative", cfg.MaxStringLength)
	case cfg.MaxStringLength > DefaultMaxStringLength:
		return Config{}, fmt.Errorf("maximum string length %d exceeds %d", cfg.MaxStringLength, DefaultMaxStringLength)
	case cfg.MemoryLimit < 0:
		return Config{}, fmt.Errorf("memory limit %d is negative", cfg.MemoryLimit)
	}
	return cfg, nil
}

// ConfigureLogging applies the configuration's logging options to the
// process-wide logging backend.
func ConfigureLogging(cfg Config) {
	var path *string
	if cfg.LogFile != "" {
		path = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, path)
}
