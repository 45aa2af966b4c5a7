package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides: BACKPLAN_PLANNING__WARNING_THRESHOLD
// sets planning.warning_threshold.
const EnvPrefix = "BACKPLAN_"

// EnvConfigPath names the variable holding the config file path when no
// explicit path is given.
const EnvConfigPath = "BACKPLAN_CONFIG"

type Config struct {
	DB       DBConfig       `koanf:"db"`
	Log      LogConfig      `koanf:"log"`
	Planning PlanningConfig `koanf:"planning"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

type DBConfig struct {
	Path string `koanf:"path"`
}

// MetricsConfig controls prometheus export. An empty Textfile disables it.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// Load reads configuration from path (or $BACKPLAN_CONFIG when path is
// empty), applies BACKPLAN_ environment overrides, fills defaults and
// validates the result. A missing path is not an error: defaults and env
// still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// envKey maps BACKPLAN_LOG__LEVEL to log.level. Variables without a section
// separator (BACKPLAN_CONFIG) map to keys no section reads.
func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// SetDefaults fills every unset field.
func (c *Config) SetDefaults() {
	if c.DB.Path == "" {
		c.DB.Path = defaultDBPath()
	}
	c.Log.SetDefaults()
	c.Planning.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Planning.Validate(); err != nil {
		return fmt.Errorf("planning: %w", err)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".backplan", "backplan.db")
	}
	return filepath.Join(home, ".backplan", "backplan.db")
}
