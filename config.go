package lox

import (
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// Config holds the ambient, non-core options the CLI layers on top of
// the core interpreter: explicit, returned state rather than
// package-level mutables.
type Config struct {
	Debug        bool `yaml:"debug"`
	NoColor      bool `yaml:"no_color"`
	MaxLoopDepth int  `yaml:"max_loop_depth"`
}

// defaultConfigPath is the file LoadConfig reads when $LOX_CONFIG is unset.
const defaultConfigPath = ".loxrc.yaml"

// LoadConfig reads an optional YAML config file (".loxrc.yaml" or
// $LOX_CONFIG), then applies the $LOX_DEBUG environment variable as a
// convenience override. A missing config file is not an error — it
// simply yields zero-value defaults.
func LoadConfig() (Config, error) {
	var cfg Config

	path := os.Getenv("LOX_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	if raw, ok := os.LookupEnv("LOX_DEBUG"); ok {
		cfg.Debug = cast.ToBool(raw)
	}

	return cfg, nil
}
