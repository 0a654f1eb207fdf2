package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"learn.admission/config"
)

// ConfigFile represents the top-level structure of the configuration file.
type ConfigFile struct {
	Limits []config.LimitConfig `yaml:"limits"`
}

// LoadConfig reads and unmarshals the YAML config. It expects a list of
// per-key limits under the 'limits' key.
func LoadConfig(path string) (*ConfigFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var cfg ConfigFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config file %s: %w", path, err)
	}
	return &cfg, nil
}
