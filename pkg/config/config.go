package config

import (
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Severities is the gate set: findings at these severities must be
	// remediated or covered by a valid exception.
	Severities []string `yaml:"severities"`
	Output     string   `yaml:"output"`
}

func Default() *Config {
	return &Config{
		Severities: []string{"high", "critical"},
		Output:     "text",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MergeFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	if flags.Changed("output") {
		if v, err := flags.GetString("output"); err == nil && v != "" {
			cfg.Output = v
		}
	}
	return cfg
}
