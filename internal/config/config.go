package config

import (
	"cmp"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ServiceConfig struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

const (
	_portDefault     = "3000"
	_logLevelDefault = "info"
)

func (c *ServiceConfig) Setup() {
	c.Port = cmp.Or(c.Port, _portDefault)
	c.LogLevel = cmp.Or(c.LogLevel, _logLevelDefault)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = _logLevelDefault
	}
}

// LoadServiceConfig reads the YAML config at filename. A missing file is not
// an error; defaults apply.
func LoadServiceConfig(filename string) (ServiceConfig, error) {
	var cfg ServiceConfig

	input, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Setup()
			return cfg, nil
		}
		return cfg, fmt.Errorf("%w: can't read file", err)
	}

	if err := yaml.Unmarshal(input, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: can't unmarshal config", err)
	}

	cfg.Setup()
	return cfg, nil
}
