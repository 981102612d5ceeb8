// Package config loads the fuelgauge host configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fuelgauge/internal/max17048"
)

type Config struct {
	Gauge  GaugeConfig  `yaml:"gauge"`
	Server ServerConfig `yaml:"server"`
}

type GaugeConfig struct {
	// Bus is the periph I2C bus name; empty picks the first bus found.
	Bus               string `yaml:"bus"`
	Address           uint16 `yaml:"address"`
	EnableSleepOnInit bool   `yaml:"enable_sleep_on_init"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

func Default() *Config {
	return &Config{
		Gauge:  GaugeConfig{Address: max17048.Addr},
		Server: ServerConfig{Port: 3000},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration correctness. It does not mutate cfg.
func (c *Config) Validate() error {
	if c.Gauge.Address == 0 || c.Gauge.Address > 0x7F {
		return fmt.Errorf("gauge.address 0x%X is not a 7-bit I2C address", c.Gauge.Address)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("server.port must be in 1..65535")
	}
	return nil
}

// Device returns the immutable gauge configuration.
func (c *Config) Device() max17048.Config {
	return max17048.Config{EnableSleepOnInit: c.Gauge.EnableSleepOnInit}
}
