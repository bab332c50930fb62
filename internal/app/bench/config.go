// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultLength = 1000000

type Config struct {
	Length      int           `yaml:"length"`
	Repeat      int           `yaml:"repeat"`
	Duration    time.Duration `yaml:"duration"`
	Trace       string        `yaml:"trace,omitempty"`
	Experiments []string      `yaml:"experiments"`
}

func DefaultConfig() Config {
	return Config{
		Length:      DefaultLength,
		Repeat:      DefaultMinRepeat,
		Duration:    DefaultMinDuration,
		Experiments: []string{HandlerExperimentName, ProcessorExperimentName},
	}
}

// LoadConfig reads a bench config file, fields not present in the file keep
// their default value.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("Error decoding yaml: %v", err)
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.Length < 0 {
		return fmt.Errorf("trace length must not be negative: %d", c.Length)
	}
	if c.Repeat < 1 {
		return fmt.Errorf("repeat must be at least 1: %d", c.Repeat)
	}
	if len(c.Experiments) == 0 {
		return fmt.Errorf("no experiments configured")
	}
	for _, name := range c.Experiments {
		if !slices.Contains([]string{HandlerExperimentName, ProcessorExperimentName}, name) {
			return fmt.Errorf("unknown experiment: %s", name)
		}
	}
	return nil
}
