package config

import (
	"fmt"
	"time"
)

// LimitConfig holds the rate policy for a single admission key.
type LimitConfig struct {
	Key      string
	Capacity int
	Interval time.Duration
}

// UnmarshalYAML parses the interval from a duration string ("1s", "250ms").
func (c *LimitConfig) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		Key      string `yaml:"key"`
		Capacity int    `yaml:"capacity"`
		Interval string `yaml:"interval"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}

	var interval time.Duration
	if raw.Interval != "" {
		var err error
		interval, err = time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("limit '%s': invalid interval %q: %w", raw.Key, raw.Interval, err)
		}
	}

	c.Key = raw.Key
	c.Capacity = raw.Capacity
	c.Interval = interval
	return nil
}
