// Package api is the public surface of the admission limiter: the keyed
// Limiter with its Builder, standalone engine constructors, and a
// configuration-driven constructor for YAML-defined limits.
package api

import (
	"fmt"

	"github.com/rs/zerolog/log"

	apiinternal "learn.admission/api/internal"
)

// NewLimiterFromConfigPath loads the YAML config at configPath and builds a
// string-keyed Limiter from its 'limits' list. Duplicate keys follow the same
// last-registration-wins rule as Builder.Limit, with a warning logged.
func NewLimiterFromConfigPath(configPath string) (*Limiter[string], error) {
	log.Info().Str("config_path", configPath).Msg("API: Initializing admission limiter from config")

	cfgFile, err := apiinternal.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	if len(cfgFile.Limits) == 0 {
		return nil, fmt.Errorf("no limit configurations found in %s", configPath)
	}

	builder := Configure[string]()
	for _, lc := range cfgFile.Limits {
		if lc.Key == "" {
			return nil, fmt.Errorf("limit configuration missing 'key' field")
		}
		if _, dup := builder.limits[lc.Key]; dup {
			log.Warn().Str("limiter_key", lc.Key).Msg("API: Duplicate limit key in config, last registration wins")
		}
		builder.Limit(lc.Key, lc.Capacity, lc.Interval)
	}

	limiter := builder.Build()
	log.Info().Int("limit_count", len(builder.limits)).Msg("API: Admission limiter initialized")
	return limiter, nil
}
