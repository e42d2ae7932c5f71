// Package config loads the small set of optional runtime knobs the core
// does not strictly require to run. Every value has a sensible default;
// viper only lets an operator override them for local runs or test
// harnesses.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds every optional knob.
type Config struct {
	// Debug raises the logger to debug level, surfacing per-request
	// diagnostics on stderr.
	Debug bool
	// ConnectTimeout bounds a single pool-open attempt.
	ConnectTimeout time.Duration
	// ConnectMaxRetries bounds the backoff.Retry loop around pool-open.
	ConnectMaxRetries uint64
	// Secret overrides codec.OrganizerSecret. Production never sets this;
	// it exists so integration tests don't need the compiled-in constant.
	Secret string
}

// Load reads CONFCORE_* environment variables, falling back to the
// defaults spec.md assumes.
func Load() Config {
	v := viper.New()
	v.SetEnvPrefix("CONFCORE")
	v.AutomaticEnv()

	v.SetDefault("debug", false)
	v.SetDefault("connect_timeout", 5*time.Second)
	v.SetDefault("connect_max_retries", uint64(5))
	v.SetDefault("secret", "")

	return Config{
		Debug:             v.GetBool("debug"),
		ConnectTimeout:    v.GetDuration("connect_timeout"),
		ConnectMaxRetries: uint64(v.GetInt64("connect_max_retries")),
		Secret:            v.GetString("secret"),
	}
}
