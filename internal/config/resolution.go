package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Flags holds command-line values. A nil field was not given on the
// command line and does not override lower-priority sources.
type Flags struct {
	ConfigPath    string
	SuccessSuffix *string
	FailSuffix    *string
	ProtectInput  *bool
	Debug         *bool
	NoColor       *bool
	Quiet         *bool
}

// Resolve builds the configuration from defaults, the config file, the
// environment and flags, in increasing priority. environ maps variable
// names to values, as returned by env.ToMap.
func Resolve(flags Flags, environ map[string]string) (*Config, error) {
	cfg := Default()

	path := flags.ConfigPath
	if path == "" {
		path = findConfigPath()
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if environ["NO_COLOR"] != "" {
		cfg.NoColor = true
	}

	applyFlags(&cfg, flags)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyFlags(cfg *Config, f Flags) {
	if f.SuccessSuffix != nil {
		cfg.SuccessSuffix = *f.SuccessSuffix
	}
	if f.FailSuffix != nil {
		cfg.FailSuffix = *f.FailSuffix
	}
	if f.ProtectInput != nil {
		cfg.ProtectInput = *f.ProtectInput
	}
	if f.Debug != nil {
		cfg.Debug = *f.Debug
	}
	if f.NoColor != nil {
		cfg.NoColor = *f.NoColor
	}
	if f.Quiet != nil {
		cfg.Quiet = *f.Quiet
	}
}

// validate rejects suffixes that would not produce two distinct files.
func validate(cfg *Config) error {
	suffixes := []struct{ name, value string }{
		{"success_suffix", cfg.SuccessSuffix},
		{"fail_suffix", cfg.FailSuffix},
	}
	for _, sfx := range suffixes {
		name, s := sfx.name, sfx.value
		if !strings.HasPrefix(s, ".") || len(s) < 2 {
			return fmt.Errorf("invalid %s %q (must start with '.' and name an extension)", name, s)
		}
		if strings.ContainsAny(s, `/\`) {
			return fmt.Errorf("invalid %s %q (must not contain a path separator)", name, s)
		}
	}
	if cfg.SuccessSuffix == cfg.FailSuffix {
		return fmt.Errorf("success_suffix and fail_suffix are both %q", cfg.SuccessSuffix)
	}
	return nil
}
