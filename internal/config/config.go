package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/ccsplit/pkg/compdb"
)

// FileName is the config file looked up in the working directory and the
// user config directory.
const FileName = ".ccsplit.yaml"

// Config is the resolved ccsplit configuration.
type Config struct {
	SuccessSuffix string `yaml:"success_suffix" env:"CCSPLIT_SUCCESS_SUFFIX"`
	FailSuffix    string `yaml:"fail_suffix"    env:"CCSPLIT_FAIL_SUFFIX"`
	ProtectInput  bool   `yaml:"protect_input"  env:"CCSPLIT_PROTECT_INPUT"`
	Debug         bool   `yaml:"debug"          env:"CCSPLIT_DEBUG"`
	NoColor       bool   `yaml:"no_color"       env:"CCSPLIT_NO_COLOR"`
	Quiet         bool   `yaml:"quiet"          env:"CCSPLIT_QUIET"`

	// Source is the config file that was applied, empty if none.
	Source string `yaml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SuccessSuffix: compdb.DefaultSuccessSuffix,
		FailSuffix:    compdb.DefaultFailSuffix,
	}
}

// Naming returns the output naming rules the config describes.
func (c Config) Naming() compdb.Naming {
	return compdb.Naming{
		SuccessSuffix: c.SuccessSuffix,
		FailSuffix:    c.FailSuffix,
		ProtectInput:  c.ProtectInput,
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys missing from the
// file keep their current value; unknown keys are an error.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Source = path
	return nil
}

// findConfigPath returns the first config file that exists: the working
// directory first, then the user config directory. Empty if none.
func findConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	if err != nil || configHome == "" || configHome == "/" {
		return ""
	}
	xdgPath := filepath.Join(configHome, "ccsplit", FileName)
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}
