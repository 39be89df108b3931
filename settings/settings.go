// Package settings holds everything the host can be configured with.
// Defaults come first, then an optional yaml file, then command line flags.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/navionguy/koneko/localfiles"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the whole configuration
type Config struct {
	Listen   string        `yaml:"listen"`    // http address, empty for no server
	Drive    string        `yaml:"drive"`     // directory holding program files
	Encoding string        `yaml:"encoding"`  // text encoding of program files
	Budget   time.Duration `yaml:"budget"`    // longest a batch may run without a refresh
	Remote   string        `yaml:"remote"`    // use another server's drive instead
	LogLevel string        `yaml:"log_level"` // zerolog level name
	Prompt   string        `yaml:"prompt"`
	History  string        `yaml:"history"` // line editor history file
	Dump     bool          `yaml:"dump"`    // dump each immediate line's tree
}

// Default is the configuration with no file and no flags
func Default() Config {
	return Config{
		Drive:    ".",
		Encoding: "utf-8",
		Budget:   time.Second,
		LogLevel: "info",
		Prompt:   "basic: ",
	}
}

// Load reads path over the defaults, an empty file changes nothing
func Load(path string) (Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("settings: open %s: %w", path, err)
	}
	defer file.Close()

	if err := cfg.Decode(file); err != nil {
		return cfg, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads yaml over cfg, unknown keys are an error
func (cfg *Config) Decode(rdr io.Reader) error {
	decoder := yaml.NewDecoder(rdr)
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Write saves cfg as yaml
func (cfg Config) Write(w io.Writer) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("settings: encoder close: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Validate reports every problem at once
func (cfg Config) Validate() error {
	var errs []error

	if cfg.Budget <= 0 {
		errs = append(errs, fmt.Errorf("budget must be positive, got %s", cfg.Budget))
	}
	if _, err := localfiles.Encoding(cfg.Encoding); err != nil {
		errs = append(errs, err)
	}
	if _, err := cfg.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(cfg.Remote) > 0 {
		u, err := url.Parse(cfg.Remote)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || len(u.Host) == 0 {
			errs = append(errs, fmt.Errorf("remote must be an http url, got %q", cfg.Remote))
		}
	}

	return errors.Join(errs...)
}

// Level is the log level to run at
func (cfg Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(cfg.LogLevel)
}
