// Package config provides configuration management for graphstudio.
//
// Config file locations (priority order):
//  1. $GRAPHSTUDIO_CONFIG
//  2. ./graphstudio.yaml
//  3. $XDG_CONFIG_HOME/graphstudio/config.yaml
//  4. ~/.config/graphstudio/config.yaml
//  5. /etc/graphstudio/config.yaml
//
// Editor defaults and the playback step delay may change while the server
// runs; everything else is read once at startup.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults
const (
	DefaultAddr       = ":8080"
	DefaultBackendURL = "http://127.0.0.1:5000"
	DefaultTimeout    = 10 * time.Second
	DefaultWeight     = "1"
	DefaultCapacity   = 1.0
	DefaultStepDelay  = 450 * time.Millisecond
	DefaultDBPath     = "./graphstudio.db"
	DefaultLogLevel   = "info"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Backend.URL == "" {
		c.Backend.URL = DefaultBackendURL
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = Duration(DefaultTimeout)
	}
	if c.Editor.DefaultWeight == "" {
		c.Editor.DefaultWeight = DefaultWeight
	}
	if c.Editor.DefaultCapacity == nil {
		capacity := DefaultCapacity
		c.Editor.DefaultCapacity = &capacity
	}
	if c.Playback.StepDelay == nil {
		c.Playback.StepDelay = DurationOf(DefaultStepDelay)
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDBPath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate rejects values the server cannot start with
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend.url %q is not an absolute URL", c.Backend.URL))
	}
	if c.Backend.Timeout < 0 {
		errs = append(errs, errors.New("backend.timeout must not be negative"))
	}
	if c.Playback.StepDelay != nil && *c.Playback.StepDelay < 0 {
		errs = append(errs, errors.New("playback.step_delay must not be negative"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Capacity returns the default edge capacity
func (c *Config) Capacity() float64 {
	if c.Editor.DefaultCapacity == nil {
		return DefaultCapacity
	}
	return *c.Editor.DefaultCapacity
}

// StepDelay returns the pause between animation steps
func (c *Config) StepDelay() time.Duration {
	if c.Playback.StepDelay == nil {
		return DefaultStepDelay
	}
	return c.Playback.StepDelay.Duration()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Listen: %s, Backend: %s (timeout %s)\n", c.Server.Addr, c.Backend.URL, c.Backend.Timeout.Duration())
	fmt.Fprintf(&b, "Edge defaults: weight=%s capacity=%s, step delay %s\n",
		c.Editor.DefaultWeight, strconv.FormatFloat(c.Capacity(), 'f', -1, 64), c.StepDelay())
	fmt.Fprintf(&b, "Database: %s, log level: %s", c.Database.Path, c.Log.Level)
	return b.String()
}
