package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"finitefield.org/dashboard-help/internal/help"
)

// Config captures runtime configuration for the help tooling.
type Config struct {
	Help HelpConfig
	Log  LogConfig
}

// HelpConfig selects where help content comes from and how it is resolved.
type HelpConfig struct {
	// ContentDir overrides the bundled content with <dir>/<locale>.yaml files.
	ContentDir        string   `env:"HELP_CONTENT_DIR"`
	DefaultLocale     string   `env:"HELP_DEFAULT_LOCALE" envDefault:"en"`
	Locales           []string `env:"HELP_LOCALES" envDefault:"cn,en" envSeparator:","`
	PlaceholderPolicy string   `env:"HELP_PLACEHOLDER_POLICY" envDefault:"keep"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

type options struct {
	envMap    map[string]string
	systemEnv bool
}

// Option customises Load.
type Option func(*options)

// WithEnvMap overlays the given variables on top of the process environment.
func WithEnvMap(m map[string]string) Option {
	return func(o *options) {
		for k, v := range m {
			o.envMap[k] = v
		}
	}
}

// WithoutSystemEnv ignores the process environment; mostly for tests.
func WithoutSystemEnv() Option {
	return func(o *options) { o.systemEnv = false }
}

// Load parses and validates configuration from the environment.
func Load(opts ...Option) (Config, error) {
	o := options{envMap: map[string]string{}, systemEnv: true}
	for _, opt := range opts {
		opt(&o)
	}
	environ := map[string]string{}
	if o.systemEnv {
		environ = env.ToMap(os.Environ())
	}
	for k, v := range o.envMap {
		environ[k] = v
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Help.ContentDir = strings.TrimSpace(c.Help.ContentDir)
	c.Help.DefaultLocale = strings.ToLower(strings.TrimSpace(c.Help.DefaultLocale))
	locales := make([]string, 0, len(c.Help.Locales))
	seen := map[string]bool{}
	for _, l := range c.Help.Locales {
		l = strings.ToLower(strings.TrimSpace(l))
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		locales = append(locales, l)
	}
	c.Help.Locales = locales
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

func (c Config) validate() error {
	var fields []string
	if len(c.Help.Locales) == 0 {
		fields = append(fields, "HELP_LOCALES")
	}
	if c.Help.DefaultLocale == "" || !contains(c.Help.Locales, c.Help.DefaultLocale) {
		fields = append(fields, "HELP_DEFAULT_LOCALE")
	}
	if _, err := help.ParsePlaceholderPolicy(c.Help.PlaceholderPolicy); err != nil {
		fields = append(fields, "HELP_PLACEHOLDER_POLICY")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		fields = append(fields, "LOG_LEVEL")
	}
	if len(fields) > 0 {
		return &ValidationError{fields: fields}
	}
	return nil
}

// Policy returns the parsed placeholder policy. Load has already validated it.
func (h HelpConfig) Policy() help.PlaceholderPolicy {
	p, _ := help.ParsePlaceholderPolicy(h.PlaceholderPolicy)
	return p
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
