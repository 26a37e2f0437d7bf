package compiler

import (
	"log/slog"
	"runtime"

	"github.com/syssam/modeldesc/graph"
)

// Config holds the compile options.
type Config struct {
	// Base is the model the compiled entities are merged into. It is cloned
	// before use.
	Base *graph.Model
	// DefaultConfiguration is assigned to entities that have no configuration
	// tag. Empty means untagged entities belong to no configuration.
	DefaultConfiguration string
	// PropertyOverride allows a child entity to redeclare a property name
	// declared by one of its ancestors.
	PropertyOverride bool
	// Workers bounds the number of goroutines of the property pass.
	Workers int
	// Logger receives one debug record per compile phase.
	Logger *slog.Logger
}

// Option configures the compiler.
type Option func(*Config) error

// NewConfig returns the default configuration with the options applied.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  slog.New(slog.DiscardHandler),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply applies the options to the configuration.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// WithBase sets the model to merge the compiled entities into.
// The base model is never modified.
func WithBase(base *graph.Model) Option {
	return func(c *Config) error {
		if base == nil {
			return &ConfigError{Option: "Base", Message: "base model cannot be nil"}
		}
		c.Base = base
		return nil
	}
}

// WithDefaultConfiguration assigns untagged entities to the named configuration.
func WithDefaultConfiguration(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return &ConfigError{Option: "DefaultConfiguration", Message: "configuration name cannot be empty"}
		}
		c.DefaultConfiguration = name
		return nil
	}
}

// WithPropertyOverride allows child entities to redeclare inherited
// property names.
func WithPropertyOverride() Option {
	return func(c *Config) error {
		c.PropertyOverride = true
		return nil
	}
}

// WithWorkers sets the number of workers of the property pass.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return &ConfigError{Option: "Workers", Value: n, Message: "must be at least 1"}
		}
		c.Workers = n
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return &ConfigError{Option: "Logger", Message: "logger cannot be nil"}
		}
		c.Logger = l
		return nil
	}
}
