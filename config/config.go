// Package config loads recast run configurations.
package config

import (
	"errors"
	"fmt"

	"github.com/dhamidi/recast/rewrite"
)

// Config is a run configuration. Field tags use mapstructure for viper and
// yaml for writing the default file.
type Config struct {
	Recipes     []RecipeConfig `mapstructure:"recipes" yaml:"recipes"`
	Concurrency int            `mapstructure:"concurrency" yaml:"concurrency"`
	Indent      string         `mapstructure:"indent" yaml:"indent"`
	Log         LogConfig      `mapstructure:"log" yaml:"log"`
	Maven       MavenConfig    `mapstructure:"maven" yaml:"maven"`
	// Classpath lists jar files and class directories used to resolve
	// library types in Java sources.
	Classpath []string `mapstructure:"classpath" yaml:"classpath,omitempty"`
}

// RecipeConfig names a registered recipe and its options.
type RecipeConfig struct {
	Name    string         `mapstructure:"name" yaml:"name"`
	Options map[string]any `mapstructure:"options" yaml:"options,omitempty"`
}

type LogConfig struct {
	Verbosity int    `mapstructure:"verbosity" yaml:"verbosity"`
	File      string `mapstructure:"file" yaml:"file,omitempty"`
}

type MavenConfig struct {
	// Repository is the base URL recipes resolve version ranges against.
	Repository string `mapstructure:"repository" yaml:"repository,omitempty"`
}

const (
	DefaultConcurrency = 4
	DefaultIndent      = "    "
	DefaultVerbosity   = 0
	maxVerbosity       = 2
)

// Sentinel errors for configuration validation.
var (
	ErrInvalidConcurrency = errors.New("concurrency must be positive")
	ErrInvalidVerbosity   = errors.New("log.verbosity must be between -4 and 2")
	ErrRecipeName         = errors.New("recipe name is required")
	ErrInvalidRecipe      = errors.New("invalid recipe configuration")
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Concurrency: DefaultConcurrency,
		Indent:      DefaultIndent,
		Log:         LogConfig{Verbosity: DefaultVerbosity},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Concurrency)
	}
	if c.Log.Verbosity < -4 || c.Log.Verbosity > maxVerbosity {
		return fmt.Errorf("%w: %d", ErrInvalidVerbosity, c.Log.Verbosity)
	}
	for i, r := range c.Recipes {
		if r.Name == "" {
			return fmt.Errorf("recipes[%d]: %w", i, ErrRecipeName)
		}
	}
	return nil
}

// BuildRecipes instantiates the configured recipes from reg and validates
// them. Every invalid option of every recipe is reported.
func (c *Config) BuildRecipes(reg *rewrite.Registry) ([]rewrite.Recipe, error) {
	recipes := make([]rewrite.Recipe, 0, len(c.Recipes))
	var errs []error
	for i, rc := range c.Recipes {
		r, err := reg.Build(rc.Name, rewrite.Options(rc.Options))
		if err != nil {
			errs = append(errs, fmt.Errorf("recipes[%d]: %w", i, err))
			continue
		}
		if err := r.Validate().Prefixed(rc.Name).Err(); err != nil {
			errs = append(errs, fmt.Errorf("recipes[%d]: %w: %w", i, ErrInvalidRecipe, err))
			continue
		}
		recipes = append(recipes, r)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return recipes, nil
}
