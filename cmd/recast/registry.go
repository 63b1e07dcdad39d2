package main

import (
	"fmt"
	"strings"

	"github.com/dhamidi/recast/config"
	"github.com/dhamidi/recast/java/recipes"
	"github.com/dhamidi/recast/pom"
	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

// newRegistry registers every recipe recast ships with. Pom recipes resolve
// version ranges against the configured repository.
func newRegistry(cfg *config.Config) *rewrite.Registry {
	reg := rewrite.NewRegistry()
	recipes.Register(reg)
	xml.Register(reg)
	pom.Register(reg, pom.NewMetadataFetcher(cfg.Maven.Repository))
	return reg
}

// configuredRecipes builds the recipe named on the command line, or the
// recipes of the configuration file when name is empty.
func configuredRecipes(cfg *config.Config, name string, options []string) ([]rewrite.Recipe, error) {
	run := *cfg
	if name != "" {
		opts, err := parseOptions(options)
		if err != nil {
			return nil, err
		}
		run.Recipes = []config.RecipeConfig{{Name: name, Options: opts}}
	} else if len(options) > 0 {
		return nil, fmt.Errorf("--option requires --recipe")
	}
	if len(run.Recipes) == 0 {
		return nil, fmt.Errorf("no recipes configured; pass --recipe or add recipes to the configuration")
	}

	for i, rc := range run.Recipes {
		if rc.Name == xml.AddToTagName && !rewrite.Options(rc.Options).Has("indent") {
			opts := make(map[string]any, len(rc.Options)+1)
			for k, v := range rc.Options {
				opts[k] = v
			}
			opts["indent"] = cfg.Indent
			run.Recipes[i] = config.RecipeConfig{Name: rc.Name, Options: opts}
		}
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	return run.BuildRecipes(newRegistry(cfg))
}

// parseOptions turns key=value flags into recipe options.
func parseOptions(flags []string) (map[string]any, error) {
	opts := make(map[string]any, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q, expected key=value", f)
		}
		opts[key] = value
	}
	return opts, nil
}
