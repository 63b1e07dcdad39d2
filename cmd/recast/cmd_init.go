package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/recast/config"
	"github.com/dhamidi/recast/xml"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter run configuration",
		Long: `Write a run configuration with the default settings and an example
recipe to recast.yaml, or to the given file.`,
		Args: cobra.MaximumNArgs(1),
		// The configuration being written may not exist or be valid yet.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "recast.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			cfg := config.Default()
			cfg.Recipes = []config.RecipeConfig{{
				Name:    xml.FindTagsName,
				Options: map[string]any{"xPath": "/project/dependencies/dependency"},
			}}
			if err := config.Write(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}
