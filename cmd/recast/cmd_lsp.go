package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/recast/lsp"
	"github.com/dhamidi/recast/rewrite"
)

func newLSPCmd(root *rootOptions) *cobra.Command {
	var patterns []string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Serve search results as diagnostics over stdio. The configured recipes
run on every opened document, together with one find recipe per --find
pattern. Documents are never modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var recipes []rewrite.Recipe
			if len(root.cfg.Recipes) > 0 {
				configured, err := configuredRecipes(root.cfg, "", nil)
				if err != nil {
					return err
				}
				recipes = append(recipes, configured...)
			}
			for _, p := range patterns {
				r := findRecipe(p)
				if err := r.Validate().Err(); err != nil {
					return err
				}
				recipes = append(recipes, r)
			}

			var opts []lsp.Option
			cp, err := root.openClasspath()
			if err != nil {
				return err
			}
			if cp != nil {
				defer cp.Close()
				opts = append(opts, lsp.WithClasses(cp))
			}

			pipeline := rewrite.NewPipeline(rewrite.WithConcurrency(root.cfg.Concurrency))
			server := lsp.NewServer(version, recipes, pipeline, opts...)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringArrayVar(&patterns, "find", nil, "method pattern or element path to report (repeatable)")

	return cmd
}
