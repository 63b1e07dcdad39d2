package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/recast/java/recipes"
	"github.com/dhamidi/recast/rewrite"
	"github.com/dhamidi/recast/xml"
)

func newFindCmd(root *rootOptions) *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "find <pattern> [path...]",
		Short: "Find method calls or XML elements",
		Long: `Find method calls matching a method pattern such as
"java.util.List add(..)", or XML elements matching a path such as
"/project/dependencies/dependency". Patterns starting with "/" are
element paths.

Each match is printed as path:line:column. Use --source to print the
matching files with search markers instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe := findRecipe(args[0])
			if err := recipe.Validate().Err(); err != nil {
				return err
			}
			units, err := root.loadUnits(args[1:])
			if err != nil {
				return err
			}

			pipeline := rewrite.NewPipeline(rewrite.WithConcurrency(root.cfg.Concurrency))
			results, err := pipeline.RunAll(cmd.Context(), units, recipe)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			matches := 0
			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", res.Err)
					continue
				}
				if len(res.Found()) == 0 {
					continue
				}
				if showSource {
					marked := res.Fixed.Print(rewrite.PrintMarkers())
					fmt.Fprintf(out, "%s\n%s", res.Path, marked)
					if !strings.HasSuffix(marked, "\n") {
						fmt.Fprintln(out)
					}
				}
				for _, loc := range rewrite.Locate(res.Fixed) {
					matches++
					if !showSource {
						fmt.Fprintf(out, "%s:%d:%d\n", res.Path, loc.Line, loc.Column)
					}
				}
			}
			log.Infof("%d matches in %d files", matches, len(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "print matching files with search markers")

	return cmd
}

func findRecipe(pattern string) rewrite.Recipe {
	if strings.HasPrefix(pattern, "/") {
		return xml.NewFindTags(pattern)
	}
	return recipes.NewFindMethods(pattern)
}
