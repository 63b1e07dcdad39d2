package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dhamidi/recast/rewrite"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	var (
		recipeName  string
		options     []string
		write       bool
		metricsPath string
	)

	cmd := &cobra.Command{
		Use:   "run [path...]",
		Short: "Apply recipes to Java sources and poms",
		Long: `Apply recipes to every .java and .xml file below the given paths
(default: the current directory).

Recipes come from the configuration file, or from --recipe with one
--option key=value per recipe option. Without -w the changes are shown
as a diff and nothing is written.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := configuredRecipes(root.cfg, recipeName, options)
			if err != nil {
				return err
			}
			units, err := root.loadUnits(args)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			metrics, err := rewrite.NewMetrics(reg)
			if err != nil {
				return err
			}
			pipeline := rewrite.NewPipeline(
				rewrite.WithConcurrency(root.cfg.Concurrency),
				rewrite.WithMetrics(metrics),
			)
			results, err := pipeline.RunAll(cmd.Context(), units, recipes...)
			if err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			failed := 0
			for _, res := range results {
				for _, w := range res.Warnings {
					color.New(color.FgYellow).Fprintf(errOut, "warning: %s\n", w)
				}
				if res.Err != nil {
					failed++
					color.New(color.FgRed).Fprintf(errOut, "%s\n", res.Err)
					continue
				}
				if !res.Changed() {
					continue
				}
				if write {
					if err := writeResult(res); err != nil {
						return err
					}
					fmt.Fprintf(out, "fixed %s\n", res.Path)
				} else {
					printDiff(out, res.Diff())
				}
			}
			fmt.Fprintln(out, summaryTable(results))

			if metricsPath != "" {
				if err := prometheus.WriteToTextfile(metricsPath, reg); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&recipeName, "recipe", "r", "", "run this recipe instead of the configured ones")
	cmd.Flags().StringArrayVarP(&options, "option", "o", nil, "recipe option as key=value (repeatable)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write changes back to the files")
	cmd.Flags().StringVar(&metricsPath, "metrics", "", "write recipe metrics in Prometheus text format to this file")

	return cmd
}

func writeResult(res *rewrite.Result) error {
	info, err := os.Stat(res.Path)
	if err != nil {
		return err
	}
	return os.WriteFile(res.Path, []byte(res.Fixed.Print()), info.Mode().Perm())
}

func printDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			color.New(color.Bold).Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			color.New(color.FgCyan).Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			color.New(color.FgGreen).Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			color.New(color.FgRed).Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}

// summaryTable counts recipe outcomes over all results.
func summaryTable(results []*rewrite.Result) string {
	type counts map[rewrite.Status]int
	var order []string
	byRecipe := map[string]counts{}
	for _, res := range results {
		for _, o := range res.Outcomes {
			c, ok := byRecipe[o.Recipe]
			if !ok {
				c = counts{}
				byRecipe[o.Recipe] = c
				order = append(order, o.Recipe)
			}
			c[o.Status]++
		}
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Recipe", "Applied", "Unchanged", "Invalid", "Failed"})
	for _, name := range order {
		c := byRecipe[name]
		tbl.AppendRow(table.Row{name,
			c[rewrite.StatusApplied], c[rewrite.StatusUnchanged],
			c[rewrite.StatusInvalid], c[rewrite.StatusFailed]})
	}
	tbl.AppendFooter(table.Row{fmt.Sprintf("%d files", len(results))})
	return tbl.Render()
}
