package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/recast/project"
	"github.com/dhamidi/recast/rewrite"
)

func newPrintCmd(root *rootOptions) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "print [path...]",
		Short: "Parse and print sources",
		Long: `Parse every .java and .xml file below the given paths and print the
trees back to stdout. A parsed tree always prints to exactly the text it
was parsed from.

With --check nothing is printed; files whose printed tree differs from
the file are reported with a diff and the command fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			projects := make([]*project.Project, 0, len(args))
			for _, p := range args {
				proj, err := project.LoadFrom(p)
				if err != nil {
					return err
				}
				projects = append(projects, proj)
			}
			sources, err := project.ReadSources(project.Merge(projects...).Files)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for i, unit := range project.Parse(sources) {
				if unit.Err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", unit.Err)
					continue
				}
				printed := unit.Source.Print()
				if !check {
					fmt.Fprint(out, printed)
					continue
				}
				if printed != sources[i].Text {
					failed++
					printDiff(out, rewrite.Diff(unit.Path, sources[i].Text, printed))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files did not round-trip", failed, len(sources))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "only verify that every file prints back unchanged")

	return cmd
}
