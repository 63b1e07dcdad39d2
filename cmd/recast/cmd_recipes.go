package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRecipesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the available recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := newRegistry(root.cfg)

			tbl := table.NewWriter()
			tbl.SetStyle(table.StyleLight)
			tbl.AppendHeader(table.Row{"Name", "Description"})
			names := reg.Names()
			for _, name := range names {
				tbl.AppendRow(table.Row{name, reg.Describe(name)})
			}
			tbl.AppendFooter(table.Row{fmt.Sprintf("%d recipes", len(names))})
			fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())
			return nil
		},
	}
}
