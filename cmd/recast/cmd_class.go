package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/recast/format"
	"github.com/dhamidi/recast/java"
)

func newClassCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "class <name>...",
		Short: "Describe classes on the classpath as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cp, err := root.openClasspath()
			if err != nil {
				return err
			}
			if cp == nil {
				return errors.New("no classpath configured; pass --classpath or set classpath in the configuration")
			}
			defer cp.Close()

			table := java.NewTableFrom(cp)
			classes := make([]*java.Class, 0, len(args))
			for _, name := range args {
				c := table.Lookup(name)
				if !c.Binary {
					return fmt.Errorf("class %s not found on the classpath", name)
				}
				classes = append(classes, c)
			}
			table.Seal()
			return format.NewClassJSONEncoder(cmd.OutOrStdout()).Encode(classes...)
		},
	}
}
