package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dobios/circt/internal/passes"
)

var passesCmd = &cobra.Command{
	Use:   "passes",
	Short: "List the registered passes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range passes.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
