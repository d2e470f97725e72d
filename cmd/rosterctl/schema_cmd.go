package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dosada05/cup-roster/db"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), db.Schema)
			return err
		},
	}
}
