package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Check whether a product id is already taken",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			// A failed check reports true: the id is assumed taken rather
			// than risking a duplicate.
			exists := app.gw.IDExists(cmd.Context(), args[0])
			if exists {
				fmt.Printf("id %q already exists\n", args[0])
			} else {
				fmt.Printf("id %q is available\n", args[0])
			}
			return nil
		},
	}
}
