package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	var (
		id  string
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app.ctrl.Init(ctx)

			target, ok := findProduct(app, id)
			if !ok {
				return fmt.Errorf("no product with id %q", id)
			}

			app.ctrl.RequestDelete(target)
			if !yes {
				app.ctrl.CancelDelete()
				fmt.Printf("Would delete product %q (%s); re-run with --yes to confirm\n", target.Name, target.ID)
				return nil
			}
			if !app.ctrl.ConfirmDelete(ctx) {
				return fmt.Errorf("product was not deleted")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "id of the product to delete")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
