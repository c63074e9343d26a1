package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bpsoft/catalog/internal/catalog"
)

func newEditCmd() *cobra.Command {
	var (
		id          string
		name        string
		description string
		logo        string
		release     string
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit an existing product (the id never changes)",
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

			app.ctrl.OpenEditForm(target)
			if cmd.Flags().Changed("name") {
				app.ctrl.SetName(name)
			}
			if cmd.Flags().Changed("description") {
				app.ctrl.SetDescription(description)
			}
			if cmd.Flags().Changed("logo") {
				app.ctrl.SetLogo(logo)
			}
			if cmd.Flags().Changed("release") {
				d, err := catalog.ParseDate(release)
				if err != nil {
					return err
				}
				app.ctrl.SetDateRelease(d)
			}

			if !app.ctrl.Submit(ctx) {
				printFieldErrors(app.ctrl.Errors())
				return fmt.Errorf("product was not updated")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "id of the product to edit")
	cmd.Flags().StringVar(&name, "name", "", "new product name")
	cmd.Flags().StringVar(&description, "description", "", "new product description")
	cmd.Flags().StringVar(&logo, "logo", "", "new logo URL or path")
	cmd.Flags().StringVar(&release, "release", "", "new release date (yyyy-mm-dd)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func findProduct(app *appContext, id string) (catalog.Product, bool) {
	for _, p := range app.st.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}
