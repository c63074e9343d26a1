package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bpsoft/catalog/internal/catalog"
)

func newAddCmd() *cobra.Command {
	var (
		id          string
		name        string
		description string
		logo        string
		release     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			app.ctrl.OpenAddForm()
			app.ctrl.SetID(ctx, id)
			app.ctrl.SetName(name)
			app.ctrl.SetDescription(description)
			app.ctrl.SetLogo(logo)
			if release != "" {
				d, err := catalog.ParseDate(release)
				if err != nil {
					return err
				}
				// The revision date derives from the release date automatically.
				app.ctrl.SetDateRelease(d)
			}

			if !app.ctrl.Submit(ctx) {
				printFieldErrors(app.ctrl.Errors())
				return fmt.Errorf("product was not added")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "product id (3-10 characters, unique)")
	cmd.Flags().StringVar(&name, "name", "", "product name (5-10 characters)")
	cmd.Flags().StringVar(&description, "description", "", "product description (10-200 characters)")
	cmd.Flags().StringVar(&logo, "logo", "", "logo URL or path")
	cmd.Flags().StringVar(&release, "release", "", "release date (yyyy-mm-dd, defaults to today)")
	return cmd
}

func printFieldErrors(errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Printf("  %s: %s\n", field, errs[field])
	}
}
