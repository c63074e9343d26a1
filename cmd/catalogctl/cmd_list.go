package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		search   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered by name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newAppContext()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app.ctrl.Init(ctx)

			if cmd.Flags().Changed("page-size") {
				app.ctrl.SetPageSize(pageSize)
			}
			if search != "" {
				app.ctrl.Search(search)
			}
			// GoToPage runs last: search and page-size changes reset the index.
			if page > 0 {
				app.ctrl.GoToPage(page)
			}

			p := app.ctrl.Page()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tRELEASE\tREVISION")
			for _, item := range p.Items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					item.ID, item.Name, item.Description, item.DateRelease, item.DateRevision)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("Page %d of %d (%d results)\n", p.PageIndex+1, max(p.TotalPages, 1), p.TotalResults)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive name filter")
	cmd.Flags().IntVar(&page, "page", 0, "zero-based page index")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page")
	return cmd
}
