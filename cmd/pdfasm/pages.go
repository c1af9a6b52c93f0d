package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdf_assembler/pdf"
)

func pagesCmd() *cobra.Command {
	var pages string
	var maxPage int

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Show which page numbers a page range selects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			indices := pdf.ParsePageRange(pages, maxPage)
			if len(indices) == 0 {
				return fmt.Errorf("no valid pages in %q for a %d-page document", pages, maxPage)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pdf.FormatPages(indices))
			return nil
		},
	}
	cmd.Flags().StringVarP(&pages, "pages", "p", "", "page range, e.g. 1-3, 5, 8-10")
	cmd.Flags().IntVar(&maxPage, "max", 0, "number of pages in the document")
	return cmd
}
