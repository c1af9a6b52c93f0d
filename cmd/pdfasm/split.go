package main

import (
	"github.com/spf13/cobra"

	"pdf_assembler/pdf"
	"pdf_assembler/session"
)

func splitCmd() *cobra.Command {
	var out string
	var dir string
	var pages string
	var validation string

	cmd := &cobra.Command{
		Use:   "split <pdf>",
		Short: "Write the selected pages of a PDF to a new file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(newEngine(validation))
			defer s.Close()

			if err := ingest(cmd.ErrOrStderr(), s, args); err != nil {
				return err
			}

			split, err := s.Split(pages, out)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), dir, split)
		},
	}
	cmd.Flags().StringVarP(&pages, "pages", "p", "", "page range, e.g. 1-3, 5, 8-10")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output filename (default: split_<input>)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (default: current directory)")
	cmd.Flags().StringVar(&validation, "validation", pdf.ValidationRelaxed, "PDF validation mode: relaxed|strict")
	return cmd
}
