package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pdf_assembler/pdf"
	"pdf_assembler/session"
)

func mergeCmd() *cobra.Command {
	var out string
	var dir string
	var moves []string
	var validation string

	cmd := &cobra.Command{
		Use:   "merge <pdf> <pdf>...",
		Short: "Merge all pages of the given PDFs, in order, into one file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := session.New(newEngine(validation))
			defer s.Close()

			if err := ingest(cmd.ErrOrStderr(), s, args); err != nil {
				return err
			}
			for _, m := range moves {
				oldIndex, newIndex, err := parseMove(m)
				if err != nil {
					return err
				}
				if err := s.Move(oldIndex, newIndex); err != nil {
					return fmt.Errorf("move %s: %w", m, err)
				}
			}

			merged, err := s.Merge(out)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), dir, merged)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output filename (default: merged.pdf)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (default: current directory)")
	cmd.Flags().StringArrayVar(&moves, "move", nil, "reorder before merging, as old:new 1-based positions (repeatable)")
	cmd.Flags().StringVar(&validation, "validation", pdf.ValidationRelaxed, "PDF validation mode: relaxed|strict")
	return cmd
}
