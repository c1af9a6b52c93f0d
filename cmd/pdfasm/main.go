package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pdfasm",
		Short:         "Merge PDF files or split pages out of one",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(mergeCmd())
	root.AddCommand(splitCmd())
	root.AddCommand(pagesCmd())
	return root
}
