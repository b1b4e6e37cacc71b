package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cxxhdr",
		Short: "A C++ header declaration summarizer",
	}

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newOutlineCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
