package main

import (
	"fmt"
	"os"

	"github.com/cxxtool/cxxhdr"
	"github.com/cxxtool/cxxhdr/format"
	"github.com/spf13/cobra"
)

func newOutlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <file>",
		Short: "Print a readable outline of a header's declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header, err := cxxhdr.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse header: %w", err)
			}
			if err := format.NewOutlineEncoder(os.Stdout).Encode(header); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}
}
