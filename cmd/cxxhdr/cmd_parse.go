package main

import (
	"fmt"
	"os"

	"github.com/cxxtool/cxxhdr"
	"github.com/cxxtool/cxxhdr/config"
	"github.com/cxxtool/cxxhdr/format"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var configPath string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a C++ header and dump its declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			header, err := cxxhdr.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("parse header: %w", err)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				indent := cfg.Output.Indent
				if cfg.Output.Compact {
					indent = ""
				}
				encoder = format.NewJSONEncoder(os.Stdout).WithIndent(indent)
			case "lines":
				encoder = format.NewLineEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(header); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "cxxhdr.toml", "path to the configuration file")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, lines)")

	return cmd
}
