package main

import (
	"fmt"

	"github.com/cxxtool/cxxhdr/config"
	"github.com/cxxtool/cxxhdr/lsp"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newLSPCmd() *cobra.Command {
	var configPath string
	var verbosity int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			server := lsp.NewServer(cfg, "0.1.0")
			return server.RunStdio()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "cxxhdr.toml", "path to the configuration file")
	cmd.Flags().IntVar(&verbosity, "verbose", 0, "log verbosity (0-2)")

	return cmd
}
