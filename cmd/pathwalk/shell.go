package main

import (
	"os"

	"github.com/pathwalk/pathwalk/internal/config"
	"github.com/pathwalk/pathwalk/internal/logging"
	"github.com/pathwalk/pathwalk/internal/shell"
	"github.com/spf13/cobra"
)

func newShellCmd(opts *globalOptions) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive path shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				if err := loaded.Validate(); err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("style") {
				cfg.Style = opts.style.mode
			}
			if cfg.Shell.HistoryFile != "" {
				cfg.Shell.HistoryFile = cfg.ResolvePath(cfg.Shell.HistoryFile)
			}

			f, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			log, err := logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			return shell.New(cfg, f, log).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	return cmd
}
