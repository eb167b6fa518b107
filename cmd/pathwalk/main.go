package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pathwalk/pathwalk/internal/config"
	"github.com/pathwalk/pathwalk/internal/output"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type globalOptions struct {
	style   styleFlag
	format  string
	noColor bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			for _, msg := range verr.Problems {
				fmt.Fprintln(os.Stderr, msg)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "pathwalk",
		Short:         "Path arithmetic for UNIX and Windows paths",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.Var(&opts.style, "style", "Path style: unix|windows|auto (auto guesses from the first path)")
	flags.StringVar(&opts.format, "format", output.FormatText, "Output format: text|json|yaml")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	for _, cmd := range newOpCmds(opts) {
		root.AddCommand(cmd)
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newShellCmd(opts))
	root.AddCommand(newReportCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func (o *globalOptions) formatter(cmd *cobra.Command) (*output.Formatter, error) {
	f, err := output.NewFormatter(o.format, !o.noColor && !color.NoColor)
	if err != nil {
		return nil, err
	}
	f.Writer = cmd.OutOrStdout()
	f.ErrWriter = cmd.ErrOrStderr()
	return f, nil
}

func newValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a pathwalk configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return errors.New("config path is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "config ok"); err != nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "version=%s commit=%s buildDate=%s\n", version, commit, buildDate)
		},
	}
}
