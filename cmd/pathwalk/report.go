package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/pathwalk/pathwalk/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var inputPath string
	var since string
	var op string
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize an operation log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return errors.New("input path is required")
			}

			reader := report.Reader{Op: op}
			if since != "" {
				dur, err := time.ParseDuration(since)
				if err != nil {
					return fmt.Errorf("invalid since duration: %w", err)
				}
				reader.Since = time.Now().Add(-dur)
			}

			entries, err := reader.Read(inputPath)
			if err != nil {
				return err
			}

			data, err := report.Render(report.Summarize(entries), format)
			if err != nil {
				return err
			}
			return report.WriteOutput(cmd.OutOrStdout(), outPath, data)
		},
	}

	cmd.Flags().StringVar(&inputPath, "in", "", "Path to operation log JSONL")
	cmd.Flags().StringVar(&since, "since", "", "Only include entries newer than this duration (e.g. 10m)")
	cmd.Flags().StringVar(&op, "op", "", "Only include one operation")
	// local --format shadows the persistent one: reports also render markdown
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|md|json|yaml")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file path (default stdout)")

	return cmd
}
