package main

import (
	"strings"

	"github.com/pathwalk/pathwalk/internal/ops"
	"github.com/spf13/cobra"
)

// Short command names. The full operation name stays available as an alias.
var shortNames = map[string]string{
	"absolute":         "abs",
	"relative":         "rel",
	"intersection":     "intersect",
	"extension":        "ext",
	"change-extension": "change-ext",
}

var summaries = map[string]string{
	"normalize":        "Resolve dot segments and collapse separators",
	"join":             "Join paths and normalize the result",
	"absolute":         "Resolve PATH against BASE",
	"relative":         "Print the path leading from BASE to PATH",
	"intersection":     "Print the leading part both paths share",
	"root":             "Print the root of a path",
	"segments":         "List the segments of a path",
	"basename":         "Print the last segment",
	"dirname":          "Print everything before the last segment",
	"extension":        "Print the extension of the last segment",
	"change-root":      "Replace the root",
	"change-basename":  "Replace the last segment",
	"change-extension": "Replace or remove the extension",
	"guess":            "Guess the style a path was written in",
}

func newOpCmds(opts *globalOptions) []*cobra.Command {
	all := ops.All()
	cmds := make([]*cobra.Command, 0, len(all))
	for i := range all {
		cmds = append(cmds, newOpCmd(opts, &all[i]))
	}
	return cmds
}

func newOpCmd(opts *globalOptions, op *ops.Op) *cobra.Command {
	var capacity int
	var reverse bool
	var match string

	name := op.Name
	aliases := append([]string(nil), op.Aliases...)
	if short, ok := shortNames[op.Name]; ok {
		name = short
		aliases = append([]string{op.Name}, without(aliases, short)...)
	}

	use := name
	if _, args, ok := strings.Cut(op.Usage, " "); ok {
		use += " " + args
	}

	cmd := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   summaries[op.Name],
		Args:    opArgs(op),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := ops.Input{Paths: args, Capacity: capacity, Reverse: reverse, Match: match}
			if op.Value {
				in.Paths, in.Value = args[:len(args)-1], args[len(args)-1]
			}

			res, err := ops.Run(op.Name, opts.style.Resolve(in.Paths...), in)
			if err != nil {
				return err
			}

			f, err := opts.formatter(cmd)
			if err != nil {
				return err
			}
			return f.PrintResult(res)
		},
	}

	switch {
	case op.Name == "segments":
		cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "List segments from last to first")
		cmd.Flags().StringVarP(&match, "match", "m", "", "Only list segments matching a glob pattern")
	case op.Writes():
		cmd.Flags().IntVar(&capacity, "capacity", 0, "Write into a buffer of this many bytes and report truncation")
	}

	return cmd
}

func opArgs(op *ops.Op) cobra.PositionalArgs {
	extra := 0
	if op.Value {
		extra = 1
	}
	if op.MaxPaths < 0 {
		return cobra.MinimumNArgs(op.MinPaths + extra)
	}
	return cobra.RangeArgs(op.MinPaths+extra, op.MaxPaths+extra)
}

func without(list []string, drop string) []string {
	out := list[:0:0]
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}
