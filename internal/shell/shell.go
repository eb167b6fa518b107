// Package shell is an interactive prompt for trying path operations.
package shell

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pathwalk/pathwalk"
	"github.com/pathwalk/pathwalk/internal/config"
	"github.com/pathwalk/pathwalk/internal/ops"
	"github.com/pathwalk/pathwalk/internal/output"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var errExit = errors.New("exit")

// Shell evaluates one command line at a time. Relative inputs to "abs" and
// "rel" are resolved against the working path set with "cd".
type Shell struct {
	Style     config.StyleMode
	Cwd       string
	Formatter *output.Formatter
	Config    config.ShellConfig
	Log       zerolog.Logger
}

func New(cfg *config.Config, formatter *output.Formatter, log zerolog.Logger) *Shell {
	return &Shell{
		Style:     cfg.Style,
		Formatter: formatter,
		Config:    cfg.Shell,
		Log:       log,
	}
}

// Run starts the interactive loop.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     s.Config.HistoryFile,
		HistoryLimit:    s.Config.HistoryLimit,
		AutoComplete:    NewCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return errors.Wrap(err, "readline init")
	}
	defer rl.Close()

	for {
		if ctx.Err() != nil {
			return nil
		}
		rl.SetPrompt(s.prompt())

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		err = s.Eval(line)
		if errors.Is(err, errExit) {
			return nil
		}
		if err != nil {
			s.Log.Debug().Err(err).Str("line", line).Msg("command failed")
			s.Formatter.Errorf("%s\n", err)
		}
	}
}

// Eval runs one command line.
func (s *Shell) Eval(line string) error {
	args, err := Split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	name, args := strings.ToLower(args[0]), args[1:]
	switch name {
	case "exit", "quit":
		return errExit
	case "help":
		s.help()
		return nil
	case "style":
		return s.setStyle(args)
	case "cd":
		return s.cd(args)
	case "pwd":
		if s.Cwd == "" {
			s.Formatter.Printf("(none)\n")
		} else {
			s.Formatter.Printf("%s\n", s.Cwd)
		}
		return nil
	case "match":
		if len(args) != 2 {
			return errors.New("usage: match GLOB PATH")
		}
		return s.run("segments", ops.Input{Paths: args[1:], Match: args[0]})
	}

	op, ok := ops.Lookup(name)
	if !ok {
		return errors.Errorf("unknown command %q, try help", name)
	}

	in := ops.Input{Paths: args}
	if op.Value {
		if len(args) < 2 {
			return errors.Errorf("usage: %s", op.Usage)
		}
		in.Paths, in.Value = args[:len(args)-1], args[len(args)-1]
	}
	if s.Cwd != "" && len(in.Paths) == 1 && (op.Name == "absolute" || op.Name == "relative") {
		in.Paths = []string{s.Cwd, in.Paths[0]}
	}
	return s.run(op.Name, in)
}

func (s *Shell) run(name string, in ops.Input) error {
	res, err := ops.Run(name, s.Style.Resolve(in.Paths...), in)
	if err != nil {
		return err
	}
	return s.Formatter.PrintResult(res)
}

func (s *Shell) setStyle(args []string) error {
	if len(args) == 0 {
		s.Formatter.Printf("%s\n", s.Style)
		return nil
	}
	mode := config.StyleMode(strings.ToLower(args[0]))
	if !mode.Valid() {
		return errors.Errorf("unknown style %q", args[0])
	}
	s.Style = mode
	return nil
}

// cd moves the working path. Relative targets resolve against the current
// one; the working path is always kept absolute and normalized.
func (s *Shell) cd(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: cd PATH")
	}
	style := s.Style.Resolve(args[0], s.Cwd)
	switch {
	case style.IsAbsolute(args[0]):
		s.Cwd = style.Normalize(args[0])
	case s.Cwd != "":
		s.Cwd = style.Absolute(s.Cwd, args[0])
	default:
		return errors.Errorf("%q is relative and no working path is set", args[0])
	}
	return nil
}

func (s *Shell) help() {
	s.Formatter.Printf("commands:\n")
	for _, op := range ops.All() {
		s.Formatter.Printf("  %s\n", op.Usage)
	}
	s.Formatter.Printf("  match GLOB PATH\n  style [unix|windows|auto]\n  cd PATH\n  pwd\n  exit\n")
}

func (s *Shell) prompt() string {
	base := s.Config.Prompt
	if base == "" {
		base = "pathwalk> "
	}
	if s.Cwd == "" {
		return base
	}
	short := Shorten(s.Style.Resolve(s.Cwd), s.Cwd, 2)
	return fmt.Sprintf("%s %s", short, base)
}

// Shorten keeps the root and the last keep segments of p, replacing the
// rest with "...".
func Shorten(style pathwalk.Style, p string, keep int) string {
	count := 0
	begin := len(p)
	for seg := range pathwalk.Backward(style, p) {
		if count == keep {
			root, _ := pathwalk.Root(style, p)
			return p[:root] + "..." + string(style.Separator()) + p[begin:]
		}
		begin = seg.Begin()
		count++
	}
	return p
}

// Split breaks a command line into words. Double quotes group words and a
// backslash escapes only a quote, so Windows paths can be typed as is.
func Split(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			started = true
			i++
		case c == '"':
			inQuote = !inQuote
			started = true
		case (c == ' ' || c == '\t') && !inQuote:
			if started {
				args = append(args, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteByte(c)
			started = true
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if started {
		args = append(args, cur.String())
	}
	return args, nil
}
