package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/pathwalk/pathwalk/internal/ops"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formatter handles text/JSON/YAML output.
type Formatter struct {
	Writer    io.Writer
	ErrWriter io.Writer
	Format    string
	Color     bool
}

// NewFormatter creates a formatter on stdout and stderr.
func NewFormatter(format string, colorMode bool) (*Formatter, error) {
	switch format {
	case "", FormatText:
		format = FormatText
	case FormatJSON, FormatYAML:
	default:
		return nil, errors.Errorf("unknown output format %q", format)
	}
	return &Formatter{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Format:    format,
		Color:     colorMode,
	}, nil
}

// Printf prints formatted text to the output.
func (f *Formatter) Printf(format string, args ...any) {
	fmt.Fprintf(f.Writer, format, args...)
}

// Errorf prints a formatted error message to stderr.
func (f *Formatter) Errorf(format string, args ...any) {
	if f.Color {
		color.New(color.FgRed).Fprintf(f.ErrWriter, format, args...)
		return
	}
	fmt.Fprintf(f.ErrWriter, format, args...)
}

// Warnf is Errorf in yellow.
func (f *Formatter) Warnf(format string, args ...any) {
	if f.Color {
		color.New(color.FgYellow).Fprintf(f.ErrWriter, format, args...)
		return
	}
	fmt.Fprintf(f.ErrWriter, format, args...)
}

// Print encodes v as JSON or YAML. Text mode falls back to fmt.
func (f *Formatter) Print(v any) error {
	switch f.Format {
	case FormatJSON:
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintln(f.Writer, v)
		return err
	}
}

// PrintResult prints the outcome of one operation.
func (f *Formatter) PrintResult(res ops.Result) error {
	if f.Format != FormatText {
		return f.Print(res)
	}

	switch {
	case res.Op == "segments":
		f.printSegments(res.Segments)
	case res.Op == "root" && res.Absolute != nil:
		kind := "relative"
		if *res.Absolute {
			kind = "absolute"
		}
		fmt.Fprintf(f.Writer, "%s\t%s\n", f.Path(res.Result), f.dim(kind))
	default:
		fmt.Fprintln(f.Writer, f.Path(res.Result))
	}

	if res.Truncated {
		f.Warnf("truncated: result needs %d bytes\n", res.Length+1)
	}
	return nil
}

func (f *Formatter) printSegments(segs []ops.Segment) {
	width := 0
	for _, s := range segs {
		width = max(width, len(s.Value))
	}
	for _, s := range segs {
		pad := strings.Repeat(" ", width-len(s.Value))
		fmt.Fprintf(f.Writer, "%s%s  %s  [%d,%d)\n", f.Segment(s.Value, s.Type), pad, f.dim(s.Type), s.Begin, s.End)
	}
}

// Path formats a result path.
func (f *Formatter) Path(p string) string {
	if !f.Color {
		return p
	}
	return color.New(color.FgGreen).Sprint(p)
}

// Segment colors a segment by its type: "." yellow, ".." magenta.
func (f *Formatter) Segment(value, kind string) string {
	if !f.Color {
		return value
	}
	switch kind {
	case "current":
		return color.New(color.FgYellow).Sprint(value)
	case "back":
		return color.New(color.FgMagenta, color.Bold).Sprint(value)
	default:
		return value
	}
}

func (f *Formatter) dim(s string) string {
	if !f.Color {
		return s
	}
	return color.New(color.Faint).Sprint(s)
}
