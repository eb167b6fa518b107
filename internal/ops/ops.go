// Package ops runs named path operations over string inputs. It is the one
// place where the HTTP server, the CLI and the shell turn a request into a
// library call, so all three agree on names, arity and result shapes.
package ops

import (
	"sort"
	"strconv"

	"github.com/gobwas/glob"
	"github.com/pathwalk/pathwalk"
	"github.com/pkg/errors"
)

var (
	ErrUnknownOp    = errors.New("unknown operation")
	ErrArity        = errors.New("wrong number of paths")
	ErrMissingValue = errors.New("operation needs a value")
	ErrNoCommonRoot = errors.New("paths do not share a root")
	ErrBadPattern   = errors.New("invalid match pattern")
)

// Input is the argument list of one operation.
type Input struct {
	Paths []string
	// Value is the replacement text of the change-* operations.
	Value string
	// Match filters the output of "segments" by a glob pattern.
	Match string
	// Reverse lists segments from last to first.
	Reverse bool
	// Capacity bounds the output buffer of writing operations. Zero means
	// unbounded.
	Capacity int
}

type Result struct {
	Op        string    `json:"op" yaml:"op"`
	Style     string    `json:"style" yaml:"style"`
	Result    string    `json:"result" yaml:"result"`
	Length    int       `json:"length" yaml:"length"`
	Truncated bool      `json:"truncated" yaml:"truncated"`
	Absolute  *bool     `json:"absolute,omitempty" yaml:"absolute,omitempty"`
	Segments  []Segment `json:"segments,omitempty" yaml:"segments,omitempty"`
}

type Segment struct {
	Value string `json:"value" yaml:"value"`
	Type  string `json:"type" yaml:"type"`
	Begin int    `json:"begin" yaml:"begin"`
	End   int    `json:"end" yaml:"end"`
}

// Op describes one operation.
type Op struct {
	Name     string
	Aliases  []string
	Usage    string
	MinPaths int
	// MaxPaths of -1 means no upper bound.
	MaxPaths int
	// Value is set when the operation takes replacement text, and
	// RequireValue when that text may not be empty.
	Value        bool
	RequireValue bool

	write func(s pathwalk.Style, dst []byte, in Input) (int, error)
	view  func(s pathwalk.Style, in Input, res *Result) error
}

var registry = []Op{
	{
		Name: "normalize", Usage: "normalize PATH",
		MinPaths: 1, MaxPaths: 1,
		write: func(s pathwalk.Style, dst []byte, in Input) (int, error) {
			return pathwalk.Normalize(s, dst, in.Paths[0]), nil
		},
	},
	{
		Name: "join", Usage: "join PATH PATH...",
		MinPaths: 2, MaxPaths: -1,
		write: func(s pathwalk.Style, dst []byte, in Input) (int, error) {
			return pathwalk.JoinMultiple(s, dst, in.Paths...), nil
		},
	},
	{
		Name: "absolute", Aliases: []string{"abs"}, Usage: "absolute BASE PATH",
		MinPaths: 2, MaxPaths: 2,
		write: func(s pathwalk.Style, dst []byte, in Input) (int, error) {
			return pathwalk.Absolute(s, dst, in.Paths[0], in.Paths[1]), nil
		},
	},
	{
		Name: "relative", Aliases: []string{"rel"}, Usage: "relative BASE PATH",
		MinPaths: 2, MaxPaths: 2,
		write: func(s pathwalk.Style, dst []byte, in Input) (int, error) {
			if !pathwalk.SharesRoot(s, in.Paths[0], in.Paths[1]) {
				return 0, ErrNoCommonRoot
			}
			return pathwalk.Relative(s, dst, in.Paths[0], in.Paths[1]), nil
		},
	},
	{
		Name: "intersection", Aliases: []string{"intersect"}, Usage: "intersection PATH PATH",
		MinPaths: 2, MaxPaths: 2,
		view: func(s pathwalk.Style, in Input, res *Result) error {
			res.Result = s.Intersection(in.Paths[0], in.Paths[1])
			return nil
		},
	},
	{
		Name: "root", Usage: "root PATH",
		MinPaths: 1, MaxPaths: 1,
		view: func(s pathwalk.Style, in Input, res *Result) error {
			n, abs := pathwalk.Root(s, in.Paths[0])
			res.Result = in.Paths[0][:n]
			res.Absolute = &abs
			return nil
		},
	},
	{
		Name: "segments", Aliases: []string{"split"}, Usage: "segments PATH",
		MinPaths: 1, MaxPaths: 1,
		view: viewSegments,
	},
	{
		Name: "basename", Usage: "basename PATH",
		MinPaths: 1, MaxPaths: 1,
		view: func(s pathwalk.Style, in Input, res *Result) error {
			res.Result = s.Basename(in.Paths[0])
			return nil
		},
	},
	{
		Name: "dirname", Usage: "dirname PATH",
		MinPaths: 1, MaxPaths: 1,
		view: func(s pathwalk.Style, in Input, res *Result) error {
			res.Result = s.Dirname(in.Paths[0])
			return nil
		},
	},
	{
		Name: "extension", Aliases: []string{"ext"}, Usage: "extension PATH",
		MinPaths: 1, MaxPaths: 1,
		view: func(s pathwalk.Style, in Input, res *Result) error {
			res.Result = s.Extension(in.Paths[0])
			return nil
		},
	},
	{
		Name: "change-root", Usage: "change-root PATH ROOT",
		MinPaths: 1, MaxPaths: 1, Value: true,
		write: func(s pathwalk.Style, dst []byte, in Input) (int, error) {
			return pathwalk.ChangeRoot(s, dst, in.Paths[0], in.Value), nil
		},
	},
	{
		Name: "change-basename", Usage: "change-basename PATH NAME",
		MinPaths: 1, MaxPaths: 1, Value: true, RequireValue: true,
		write: func(s pathwalk.Style, dst []byte, in Input) (int, error) {
			return pathwalk.ChangeBasename(s, dst, in.Paths[0], in.Value), nil
		},
	},
	{
		Name: "change-extension", Aliases: []string{"change-ext"}, Usage: "change-extension PATH EXT",
		MinPaths: 1, MaxPaths: 1, Value: true,
		write: func(s pathwalk.Style, dst []byte, in Input) (int, error) {
			return pathwalk.ChangeExtension(s, dst, in.Paths[0], in.Value), nil
		},
	},
	{
		Name: "guess", Usage: "guess PATH",
		MinPaths: 1, MaxPaths: 1,
		view: func(_ pathwalk.Style, in Input, res *Result) error {
			res.Result = pathwalk.GuessStyle(in.Paths[0]).String()
			return nil
		},
	},
}

var byName = func() map[string]*Op {
	m := make(map[string]*Op)
	for i := range registry {
		op := &registry[i]
		m[op.Name] = op
		for _, alias := range op.Aliases {
			m[alias] = op
		}
	}
	return m
}()

// Lookup finds an operation by name or alias.
func Lookup(name string) (*Op, bool) {
	op, ok := byName[name]
	return op, ok
}

// All returns every operation, sorted by name.
func All() []Op {
	out := append([]Op(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every accepted name and alias, sorted.
func Names() []string {
	out := make([]string, 0, len(byName))
	for name := range byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Run looks up name and runs it.
func Run(name string, s pathwalk.Style, in Input) (Result, error) {
	op, ok := Lookup(name)
	if !ok {
		return Result{}, errors.Wrapf(ErrUnknownOp, "%q", name)
	}
	return op.Run(s, in)
}

// Check reports whether in has the shape op expects.
func (op *Op) Check(in Input) error {
	n := len(in.Paths)
	if n < op.MinPaths || (op.MaxPaths >= 0 && n > op.MaxPaths) {
		return errors.Wrapf(ErrArity, "%s takes %s, got %d", op.Name, op.arity(), n)
	}
	if op.RequireValue && in.Value == "" {
		return errors.Wrapf(ErrMissingValue, "%s", op.Name)
	}
	return nil
}

func (op *Op) arity() string {
	switch {
	case op.MaxPaths < 0:
		return pluralPaths(op.MinPaths) + " or more"
	case op.MinPaths == op.MaxPaths:
		return pluralPaths(op.MinPaths)
	default:
		return pluralPaths(op.MinPaths) + " to " + pluralPaths(op.MaxPaths)
	}
}

func pluralPaths(n int) string {
	if n == 1 {
		return "1 path"
	}
	return strconv.Itoa(n) + " paths"
}

// Writes reports whether op produces a new path, which makes
// Input.Capacity meaningful.
func (op *Op) Writes() bool {
	return op.write != nil
}

// Run executes op in style s.
func (op *Op) Run(s pathwalk.Style, in Input) (Result, error) {
	if err := op.Check(in); err != nil {
		return Result{}, err
	}

	res := Result{Op: op.Name, Style: s.String()}
	if op.Name == "guess" {
		res.Style = ""
	}

	if op.view != nil {
		if err := op.view(s, in, &res); err != nil {
			return Result{}, err
		}
		if res.Length == 0 {
			res.Length = len(res.Result)
		}
		return res, nil
	}

	// size query, then the real write
	n, err := op.write(s, nil, in)
	if err != nil {
		return Result{}, err
	}
	size := n + 1
	if in.Capacity > 0 && in.Capacity < size {
		size = in.Capacity
	}
	dst := make([]byte, size)
	n, _ = op.write(s, dst, in)
	res.Result = string(pathwalk.Written(dst, n))
	res.Length = n
	res.Truncated = !pathwalk.Fits(dst, n)
	return res, nil
}

func viewSegments(s pathwalk.Style, in Input, res *Result) error {
	var g glob.Glob
	if in.Match != "" {
		compiled, err := glob.Compile(in.Match)
		if err != nil {
			return errors.Wrapf(ErrBadPattern, "%q: %v", in.Match, err)
		}
		g = compiled
	}

	walk := pathwalk.Segments[string]
	if in.Reverse {
		walk = pathwalk.Backward[string]
	}
	for seg := range walk(s, in.Paths[0]) {
		if g != nil && !g.Match(seg.Value()) {
			continue
		}
		res.Segments = append(res.Segments, Segment{
			Value: seg.Value(),
			Type:  seg.Type().String(),
			Begin: seg.Begin(),
			End:   seg.End(),
		})
	}
	res.Length = len(res.Segments)
	return nil
}
