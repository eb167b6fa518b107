package shell

import (
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pathwalk/pathwalk/internal/ops"
)

var builtins = []string{"cd", "exit", "help", "match", "pwd", "quit", "style"}

var styleNames = []string{"auto", "unix", "windows"}

// NewCompleter creates a tab completer for the shell.
func NewCompleter() *Completer {
	names := append(ops.Names(), builtins...)
	sort.Strings(names)
	return &Completer{commands: names}
}

// Completer completes command names and the argument of "style".
type Completer struct {
	commands []string
}

// Do implements readline.AutoCompleter.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	lineStr := string(line[:pos])
	parts := strings.Fields(lineStr)

	if len(parts) == 0 || (len(parts) == 1 && !strings.HasSuffix(lineStr, " ")) {
		prefix := ""
		if len(parts) == 1 {
			prefix = parts[0]
		}
		return complete(c.commands, strings.ToLower(prefix)), len(prefix)
	}

	if strings.ToLower(parts[0]) != "style" {
		return nil, 0
	}
	partial := ""
	if !strings.HasSuffix(lineStr, " ") {
		partial = parts[len(parts)-1]
	}
	if len(parts) > 2 || (len(parts) == 2 && partial == "") {
		return nil, 0
	}
	return complete(styleNames, strings.ToLower(partial)), len(partial)
}

func complete(words []string, prefix string) [][]rune {
	var out [][]rune
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			out = append(out, []rune(w[len(prefix):]+" "))
		}
	}
	return out
}

var _ readline.AutoCompleter = (*Completer)(nil)
