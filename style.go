package pathwalk

import (
	"errors"
	"fmt"
	"strings"
)

// Path is the set of input types accepted by the core operations.
type Path interface {
	~string | ~[]byte
}

// Style selects the path grammar: separators, case sensitivity and the
// shape of roots.
type Style int

const (
	// StyleUnix uses '/' as its only separator and compares case sensitively.
	StyleUnix Style = iota
	// StyleWindows accepts '/' and '\' as separators, writes '\', compares
	// ASCII letters case insensitively and knows drive, UNC and device roots.
	StyleWindows
)

// ErrInvalidStyle is returned by ParseStyle for unknown style names.
var ErrInvalidStyle = errors.New("invalid path style")

func (s Style) String() string {
	switch s {
	case StyleUnix:
		return "unix"
	case StyleWindows:
		return "windows"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

func (s Style) Valid() bool {
	return s == StyleUnix || s == StyleWindows
}

// ParseStyle accepts "unix" or "windows" in any letter case.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unix", "posix":
		return StyleUnix, nil
	case "windows", "win":
		return StyleWindows, nil
	default:
		return StyleUnix, fmt.Errorf("%w: %q", ErrInvalidStyle, name)
	}
}

func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStyle, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names ParseStyle does.
func (s *Style) UnmarshalText(text []byte) error {
	style, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = style
	return nil
}

// Separator returns the separator written into output paths.
func (s Style) Separator() byte {
	if s == StyleWindows {
		return '\\'
	}
	return '/'
}

func (s Style) IsSeparator(c byte) bool {
	if s == StyleWindows {
		return c == '\\' || c == '/'
	}
	return c == '/'
}

func lowerASCII(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// equal compares two runs of path text. Windows folds ASCII letters and
// treats any two separators as equal.
func equal[A, B Path](s Style, a A, b B) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		x, y := a[i], b[i]
		if x == y {
			continue
		}
		if s != StyleWindows {
			return false
		}
		if lowerASCII(x) == lowerASCII(y) {
			continue
		}
		if s.IsSeparator(x) && s.IsSeparator(y) {
			continue
		}
		return false
	}
	return true
}
