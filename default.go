package pathwalk

import (
	"fmt"
	"runtime"
	"sync/atomic"
)

var defaultStyle atomic.Int32

func init() {
	if runtime.GOOS == "windows" {
		defaultStyle.Store(int32(StyleWindows))
	}
}

// SetStyle replaces the process wide default style. It panics when s is
// not a known style.
func SetStyle(s Style) {
	if !s.Valid() {
		panic(fmt.Sprintf("pathwalk: SetStyle called with %v", s))
	}
	defaultStyle.Store(int32(s))
}

// GetStyle returns the process wide default style. It starts out as
// StyleWindows on Windows and StyleUnix everywhere else.
func GetStyle() Style {
	return Style(defaultStyle.Load())
}
