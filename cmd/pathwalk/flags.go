package main

import (
	"fmt"
	"strings"

	"github.com/pathwalk/pathwalk"
	"github.com/pathwalk/pathwalk/internal/config"
	"github.com/spf13/pflag"
)

// styleFlag is the --style value. Unset, it stands for the host style.
type styleFlag struct {
	mode config.StyleMode
}

var _ pflag.Value = (*styleFlag)(nil)

func (f *styleFlag) String() string {
	if f.mode == "" {
		return pathwalk.GetStyle().String()
	}
	return string(f.mode)
}

// Resolve picks the style for one command's inputs.
func (f *styleFlag) Resolve(inputs ...string) pathwalk.Style {
	if f.mode == "" {
		return pathwalk.GetStyle()
	}
	return f.mode.Resolve(inputs...)
}

func (f *styleFlag) Set(value string) error {
	mode := config.StyleMode(strings.ToLower(value))
	if !mode.Valid() {
		return fmt.Errorf("must be unix, windows or auto")
	}
	f.mode = mode
	return nil
}

func (f *styleFlag) Type() string {
	return "style"
}
