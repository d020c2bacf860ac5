package cmd

import (
	"github.com/spf13/pflag"

	mdwlog "github.com/msto63/cta/foundation/core/log"
)

var (
	_ pflag.Value = (*levelValue)(nil)
	_ pflag.Value = (*formatValue)(nil)
)

// levelValue is a pflag.Value restricted to the session log levels
type levelValue struct {
	level mdwlog.Level
	set   bool
}

func (v *levelValue) String() string {
	if !v.set {
		return ""
	}
	return v.level.String()
}

func (v *levelValue) Set(s string) error {
	level, err := mdwlog.ParseLevel(s)
	if err != nil {
		return err
	}
	v.level = level
	v.set = true
	return nil
}

func (v *levelValue) Type() string {
	return "level"
}

// formatValue is a pflag.Value for the console log format
type formatValue struct {
	format mdwlog.Format
}

func (v *formatValue) String() string {
	return v.format.String()
}

func (v *formatValue) Set(s string) error {
	format, err := mdwlog.ParseFormat(s)
	if err != nil {
		return err
	}
	v.format = format
	return nil
}

func (v *formatValue) Type() string {
	return "format"
}
