package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/artpar/ttdeploy/internal/core/validation"
)

// Console prints user-facing status lines. Logs go through zap; these are
// the lines a user reads at the end of a run.
type Console struct {
	out     io.Writer
	err     io.Writer
	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

func newConsole(out, errOut io.Writer) *Console {
	return &Console{
		out:     out,
		err:     errOut,
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
	}
}

// Success prints a [SUCCESS] line to stdout.
func (c *Console) Success(format string, args ...any) {
	c.success.Fprintf(c.out, "[SUCCESS] "+format+"\n", args...)
}

// Warn prints a [WARN] line to stderr.
func (c *Console) Warn(format string, args ...any) {
	c.warn.Fprintf(c.err, "[WARN] "+format+"\n", args...)
}

// Error prints err as an [ERROR] line to stderr. Naming failures are
// followed by the full list of naming rules.
func (c *Console) Error(err error) {
	c.fail.Fprintf(c.err, "[ERROR] %s\n", err)

	var nameErr *validation.NameError
	if errors.As(err, &nameErr) {
		fmt.Fprintln(c.err, "App name rules:")
		for _, rule := range validation.AppNameRules() {
			fmt.Fprintf(c.err, "  - %s\n", rule)
		}
	}
}
