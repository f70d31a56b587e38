// Package ui formats the progress and status lines printed by nodegen.
//
// Usage:
//
//	p := ui.New(os.Stdout, ui.WithVerbose(true))
//	p.Info("Directory created: %s", path)
//	p.Success("Project '%s' has been initialized successfully.", name)
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Printer writes human-readable status lines. It is safe for concurrent use.
type Printer struct {
	mu      sync.Mutex
	out     io.Writer
	verbose bool
	color   bool
}

// Option configures a Printer.
type Option func(*Printer)

// WithVerbose enables Debug output.
func WithVerbose(enabled bool) Option {
	return func(p *Printer) { p.verbose = enabled }
}

// WithColor forces colored output on or off.
func WithColor(enabled bool) Option {
	return func(p *Printer) { p.color = enabled }
}

// New creates a Printer writing to out. A nil out means os.Stdout. Colors
// default to on unless the NO_COLOR convention (honored by fatih/color) says
// otherwise.
func New(out io.Writer, opts ...Option) *Printer {
	if out == nil {
		out = os.Stdout
	}
	p := &Printer{out: out, color: !color.NoColor}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Info prints a plain progress line.
func (p *Printer) Info(format string, args ...any) {
	p.println(nil, format, args...)
}

// Success prints a completion line, green when colors are enabled.
func (p *Printer) Success(format string, args ...any) {
	p.println(color.New(color.FgGreen, color.Bold), format, args...)
}

// Warn prints a warning line, yellow when colors are enabled.
func (p *Printer) Warn(format string, args ...any) {
	p.println(color.New(color.FgYellow), format, args...)
}

// Debug prints only in verbose mode.
func (p *Printer) Debug(format string, args ...any) {
	if !p.verbose {
		return
	}
	p.println(color.New(color.Faint), format, args...)
}

func (p *Printer) println(c *color.Color, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)

	p.mu.Lock()
	defer p.mu.Unlock()

	if c != nil && p.color {
		c.EnableColor()
		c.Fprintln(p.out, msg)
		return
	}
	fmt.Fprintln(p.out, msg)
}
