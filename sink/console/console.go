// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package console shows the latest temperature on the terminal as a bar
// drawn with ANSI color codes, cold readings in blue and hot ones in red.
package console

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"github.com/GermanBionicSystems/bme280stream/sink"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Opts represents the options available for the console bar.
type Opts struct {
	// Width is the number of cells of the bar.
	Width int
	// Min and Max are the temperatures mapped to an empty and a full bar.
	Min, Max float64
	Palette  *ansi256.Palette

	_ struct{}
}

// DefaultOpts covers the operating range of the BME280.
var DefaultOpts = Opts{Width: 40, Min: -40, Max: 85}

// Console renders each published sample in place on a single line.
type Console struct {
	w       io.Writer
	color   bool
	opts    Opts
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a Console writing to stdout. Colors are only used when stdout
// is a terminal.
func New(opts *Opts) *Console {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return newConsole(colorable.NewColorableStdout(), color, opts)
}

// NewWriter returns a Console writing ANSI colored output to w.
func NewWriter(w io.Writer, opts *Opts) *Console {
	return newConsole(w, true, opts)
}

func newConsole(w io.Writer, color bool, opts *Opts) *Console {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.Width <= 0 {
		o.Width = DefaultOpts.Width
	}
	if o.Max <= o.Min {
		o.Min, o.Max = DefaultOpts.Min, DefaultOpts.Max
	}
	p := o.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Console{w: w, color: color, opts: o, palette: *p}
}

func (c *Console) String() string {
	return "Console"
}

// cells returns how many cells of the bar celsius fills.
func (c *Console) cells(celsius float64) int {
	f := (celsius - c.opts.Min) / (c.opts.Max - c.opts.Min)
	n := int(math.Round(f * float64(c.opts.Width)))
	if n < 0 {
		return 0
	}
	if n > c.opts.Width {
		return c.opts.Width
	}
	return n
}

// shade interpolates from blue at the start of the bar to red at the end.
func (c *Console) shade(i int) color.NRGBA {
	f := float64(i) / float64(c.opts.Width-1)
	if c.opts.Width == 1 {
		f = 1
	}
	return color.NRGBA{R: byte(255 * f), G: 32, B: byte(255 * (1 - f)), A: 255}
}

// Publish redraws the bar. Implements sink.Sink.
func (c *Console) Publish(celsius float64) error {
	n := c.cells(celsius)
	c.buf.Reset()
	if c.color {
		_, _ = c.buf.WriteString("\r\033[0m")
		for i := 0; i < n; i++ {
			_, _ = io.WriteString(&c.buf, c.palette.Block(c.shade(i)))
		}
		_, _ = c.buf.WriteString("\033[0m")
	} else {
		_, _ = c.buf.WriteString("\r")
		_, _ = c.buf.WriteString(strings.Repeat("#", n))
	}
	_, _ = c.buf.WriteString(strings.Repeat(" ", c.opts.Width-n))
	_, _ = fmt.Fprintf(&c.buf, " %7.2f °C", celsius)
	_, err := c.buf.WriteTo(c.w)
	return err
}

// Halt ends the line so the terminal is not left mid-bar.
func (c *Console) Halt() error {
	s := "\n"
	if c.color {
		s = "\n\033[0m"
	}
	_, err := io.WriteString(c.w, s)
	return err
}

// Close implements io.Closer.
func (c *Console) Close() error {
	return c.Halt()
}

var _ sink.Sink = &Console{}
var _ fmt.Stringer = &Console{}
