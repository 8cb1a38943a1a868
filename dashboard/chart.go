// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dashboard

import (
	"fmt"
	"image"
	"math"

	"github.com/GermanBionicSystems/bme280stream/sink"
	"github.com/fogleman/gg"
)

const (
	marginLeft   = 64.0
	marginRight  = 16.0
	marginTop    = 40.0
	marginBottom = 32.0
	gridLines    = 5
)

// render draws d.samples. It must be called with d.mu held or before d is
// shared.
func (d *Dashboard) render() image.Image {
	w, h := float64(d.opts.Width), float64(d.opts.Height)
	dc := gg.NewContext(d.opts.Width, d.opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(d.face)

	title := d.opts.Title
	if n := len(d.samples); n != 0 {
		title = fmt.Sprintf("%s  %.2f °C", title, d.samples[n-1].Celsius)
	}
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, w/2, marginTop/2, 0.5, 0.5)

	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom
	if plotW <= 0 || plotH <= 0 {
		return dc.Image()
	}
	if len(d.samples) == 0 {
		dc.SetRGB(0.5, 0.5, 0.5)
		dc.DrawStringAnchored("no data", w/2, marginTop+plotH/2, 0.5, 0.5)
		return dc.Image()
	}

	lo, hi := bounds(d.samples)
	y := func(c float64) float64 {
		return marginTop + plotH*(1-(c-lo)/(hi-lo))
	}
	x := func(i int) float64 {
		if d.opts.History <= 1 {
			return marginLeft
		}
		return marginLeft + plotW*float64(i)/float64(d.opts.History-1)
	}

	// Grid and axis labels.
	dc.SetLineWidth(1)
	for i := 0; i <= gridLines; i++ {
		c := lo + (hi-lo)*float64(i)/gridLines
		yy := y(c)
		dc.SetRGB(0.9, 0.9, 0.9)
		dc.DrawLine(marginLeft, yy, marginLeft+plotW, yy)
		dc.Stroke()
		dc.SetRGB(0.3, 0.3, 0.3)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", c), marginLeft-6, yy, 1, 0.5)
	}
	first, last := d.samples[0].Time, d.samples[len(d.samples)-1].Time
	dc.DrawStringAnchored(first.Format("15:04:05"), marginLeft, h-marginBottom/2, 0, 0.5)
	dc.DrawStringAnchored(last.Format("15:04:05"), x(len(d.samples)-1), h-marginBottom/2, 1, 0.5)
	dc.SetRGB(0, 0, 0)
	dc.DrawRectangle(marginLeft, marginTop, plotW, plotH)
	dc.Stroke()

	// Samples, newest on the right.
	dc.SetRGB(0.85, 0.2, 0.1)
	dc.SetLineWidth(2)
	for i, s := range d.samples {
		if i == 0 {
			dc.MoveTo(x(i), y(s.Celsius))
		} else {
			dc.LineTo(x(i), y(s.Celsius))
		}
	}
	dc.Stroke()
	for i, s := range d.samples {
		dc.DrawCircle(x(i), y(s.Celsius), 2.5)
	}
	dc.Fill()
	return dc.Image()
}

// bounds returns the plotted range, at least one degree wide and rounded
// outward to whole degrees.
func bounds(samples []sink.Sample) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		lo = math.Min(lo, s.Celsius)
		hi = math.Max(hi, s.Celsius)
	}
	lo, hi = math.Floor(lo), math.Ceil(hi)
	if hi-lo < 1 {
		hi = lo + 1
	}
	return lo, hi
}
