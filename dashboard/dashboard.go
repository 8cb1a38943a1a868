// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dashboard serves a chart of the most recent temperature samples
// over HTTP.
//
// The page at "/" embeds the live stream at "/stream", an endless
// multipart/x-mixed-replace response ("MJPEG") that sends a new image every
// time a sample is published. "/chart.png" returns a single snapshot. PNG is
// used by default; JPEG can be selected with Options.Format or the "format"
// URL parameter.
package dashboard

import (
	"fmt"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/GermanBionicSystems/bme280stream/sink"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultHistory is the number of samples plotted.
const DefaultHistory = 100

// History returns up to n samples, newest first.
type History interface {
	Latest(n int) ([]sink.Sample, error)
}

// Options for a Dashboard.
type Options struct {
	// Width and height of the chart in pixels.
	Width, Height int
	// History is the number of samples plotted.
	History int
	// Format specifies the image format to send to clients.
	Format ImageFormat
	// Title is drawn above the chart.
	Title string
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Options{
	Width:   800,
	Height:  400,
	History: DefaultHistory,
	Format:  DefaultFormat,
	Title:   "BME280 temperature",
}

// Dashboard plots published samples. It implements sink.Sink and
// http.Handler.
type Dashboard struct {
	opts Options
	face font.Face
	now  func() time.Time
	mux  *http.ServeMux

	mu       sync.Mutex
	samples  []sink.Sample // oldest first
	chart    image.Image
	clients  map[*client]struct{}
	snapshot map[ImageFormat][]byte
}

var _ sink.Sink = (*Dashboard)(nil)
var _ http.Handler = (*Dashboard)(nil)

// New returns a dashboard. When h is not nil, the chart starts with the
// samples it already holds.
func New(h History, opts *Options) (*Dashboard, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Width <= 0 || o.Height <= 0 {
		return nil, fmt.Errorf("dashboard: invalid chart size %dx%d", o.Width, o.Height)
	}
	if o.History <= 0 {
		o.History = DefaultHistory
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	d := &Dashboard{
		opts:     o,
		face:     truetype.NewFace(f, &truetype.Options{Size: 13}),
		now:      time.Now,
		clients:  map[*client]struct{}{},
		snapshot: map[ImageFormat][]byte{},
	}
	if h != nil {
		latest, err := h.Latest(o.History)
		if err != nil {
			return nil, fmt.Errorf("dashboard: loading history: %w", err)
		}
		for i := len(latest) - 1; i >= 0; i-- {
			d.samples = append(d.samples, latest[i])
		}
	}
	d.chart = d.render()
	d.mux = http.NewServeMux()
	d.mux.HandleFunc("/", d.serveIndex)
	d.mux.HandleFunc("/chart.png", d.serveChart)
	d.mux.HandleFunc("/stream", d.serveStream)
	return d, nil
}

// Publish appends a sample, redraws the chart and notifies the streaming
// clients. Implements sink.Sink.
func (d *Dashboard) Publish(celsius float64) error {
	s := sink.Sample{Time: d.now(), Celsius: celsius}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.samples = append(d.samples, s)
	if extra := len(d.samples) - d.opts.History; extra > 0 {
		d.samples = append(d.samples[:0], d.samples[extra:]...)
	}
	d.chart = d.render()
	d.chartChangedLocked()
	return nil
}

// Samples returns a copy of the plotted samples, oldest first.
func (d *Dashboard) Samples() []sink.Sample {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]sink.Sample(nil), d.samples...)
}

// ServeHTTP implements http.Handler.
func (d *Dashboard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mux.ServeHTTP(w, r)
}

// Halt terminates all running stream requests asynchronously.
func (d *Dashboard) Halt() error {
	d.mu.Lock()
	d.terminateClientsLocked()
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) String() string {
	return "Dashboard"
}
