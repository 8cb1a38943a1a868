// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sink defines where temperature samples go once they have been read
// from the sensor.
//
// The sensor side only hands a value in °C to a Sink. Transport, framing and
// the number of consumers are the business of the implementations in the
// sub-packages.
package sink

import (
	"io"
	"time"

	"go.uber.org/multierr"
)

// Sink receives one temperature in °C per successful reading.
type Sink interface {
	Publish(celsius float64) error
}

// Func adapts a function to a Sink.
type Func func(celsius float64) error

// Publish calls f(celsius).
func (f Func) Publish(celsius float64) error {
	return f(celsius)
}

// Sample is a temperature with the time it was recorded.
type Sample struct {
	Time    time.Time
	Celsius float64
}

// Multi publishes every sample to all of its sinks, in order. A failing sink
// does not stop the others; the failures are combined.
type Multi []Sink

// Publish implements Sink.
func (m Multi) Publish(celsius float64) error {
	var err error
	for _, s := range m {
		err = multierr.Append(err, s.Publish(celsius))
	}
	return err
}

// Close closes every sink that implements io.Closer.
func (m Multi) Close() error {
	var err error
	for _, s := range m {
		if c, ok := s.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}

var _ Sink = Multi{}
var _ Sink = Func(nil)
