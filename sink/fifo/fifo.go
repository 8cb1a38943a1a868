// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fifo streams temperature samples through a named pipe.
//
// Each sample is 4 bytes: an IEEE-754 single precision float in little-endian
// byte order. There is no framing beyond the fixed size.
package fifo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/GermanBionicSystems/bme280stream/sink"
)

const (
	// DefaultPath is where the producer creates the pipe.
	DefaultPath = "/tmp/sensor_pipe"
	// SampleSize is the encoded size of one sample.
	SampleSize = 4
)

// Writer encodes samples to an underlying writer. It implements sink.Sink.
type Writer struct {
	w   io.Writer
	buf [SampleSize]byte
}

// NewWriter returns a Writer encoding to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Publish writes one sample.
func (w *Writer) Publish(celsius float64) error {
	binary.LittleEndian.PutUint32(w.buf[:], math.Float32bits(float32(celsius)))
	n, err := w.w.Write(w.buf[:])
	if err != nil {
		return fmt.Errorf("fifo: %w", err)
	}
	if n != SampleSize {
		return fmt.Errorf("fifo: %w", io.ErrShortWrite)
	}
	return nil
}

// Close closes the underlying writer if it is an io.Closer.
func (w *Writer) Close() error {
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Reader decodes samples from an underlying reader.
type Reader struct {
	r   io.Reader
	buf [SampleSize]byte
}

// NewReader returns a Reader decoding from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next blocks until a full sample is available. It returns io.EOF once the
// writer closed the pipe between two samples.
func (r *Reader) Next() (float64, error) {
	if _, err := io.ReadFull(r.r, r.buf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("fifo: %w", err)
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(r.buf[:]))), nil
}

// Close closes the underlying reader if it is an io.Closer.
func (r *Reader) Close() error {
	if c, ok := r.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ sink.Sink = &Writer{}
