// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package fifo

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"
)

func TestWriterEncoding(t *testing.T) {
	var tests = []struct {
		celsius float64
		bytes   []byte
	}{
		{celsius: 25.08, bytes: []byte{0xd7, 0xa3, 0xc8, 0x41}},
		{celsius: -3.5, bytes: []byte{0x00, 0x00, 0x60, 0xc0}},
		{celsius: 0, bytes: []byte{0x00, 0x00, 0x00, 0x00}},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		if err := NewWriter(&buf).Publish(test.celsius); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(buf.Bytes(), test.bytes) {
			t.Errorf("Publish(%f) wrote %#v, expected %#v", test.celsius, buf.Bytes(), test.bytes)
		}
	}
}

func TestReader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, c := range []float64{25.08, -3.5} {
		if err := w.Publish(c); err != nil {
			t.Fatal(err)
		}
	}
	// A truncated trailing sample.
	buf.Write([]byte{0x01, 0x02})

	r := NewReader(&buf)
	for _, expected := range []float64{25.08, -3.5} {
		c, err := r.Next()
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(c-expected) > 1e-5 {
			t.Errorf("Next() = %f, expected %f", c, expected)
		}
	}
	if _, err := r.Next(); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected ErrUnexpectedEOF, got %v", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

type shortWriter struct{}

func (shortWriter) Write(b []byte) (int, error) {
	return len(b) - 1, nil
}

func TestWriterShort(t *testing.T) {
	if err := NewWriter(shortWriter{}).Publish(1); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("expected ErrShortWrite, got %v", err)
	}
}
