// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dashboard

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"sync"
)

// ImageFormat is the encoding of the chart sent to clients.
type ImageFormat int

const (
	PNG ImageFormat = iota
	JPEG

	// DefaultFormat is used unless Options.Format or the "format" URL
	// parameter says otherwise.
	DefaultFormat = PNG
)

func (f ImageFormat) String() string {
	if f == JPEG {
		return "JPEG"
	}
	return "PNG"
}

func (f ImageFormat) mimeType() string {
	if f == JPEG {
		return "image/jpeg"
	}
	return "image/png"
}

// param is the value of the "format" URL parameter selecting f.
func (f ImageFormat) param() string {
	if f == JPEG {
		return "jpeg"
	}
	return "png"
}

// ParseFormat returns the format selected by a "format" URL parameter.
func ParseFormat(value string) (ImageFormat, error) {
	switch value {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	}
	return DefaultFormat, fmt.Errorf("dashboard: unsupported chart format %q", value)
}

var jpegOptions = jpeg.Options{Quality: 90}

type pngBufferPool sync.Pool

func (p *pngBufferPool) Get() *png.EncoderBuffer {
	buf, _ := (*sync.Pool)(p).Get().(*png.EncoderBuffer)
	return buf
}

func (p *pngBufferPool) Put(buf *png.EncoderBuffer) {
	(*sync.Pool)(p).Put(buf)
}

// Charts are mostly flat color, speed matters more than size.
var pngEncoder = png.Encoder{
	CompressionLevel: png.BestSpeed,
	BufferPool:       &pngBufferPool{},
}

// encode renders the chart in format f.
func encode(img image.Image, f ImageFormat) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	if f == JPEG {
		err = jpeg.Encode(&buf, img, &jpegOptions)
	} else {
		err = pngEncoder.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("dashboard: encoding %s chart: %w", f, err)
	}
	return buf.Bytes(), nil
}
