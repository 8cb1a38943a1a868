// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dashboard

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
)

// frameWriter sends chart images as the parts of a never ending
// multipart/x-mixed-replace response. mime/multipart.Writer only emits a
// part's closing boundary when the next part starts, so the client would
// always be one frame behind.
type frameWriter struct {
	w        io.Writer
	boundary string
	// header is the part header up to the Content-Length value.
	header  string
	started bool
	buf     bytes.Buffer
}

func newFrameWriter(w io.Writer, f ImageFormat) *frameWriter {
	var b [30]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic(err)
	}
	return &frameWriter{
		w:        w,
		boundary: hex.EncodeToString(b[:]),
		header:   "Content-Type: " + f.mimeType() + "\r\nContent-Transfer-Encoding: binary\r\nContent-Length: ",
	}
}

// contentType is the value of the response Content-Type header.
func (fw *frameWriter) contentType() string {
	return mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{"boundary": fw.boundary})
}

// writeFrame writes one image followed by the boundary line, in a single
// Write.
func (fw *frameWriter) writeFrame(img []byte) error {
	fw.buf.Reset()
	if !fw.started {
		fmt.Fprintf(&fw.buf, "--%s\r\n", fw.boundary)
		fw.started = true
	}
	fmt.Fprintf(&fw.buf, "%s%d\r\n\r\n", fw.header, len(img))
	fw.buf.Write(img)
	fmt.Fprintf(&fw.buf, "\r\n--%s\r\n", fw.boundary)
	_, err := fw.buf.WriteTo(fw.w)
	return err
}
