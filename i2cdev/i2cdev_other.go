// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package i2cdev

import "errors"

var errUnsupported = errors.New("i2cdev: /dev/i2c-N is only available on linux")

// Open always fails outside of linux.
func Open(path string, addr uint16) (*Conn, error) {
	return nil, errUnsupported
}

func (c *Conn) Write(b []byte) (int, error) {
	return 0, errUnsupported
}

func (c *Conn) Read(b []byte) (int, error) {
	return 0, errUnsupported
}

func (c *Conn) Close() error {
	return nil
}
