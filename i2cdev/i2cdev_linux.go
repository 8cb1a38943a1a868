// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i2cdev

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ioctlI2CSlave is I2C_SLAVE from linux/i2c-dev.h.
const ioctlI2CSlave = 0x0703

// Open opens the bus device at path and selects the peripheral at addr.
func Open(path string, addr uint16) (*Conn, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("i2cdev: open %s: %w", path, err)
	}
	if err := unix.IoctlSetInt(fd, ioctlI2CSlave, int(addr)); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("i2cdev: select address 0x%02x on %s: %w", addr, path, err)
	}
	return &Conn{fd: fd, path: path, addr: addr}, nil
}

// Write issues one write transaction and returns the number of bytes the
// adapter accepted.
func (c *Conn) Write(b []byte) (int, error) {
	n, err := unix.Write(c.fd, b)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Read issues one read transaction of len(b) bytes.
func (c *Conn) Read(b []byte) (int, error) {
	n, err := unix.Read(c.fd, b)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Close releases the file descriptor.
func (c *Conn) Close() error {
	if c.fd < 0 {
		return nil
	}
	err := unix.Close(c.fd)
	c.fd = -1
	return err
}
