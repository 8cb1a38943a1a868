// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i2cdev talks to a single I²C peripheral through a Linux
// /dev/i2c-N character device.
//
// The file is bound to one peripheral address with the I2C_SLAVE ioctl, after
// which every write(2) is one bus write transaction and every read(2) one bus
// read transaction. Short transfers are reported through the byte count like
// any other file.
package i2cdev

import "fmt"

// Conn is an open /dev/i2c-N file bound to a peripheral address. It
// implements io.ReadWriteCloser.
type Conn struct {
	fd   int
	path string
	addr uint16
}

func (c *Conn) String() string {
	return fmt.Sprintf("%s@0x%02x", c.path, c.addr)
}
