// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i2cdev

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

func TestOpenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "i2c-9")
	c, err := Open(path, 0x77)
	if err == nil {
		c.Close()
		t.Fatal("expected error opening a missing device")
	}
	if !errors.Is(err, unix.ENOENT) {
		t.Errorf("expected ENOENT, got %v", err)
	}
}

func TestOpenNotADevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	// A regular file does not support the I2C_SLAVE ioctl.
	c, err := Open(path, 0x77)
	if err == nil {
		c.Close()
		t.Fatal("expected ioctl failure on a regular file")
	}
	if !errors.Is(err, unix.ENOTTY) {
		t.Errorf("expected ENOTTY from the address select, got %v", err)
	}
}

func TestIoctlNumber(t *testing.T) {
	// Value from linux/i2c-dev.h, which x/sys/unix does not export.
	if ioctlI2CSlave != 0x0703 {
		t.Errorf("I2C_SLAVE = 0x%04x, expected 0x0703", ioctlI2CSlave)
	}
}

func TestString(t *testing.T) {
	c := &Conn{fd: -1, path: "/dev/i2c-1", addr: 0x77}
	if s := c.String(); s != "/dev/i2c-1@0x77" {
		t.Errorf("unexpected String() %q", s)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on a closed Conn: %v", err)
	}
}
