// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by ReadTemperature after Begin failed. A sensor
// left half configured stays in sleep mode and only returns stale data.
var ErrNotConfigured = errors.New("bme280: sensor is not configured")

// ChannelOpenError is returned when the bus device could not be opened or the
// peripheral address could not be selected.
type ChannelOpenError struct {
	Path string
	Addr uint16
	Err  error
}

func (e *ChannelOpenError) Error() string {
	return fmt.Sprintf("bme280: open %s at 0x%02x: %v", e.Path, e.Addr, e.Err)
}

func (e *ChannelOpenError) Unwrap() error {
	return e.Err
}

// BusWriteError is returned when a register transaction wrote fewer bytes
// than required.
type BusWriteError struct {
	Reg  byte
	Want int
	Got  int
	Err  error
}

func (e *BusWriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bme280: write register 0x%02X: %d of %d bytes: %v", e.Reg, e.Got, e.Want, e.Err)
	}
	return fmt.Sprintf("bme280: write register 0x%02X: %d of %d bytes", e.Reg, e.Got, e.Want)
}

func (e *BusWriteError) Unwrap() error {
	return e.Err
}

// BusReadError is returned when a register transaction read fewer bytes than
// required.
type BusReadError struct {
	Reg  byte
	Want int
	Got  int
	Err  error
}

func (e *BusReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bme280: read register 0x%02X: %d of %d bytes: %v", e.Reg, e.Got, e.Want, e.Err)
	}
	return fmt.Sprintf("bme280: read register 0x%02X: %d of %d bytes", e.Reg, e.Got, e.Want)
}

func (e *BusReadError) Unwrap() error {
	return e.Err
}

// IncompleteCalibrationError is returned when one of the calibration words
// could not be read. No compensation is attempted in that case.
type IncompleteCalibrationError struct {
	Reg byte
	Err error
}

func (e *IncompleteCalibrationError) Error() string {
	return fmt.Sprintf("bme280: incomplete calibration at register 0x%02X: %v", e.Reg, e.Err)
}

func (e *IncompleteCalibrationError) Unwrap() error {
	return e.Err
}
