// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bme280 reads the temperature from a Bosch BME280 environmental
// sensor over I²C.
//
// Only the temperature path is implemented. The device is configured once
// with a fixed profile (humidity oversampling x1, temperature oversampling x1,
// normal mode, filter off) and the raw 20 bit reading is converted to °C with
// the integer compensation formula of the datasheet.
//
// The driver talks to the device through an io.ReadWriter. Every register
// access is a one byte register-select Write followed by a Read, so any
// transport that behaves like a Linux /dev/i2c-N file works. NewI2C adapts a
// periph.io i2c.Bus and Open uses the i2cdev package.
//
// # Datasheet
//
// The URLs tend to rot, visit https://www.bosch-sensortec.com if it becomes
// invalid.
//
// https://www.bosch-sensortec.com/media/boschsensortec/downloads/datasheets/bst-bme280-ds002.pdf
//
// # Register map
//
//	0x88..0x8D  dig_T1, dig_T2, dig_T3, little-endian
//	0xD0        chip id (0x60)
//	0xF2        ctrl_hum
//	0xF4        ctrl_meas
//	0xF5        config
//	0xFA..0xFC  temp_msb, temp_lsb, temp_xlsb
package bme280
