// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bme280stream streams BME280 temperature samples to a local
// consumer.
//
// The driver lives in package bme280. cmd/bme280stream samples it once per
// second and writes every reading to the named pipe /tmp/sensor_pipe as a
// little-endian float32. cmd/bme280log reads the pipe, stores the samples in
// SQLite and serves a live chart and Prometheus metrics.
package bme280stream
