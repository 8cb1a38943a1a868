// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sampler periodically reads a temperature sensor and hands each
// reading to a sink.
package sampler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/bme280stream/sink"
	log "github.com/sirupsen/logrus"
)

// DefaultInterval matches the standby period the sensor is configured with.
const DefaultInterval = time.Second

// Sensor is the one operation the loop needs from a driver.
type Sensor interface {
	ReadTemperature() (float64, error)
}

// Loop reads Sensor every Interval and publishes to Sink.
type Loop struct {
	Sensor   Sensor
	Sink     sink.Sink
	Interval time.Duration

	// OnReadError is called for every failed read. The sample is skipped,
	// nothing is published in its place.
	OnReadError func(error)
	// Logger defaults to the logrus standard logger.
	Logger log.FieldLogger
}

// Run samples until ctx is done or publishing fails. The first sample is
// taken immediately. Read errors are reported and skipped; a publish error
// ends the loop since the consumer is gone.
func (l *Loop) Run(ctx context.Context) error {
	if l.Sensor == nil || l.Sink == nil {
		return errors.New("sampler: Sensor and Sink are required")
	}
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := l.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		// A tick may be ready together with ctx.Done.
		if ctx.Err() != nil {
			return nil
		}
		if err := l.sample(logger); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (l *Loop) sample(logger log.FieldLogger) error {
	celsius, err := l.Sensor.ReadTemperature()
	if err != nil {
		logger.WithError(err).Warn("temperature read failed")
		if l.OnReadError != nil {
			l.OnReadError(err)
		}
		return nil
	}
	if err := l.Sink.Publish(celsius); err != nil {
		return fmt.Errorf("sampler: publish: %w", err)
	}
	logger.WithField("celsius", celsius).Debug("sent temperature")
	return nil
}
