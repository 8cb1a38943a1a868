// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package metrics exports temperature samples as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/GermanBionicSystems/bme280stream/sink"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the sampling loop. It implements
// sink.Sink.
type Metrics struct {
	temperature prometheus.Gauge
	lastSample  prometheus.Gauge
	samples     prometheus.Counter
	readErrors  prometheus.Counter

	now func() time.Time
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		temperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bme280_temperature_celsius",
			Help: "Last compensated temperature.",
		}),
		lastSample: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bme280_last_sample_timestamp_seconds",
			Help: "Unix time of the last published sample.",
		}),
		samples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bme280_samples_total",
			Help: "Samples published.",
		}),
		readErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bme280_read_errors_total",
			Help: "Failed sensor reads.",
		}),
		now: time.Now,
	}
	for _, c := range []prometheus.Collector{m.temperature, m.lastSample, m.samples, m.readErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Publish records a sample.
func (m *Metrics) Publish(celsius float64) error {
	m.temperature.Set(celsius)
	m.lastSample.Set(float64(m.now().UnixNano()) / 1e9)
	m.samples.Inc()
	return nil
}

// ReadFailed counts a failed sensor read.
func (m *Metrics) ReadFailed(error) {
	m.readErrors.Inc()
}

var _ sink.Sink = &Metrics{}
