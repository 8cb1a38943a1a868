// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// bme280stream reads the temperature from a BME280 once per interval and
// writes each sample as a little-endian float32 to a named pipe.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/GermanBionicSystems/bme280stream/bme280"
	"github.com/GermanBionicSystems/bme280stream/sampler"
	"github.com/GermanBionicSystems/bme280stream/sink"
	"github.com/GermanBionicSystems/bme280stream/sink/console"
	"github.com/GermanBionicSystems/bme280stream/sink/fifo"
	"github.com/GermanBionicSystems/bme280stream/sink/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// openSensor opens a /dev path directly and anything else through the
// periph.io bus registry. The returned closer releases the bus. Failing to
// reach the bus is a *bme280.ChannelOpenError on both paths.
func openSensor(bus string, addr uint16) (*bme280.Dev, io.Closer, error) {
	if strings.HasPrefix(bus, "/dev/") {
		d, err := bme280.Open(bus, addr)
		if err != nil {
			return nil, nil, err
		}
		return d, d, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, &bme280.ChannelOpenError{Path: bus, Addr: addr, Err: err}
	}
	b, err := i2creg.Open(bus)
	if err != nil {
		return nil, nil, &bme280.ChannelOpenError{Path: bus, Addr: addr, Err: err}
	}
	d, err := bme280.NewI2C(b, addr)
	if err != nil {
		b.Close()
		return nil, nil, err
	}
	return d, b, nil
}

func mainImpl() error {
	bus := flag.String("bus", "/dev/i2c-1", "I²C bus: a /dev/i2c-N path or a periph.io bus name")
	addrFlag := flag.String("addr", "0x77", "device address")
	pipe := flag.String("pipe", fifo.DefaultPath, "named pipe to write samples to")
	interval := flag.Duration("interval", sampler.DefaultInterval, "sampling interval")
	metricsAddr := flag.String("metrics", "", "serve Prometheus metrics on this address, e.g. :9280")
	showConsole := flag.Bool("console", false, "print a temperature bar on stdout")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	addr, err := strconv.ParseUint(*addrFlag, 0, 10)
	if err != nil {
		return fmt.Errorf("invalid -addr: %w", err)
	}

	dev, closer, err := openSensor(*bus, uint16(addr))
	if err != nil {
		return err
	}
	defer closer.Close()
	defer dev.Halt()
	logger := log.WithField("sensor", dev.String())

	if id, err := dev.ChipID(); err != nil {
		return err
	} else if id != bme280.ChipID {
		return fmt.Errorf("unexpected chip id 0x%02X, expected 0x%02X", id, bme280.ChipID)
	}
	if err := dev.Begin(); err != nil {
		return err
	}
	logger.Info("sensor configured")

	sinks := sink.Multi{}
	var onReadError func(error)
	if *metricsAddr != "" {
		m, err := metrics.New(prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}
		sinks = append(sinks, m)
		onReadError = m.ReadFailed
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
	}
	if *showConsole {
		sinks = append(sinks, console.New(nil))
	}

	logger.WithField("pipe", *pipe).Info("waiting for a reader")
	w, err := fifo.OpenWriter(*pipe, 0o666)
	if err != nil {
		return err
	}
	// The pipe is the one sink a reader depends on, publish to it first.
	sinks = append(sink.Multi{w}, sinks...)
	defer sinks.Close()
	logger.WithField("pipe", *pipe).Info("reader attached, streaming")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	l := &sampler.Loop{
		Sensor:      dev,
		Sink:        sinks,
		Interval:    *interval,
		OnReadError: onReadError,
		Logger:      logger,
	}
	return l.Run(ctx)
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("bme280stream: %v", err)
	}
}
