// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// bme280log reads temperature samples from the named pipe written by
// bme280stream, stores them in SQLite and serves a live chart and Prometheus
// metrics over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/bme280stream/dashboard"
	"github.com/GermanBionicSystems/bme280stream/sink"
	"github.com/GermanBionicSystems/bme280stream/sink/fifo"
	"github.com/GermanBionicSystems/bme280stream/sink/metrics"
	"github.com/GermanBionicSystems/bme280stream/sink/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// consume publishes every sample read from r until the writer goes away.
func consume(r *fifo.Reader, s sink.Sink) error {
	for {
		celsius, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := s.Publish(celsius); err != nil {
			return err
		}
		log.WithField("celsius", celsius).Debug("logged temperature")
	}
}

func mainImpl() (err error) {
	pipe := flag.String("pipe", fifo.DefaultPath, "named pipe to read samples from")
	dbPath := flag.String("db", store.DefaultPath, "SQLite database")
	httpAddr := flag.String("http", ":8080", "serve the dashboard and /metrics on this address, empty to disable")
	history := flag.Int("history", dashboard.DefaultHistory, "number of samples plotted")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, db.Close()) }()
	sinks := sink.Multi{db}

	if *httpAddr != "" {
		opts := dashboard.DefaultOpts
		opts.History = *history
		dash, err := dashboard.New(db, &opts)
		if err != nil {
			return err
		}
		defer dash.Halt()
		m, err := metrics.New(prometheus.DefaultRegisterer)
		if err != nil {
			return err
		}
		sinks = append(sinks, dash, m)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/", dash)
		srv := &http.Server{Addr: *httpAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("http server stopped")
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		log.WithField("addr", *httpAddr).Info("serving dashboard")
	}

	if err := fifo.Create(*pipe, 0o666); err != nil {
		return err
	}
	log.WithField("pipe", *pipe).Info("waiting for a writer")
	r, err := fifo.OpenReader(*pipe)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// Unblocks Next.
		<-ctx.Done()
		r.Close()
	}()
	err = consume(r, sinks)
	if ctx.Err() != nil {
		return nil
	}
	if err == nil {
		log.Info("writer closed the pipe")
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("bme280log: %v", err)
	}
}
