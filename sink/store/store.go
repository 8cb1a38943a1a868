// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package store keeps a log of temperature samples in an SQLite database.
//
// The table layout is
//
//	temperature_log(id INTEGER PRIMARY KEY AUTOINCREMENT, timestamp TEXT, temperature REAL)
//
// with timestamps in local time formatted as "2006-01-02 15:04:05".
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/bme280stream/sink"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/multierr"
)

// DefaultPath is the database file used when none is given.
const DefaultPath = "sensor_data.db"

// TimeLayout is the format of the timestamp column.
const TimeLayout = "2006-01-02 15:04:05"

const schema = `CREATE TABLE IF NOT EXISTS temperature_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT,
	temperature REAL
)`

// Store is a temperature log. It implements sink.Sink.
type Store struct {
	db     *sql.DB
	insert *sql.Stmt
	latest *sql.Stmt

	// Now returns the time recorded with each sample. It defaults to
	// time.Now.
	Now func() time.Time
}

// Open opens or creates the database at path and makes sure the table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	// One writer at a time, sqlite serializes anyway.
	db.SetMaxOpenConns(1)
	s := &Store{db: db, Now: time.Now}
	if err := s.prepare(); err != nil {
		return nil, multierr.Append(err, s.Close())
	}
	return s, nil
}

func (s *Store) prepare() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("store: create table: %w", err)
	}
	var err error
	s.insert, err = s.db.Prepare("INSERT INTO temperature_log (timestamp, temperature) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	s.latest, err = s.db.Prepare("SELECT timestamp, temperature FROM temperature_log ORDER BY id DESC LIMIT ?")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// Publish appends a sample stamped with s.Now().
func (s *Store) Publish(celsius float64) error {
	ts := s.Now().Local().Format(TimeLayout)
	if _, err := s.insert.Exec(ts, celsius); err != nil {
		return fmt.Errorf("store: insert: %w", err)
	}
	return nil
}

// Latest returns up to n samples, newest first.
func (s *Store) Latest(n int) ([]sink.Sample, error) {
	rows, err := s.latest.Query(n)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	defer rows.Close()
	var res []sink.Sample
	for rows.Next() {
		var ts string
		var c float64
		if err := rows.Scan(&ts, &c); err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		t, err := time.ParseInLocation(TimeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("store: bad timestamp %q: %w", ts, err)
		}
		res = append(res, sink.Sample{Time: t, Celsius: c})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return res, nil
}

// Close releases the prepared statements and the database.
func (s *Store) Close() error {
	var err error
	for _, st := range []*sql.Stmt{s.insert, s.latest} {
		if st != nil {
			err = multierr.Append(err, st.Close())
		}
	}
	return multierr.Append(err, s.db.Close())
}

var _ sink.Sink = &Store{}
