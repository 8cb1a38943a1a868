// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/GermanBionicSystems/bme280stream/i2cdev"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

const (
	// DefaultAddress is the bus address with SDO tied to VDDIO.
	DefaultAddress uint16 = 0x77
	// AlternateAddress is the bus address with SDO tied to GND.
	AlternateAddress uint16 = 0x76

	// ChipID is the value of the id register of a BME280.
	ChipID byte = 0x60

	// Startup configuration. Humidity oversampling x1.
	ctrlHumX1 byte = 0x01
	// Temperature and pressure oversampling x1, normal mode.
	ctrlMeasNormal byte = 0x27
	// Standby 1000ms, filter off.
	configFilterOff byte = 0xA0

	// The device produces a new sample once per standby period.
	standbyPeriod = time.Second

	// The minimum temperature the device can read.
	MinimumTemperature physic.Temperature = physic.ZeroCelsius - 40*physic.Kelvin
	// The maximum temperature the device can read.
	MaximumTemperature physic.Temperature = physic.ZeroCelsius + 85*physic.Kelvin
)

var errClosed = errors.New("bme280: device is closed")

type state int

const (
	stateConfigured state = iota
	stateRunning
	stateFailed
	stateClosed
)

// startup lists the configuration writes issued by Begin, in order. ctrl_hum
// only takes effect after ctrl_meas is written.
var startup = [...]struct{ reg, value byte }{
	{regCtrlHum, ctrlHumX1},
	{regCtrlMeas, ctrlMeasNormal},
	{regConfig, configFilterOff},
}

// Dev represents a BME280 sensor.
type Dev struct {
	c    io.ReadWriter
	name string

	mu    sync.Mutex
	state state
	err   error
	cal   *Calibration

	stop chan struct{}
	wg   sync.WaitGroup
}

// New returns a driver talking through rw. Each Write must be one bus write
// transaction and each Read one bus read transaction, as with a /dev/i2c-N
// file bound to the device address.
//
// If rw implements io.Closer, Close closes it.
func New(rw io.ReadWriter, name string) *Dev {
	return &Dev{c: rw, name: name}
}

// Open opens the Linux I²C character device at path, for example
// "/dev/i2c-1", and binds it to addr.
func Open(path string, addr uint16) (*Dev, error) {
	c, err := i2cdev.Open(path, addr)
	if err != nil {
		return nil, &ChannelOpenError{Path: path, Addr: addr, Err: err}
	}
	return New(c, c.String()), nil
}

// NewI2C returns a BME280 sensor using the specified periph.io bus and
// address. Call Begin before reading.
func NewI2C(b i2c.Bus, addr uint16) (*Dev, error) {
	d := &i2c.Dev{Bus: b, Addr: addr}
	return New(&i2cConn{d: d}, d.String()), nil
}

// Begin configures the sensor for continuous temperature measurement. A
// failed write leaves the driver unusable until Begin succeeds.
func (d *Dev) Begin() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == stateClosed {
		return errClosed
	}
	for _, w := range startup {
		if err := d.writeRegister(w.reg, w.value); err != nil {
			d.state = stateFailed
			d.err = err
			return err
		}
	}
	d.state = stateRunning
	d.err = nil
	return nil
}

// ChipID reads the id register. A BME280 returns ChipID.
func (d *Dev) ChipID() (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == stateClosed {
		return 0, errClosed
	}
	return d.readRegister8(regChipID)
}

// Calibration returns the trimming parameters, reading them from the device
// if they are not cached yet.
func (d *Dev) Calibration() (Calibration, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == stateClosed {
		return Calibration{}, errClosed
	}
	return d.calibration()
}

// ReadTemperature returns the current temperature in °C.
//
// Failures are never replaced by a default value: a bus error is returned as
// *BusWriteError or *BusReadError and a calibration error as
// *IncompleteCalibrationError.
func (d *Dev) ReadTemperature() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, centi, err := d.readTemperature()
	if err != nil {
		return 0, err
	}
	return float64(centi) / 100, nil
}

// readTemperature performs one raw read followed by compensation.
//
// It must be called with d.mu lock held.
func (d *Dev) readTemperature() (tFine, centi int32, err error) {
	switch d.state {
	case stateFailed:
		return 0, 0, fmt.Errorf("%w: %w", ErrNotConfigured, d.err)
	case stateClosed:
		return 0, 0, errClosed
	}
	raw, err := d.readMeasurement20(regTempMSB)
	if err != nil {
		return 0, 0, err
	}
	// The 4 least significant bits of xlsb are not part of the reading.
	raw >>= 4
	cal, err := d.calibration()
	if err != nil {
		return 0, 0, err
	}
	tFine, centi = cal.Compensate(raw)
	return tFine, centi, nil
}

// Sense reads the temperature from the device and writes the value to the
// specified env variable. Pressure and humidity are left at 0. Implements
// physic.SenseEnv.
func (d *Dev) Sense(env *physic.Env) error {
	env.Temperature = 0
	env.Pressure = 0
	env.Humidity = 0
	d.mu.Lock()
	defer d.mu.Unlock()
	_, centi, err := d.readTemperature()
	if err != nil {
		return err
	}
	env.Temperature = physic.Temperature(centi)*10*physic.MilliCelsius + physic.ZeroCelsius
	return nil
}

// SenseContinuous reads from the device every interval and writes the value
// to the returned channel. Failed reads are skipped. To terminate the
// continuous read, call Halt().
//
// The sensor is configured with a one second standby period, shorter
// intervals are rejected.
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval < standbyPeriod {
		return nil, fmt.Errorf("bme280: sample interval %s is shorter than the standby period %s", interval, standbyPeriod)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errors.New("bme280: SenseContinuous already running")
	}
	stop := make(chan struct{})
	d.stop = stop
	ch := make(chan physic.Env, 16)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				var e physic.Env
				if err := d.Sense(&e); err != nil {
					continue
				}
				select {
				case ch <- e:
				case <-stop:
					return
				}
			}
		}
	}()
	return ch, nil
}

// Precision returns the resolution of the integer compensation, 0.01 °C.
// Implements physic.SenseEnv.
func (d *Dev) Precision(env *physic.Env) {
	env.Temperature = 10 * physic.MilliCelsius
	env.Pressure = 0
	env.Humidity = 0
}

// Halt stops a SenseContinuous operation in progress. Implements
// conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
		d.wg.Wait()
	}
	return nil
}

// Close halts the device and releases the underlying channel.
func (d *Dev) Close() error {
	if err := d.Halt(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == stateClosed {
		return nil
	}
	d.state = stateClosed
	if c, ok := d.c.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("bme280: %s", d.name)
}

// i2cConn exposes a periph.io device as the write-then-read channel used by
// the register helpers. Each call is its own bus transaction.
type i2cConn struct {
	d *i2c.Dev
}

func (c *i2cConn) Write(b []byte) (int, error) {
	return c.d.Write(b)
}

func (c *i2cConn) Read(b []byte) (int, error) {
	if err := c.d.Tx(nil, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
