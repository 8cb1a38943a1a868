// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

// Calibration holds the factory trimming parameters of the temperature path.
type Calibration struct {
	T1 uint16
	T2 int16
	T3 int16
}

// Compensate converts a 20 bit raw temperature to t_fine and to °C with a
// resolution of 0.01 °C. A centi value of 5123 equals 51.23 °C.
//
// This is the 32 bit integer formula from section 4.2.3 of the datasheet.
func (c Calibration) Compensate(raw uint32) (tFine, centi int32) {
	adc, t1, t2, t3 := int32(raw), int32(c.T1), int32(c.T2), int32(c.T3)

	var1 := (((adc >> 3) - (t1 << 1)) * t2) >> 11
	d := (adc >> 4) - t1
	var2 := (((d * d) >> 12) * t3) >> 14
	tFine = var1 + var2
	centi = (tFine*5 + 128) >> 8
	return tFine, centi
}

// Celsius returns the compensated temperature in °C.
func (c Calibration) Celsius(raw uint32) float64 {
	_, centi := c.Compensate(raw)
	return float64(centi) / 100
}

var calibrationRegisters = [...]byte{regCalibT1, regCalibT2, regCalibT3}

// calibration returns the cached trimming parameters, reading them from the
// device on first use. Either all three words are read or nothing is cached.
//
// It must be called with d.mu lock held.
func (d *Dev) calibration() (Calibration, error) {
	if d.cal != nil {
		return *d.cal, nil
	}
	var words [len(calibrationRegisters)]uint16
	for i, reg := range calibrationRegisters {
		w, err := d.readCalibration16(reg)
		if err != nil {
			return Calibration{}, &IncompleteCalibrationError{Reg: reg, Err: err}
		}
		words[i] = w
	}
	c := Calibration{T1: words[0], T2: int16(words[1]), T3: int16(words[2])}
	d.cal = &c
	return c, nil
}
