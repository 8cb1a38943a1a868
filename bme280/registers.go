// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bme280

// Addresses of registers to read/write.
const (
	regCalibT1  byte = 0x88
	regCalibT2  byte = 0x8A
	regCalibT3  byte = 0x8C
	regChipID   byte = 0xD0
	regCtrlHum  byte = 0xF2
	regCtrlMeas byte = 0xF4
	regConfig   byte = 0xF5
	regTempMSB  byte = 0xFA
)

// writeRegister writes value to reg in a single two byte transaction.
func (d *Dev) writeRegister(reg, value byte) error {
	n, err := d.c.Write([]byte{reg, value})
	if err != nil || n != 2 {
		return &BusWriteError{Reg: reg, Want: 2, Got: n, Err: err}
	}
	return nil
}

// readBlock selects reg and reads len(b) consecutive bytes. The device
// auto-increments the register address on each byte.
func (d *Dev) readBlock(reg byte, b []byte) error {
	n, err := d.c.Write([]byte{reg})
	if err != nil || n != 1 {
		return &BusWriteError{Reg: reg, Want: 1, Got: n, Err: err}
	}
	n, err = d.c.Read(b)
	if err != nil || n != len(b) {
		return &BusReadError{Reg: reg, Want: len(b), Got: n, Err: err}
	}
	return nil
}

func (d *Dev) readRegister8(reg byte) (byte, error) {
	var b [1]byte
	if err := d.readBlock(reg, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// readCalibration16 reads one of the little-endian trimming words.
func (d *Dev) readCalibration16(reg byte) (uint16, error) {
	var b [2]byte
	if err := d.readBlock(reg, b[:]); err != nil {
		return 0, err
	}
	return calibrationWord(b), nil
}

// readMeasurement20 reads a big-endian msb/lsb/xlsb measurement block. The
// result still carries the 4 padding bits of xlsb.
func (d *Dev) readMeasurement20(reg byte) (uint32, error) {
	var b [3]byte
	if err := d.readBlock(reg, b[:]); err != nil {
		return 0, err
	}
	return measurementWord(b), nil
}

// calibrationWord assembles a trimming word. The NVM stores the low byte
// first.
func calibrationWord(b [2]byte) uint16 {
	return uint16(b[1])<<8 | uint16(b[0])
}

// measurementWord assembles a data register block. The ADC output is stored
// most significant byte first.
func measurementWord(b [3]byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
