// Copyright (c) 2026 DevLab Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package icp10111 drives the ICP-10111 barometric pressure sensor over I2C.
//
// The device has no conventional register map: a measurement is triggered by
// writing a 3-byte command, waiting for the conversion to settle, and reading
// back a fixed-length reply. Pressure and temperature are separate
// conversions with separate commands and reply lengths.
package icp10111

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"periph.io/x/conn/v3/i2c"

	"github.com/devlab-hw/baro_station/internal/baro"
)

// DefaultAddr is the sensor's fixed 7-bit I2C address.
const DefaultAddr uint16 = 0x63

// Measurement trigger commands: register address pair plus trigger byte.
var (
	cmdMeasurePressure    = []byte{0x48, 0xA3, 0x00}
	cmdMeasureTemperature = []byte{0x60, 0x9C, 0x00}
)

// Reply lengths per measurement type. The pressure reply carries a
// pressure+temperature burst, the temperature reply temperature only.
const (
	pressureReplyLen    = 9
	temperatureReplyLen = 6
)

// Opts holds the acquisition options.
type Opts struct {
	// PressureSettle is the wait between the pressure trigger command and
	// the reply read.
	PressureSettle time.Duration
	// TemperatureSettle is the wait between the temperature trigger command
	// and the reply read.
	TemperatureSettle time.Duration
	// CheckCRC enables CRC-8 validation of the reply words. The reference
	// integration example trusts the wire bytes, so this defaults to off.
	CheckCRC bool
	// Clock supplies the settle sleeps. Defaults to the wall clock.
	Clock clock.Clock
}

// DefaultOpts matches the reference example's timing: the sensor converts in
// 1.6 ms typical, these are the conservative margins the documentation uses.
var DefaultOpts = Opts{
	PressureSettle:    100 * time.Millisecond,
	TemperatureSettle: 50 * time.Millisecond,
}

// Dev is an open handle to one ICP-10111 on an I2C bus.
//
// The mutex serializes measurement transactions: a full write-settle-read
// cycle is never interleaved with another, and ReadBoth holds the lock
// across both cycles so the pressure conversion always completes before the
// temperature command reaches the device.
type Dev struct {
	mu   sync.Mutex
	dev  i2c.Dev
	opts Opts
	clk  clock.Clock
}

// New prepares a handle for the sensor at addr on bus. It performs no bus
// traffic; the first measurement does.
func New(bus i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if addr > 0x7F {
		return nil, fmt.Errorf("icp10111: 0x%X is not a valid 7-bit I2C address", addr)
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	clk := o.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Dev{dev: i2c.Dev{Bus: bus, Addr: addr}, opts: o, clk: clk}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("ICP-10111{%s}", &d.dev)
}

// ReadPressure triggers a pressure conversion and returns the result in hPa.
func (d *Dev) ReadPressure() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readPressure()
}

// ReadTemperature triggers a temperature conversion and returns the result
// in °C.
func (d *Dev) ReadTemperature() (float64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readTemperature()
}

// ReadBoth runs one full pressure cycle followed by one full temperature
// cycle. Both are always attempted: a transport failure on one side is
// reported in its own slot of the Measurement and does not stop the other.
// There is no retry; a failed operation surfaces immediately.
func (d *Dev) ReadBoth() baro.Measurement {
	d.mu.Lock()
	defer d.mu.Unlock()
	var m baro.Measurement
	m.Pressure, m.PressureErr = d.readPressure()
	m.Temperature, m.TemperatureErr = d.readTemperature()
	return m
}

func (d *Dev) readPressure() (float64, error) {
	raw, err := d.measure(cmdMeasurePressure, d.opts.PressureSettle, pressureReplyLen)
	if err != nil {
		return 0, err
	}
	if d.opts.CheckCRC {
		if err := checkWords(raw); err != nil {
			return 0, err
		}
	}
	return pressureFromRaw(raw), nil
}

func (d *Dev) readTemperature() (float64, error) {
	raw, err := d.measure(cmdMeasureTemperature, d.opts.TemperatureSettle, temperatureReplyLen)
	if err != nil {
		return 0, err
	}
	if d.opts.CheckCRC {
		if err := checkWords(raw); err != nil {
			return 0, err
		}
	}
	return temperatureFromRaw(raw), nil
}

// measure performs one write-settle-read transaction. The command write and
// the reply read are separate bus transactions; the settle wait between them
// gives the sensor time to finish the conversion.
func (d *Dev) measure(cmd []byte, settle time.Duration, replyLen int) ([]byte, error) {
	if err := d.dev.Tx(cmd, nil); err != nil {
		return nil, &TransportError{Op: "write command", Err: err}
	}
	d.clk.Sleep(settle)
	buf := make([]byte, replyLen)
	if err := d.dev.Tx(nil, buf); err != nil {
		return nil, &TransportError{Op: "read reply", Err: err}
	}
	return buf, nil
}
