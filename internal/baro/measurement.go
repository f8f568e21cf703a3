// Copyright (c) 2026 DevLab Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package baro defines the measurement model shared by the sensor driver and
// the acquisition loop.
package baro

import "fmt"

// Operating range of the sensor per the datasheet. A converted value outside
// these bounds indicates a transport or sensor fault, not a valid physical
// reading, and must be treated as an error signal rather than clamped.
const (
	MinPressureHPa  = 300.0
	MaxPressureHPa  = 1250.0
	MinTemperatureC = -40.0
	MaxTemperatureC = 85.0
)

// Measurement is one polling cycle's result. Pressure and temperature are
// acquired independently: each slot carries its own error and a failure on
// one side never invalidates the other. A Measurement is created once per
// cycle and never mutated afterwards.
type Measurement struct {
	Pressure    float64 // hPa, meaningless unless PressureErr is nil
	Temperature float64 // °C, meaningless unless TemperatureErr is nil

	PressureErr    error
	TemperatureErr error
}

// RangeError reports a converted value outside the documented physical
// operating range. The conversion routine never raises it; validation is the
// caller's responsibility.
type RangeError struct {
	Quantity string
	Value    float64
	Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %.2f outside operating range [%g, %g]", e.Quantity, e.Value, e.Min, e.Max)
}

// ValidatePressure checks a converted pressure against the sensor's
// operating range.
func ValidatePressure(hPa float64) error {
	if hPa < MinPressureHPa || hPa > MaxPressureHPa {
		return &RangeError{Quantity: "pressure (hPa)", Value: hPa, Min: MinPressureHPa, Max: MaxPressureHPa}
	}
	return nil
}

// ValidateTemperature checks a converted temperature against the sensor's
// operating range.
func ValidateTemperature(celsius float64) error {
	if celsius < MinTemperatureC || celsius > MaxTemperatureC {
		return &RangeError{Quantity: "temperature (°C)", Value: celsius, Min: MinTemperatureC, Max: MaxTemperatureC}
	}
	return nil
}
