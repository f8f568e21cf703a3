// Copyright (c) 2026 DevLab Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sensors wraps the optional secondary environmental sensor that
// shares the barometer's I2C bus.
package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/bmxx80"
)

// EnvSample is one reading from the secondary environmental sensor.
type EnvSample struct {
	Temperature float64 `json:"temp_c"`       // °C
	PressureHPa float64 `json:"pressure_hpa"` // hPa
	Humidity    float64 `json:"humidity_pct"` // %RH
}

// Env drives the BME-family environmental sensor at its own address on the
// shared bus. It is a second address selection over one open bus, never a
// second open of the same device path.
type Env struct {
	dev *bmxx80.Dev
}

// NewEnv initializes the sensor at addr on bus.
func NewEnv(bus i2c.Bus, addr uint16) (*Env, error) {
	dev, err := bmxx80.NewI2C(bus, addr, &bmxx80.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("env sensor init at 0x%02X: %w", addr, err)
	}
	return &Env{dev: dev}, nil
}

// Read senses temperature, pressure and humidity.
func (e *Env) Read() (EnvSample, error) {
	var env physic.Env
	if err := e.dev.Sense(&env); err != nil {
		return EnvSample{}, fmt.Errorf("env sensor sense: %w", err)
	}

	pressurePa := float64(env.Pressure) / float64(physic.Pascal)
	return EnvSample{
		Temperature: env.Temperature.Celsius(),
		PressureHPa: pressurePa / 100.0, // 1 hPa = 100 Pa
		Humidity:    float64(env.Humidity) / float64(physic.PercentRH),
	}, nil
}

// Halt puts the sensor back into sleep mode.
func (e *Env) Halt() error {
	return e.dev.Halt()
}
