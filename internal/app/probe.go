// Copyright (c) 2026 DevLab Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/devlab-hw/baro_station/internal/config"
)

// RunProbe performs a single read of every configured sensor and prints the
// values. The returned error is non-nil if either primary quantity failed,
// so the process exits non-zero on a broken sensor.
func RunProbe(log *slog.Logger, out io.Writer) error {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("i2c open %q: %w", cfg.I2CBus, err)
	}
	defer bus.Close()

	m, err := newMonitor(log, out, bus, cfg)
	if err != nil {
		return err
	}
	defer m.close()

	meas := m.baro.ReadBoth()
	if meas.PressureErr == nil {
		fmt.Fprintf(out, "Pressure:    %.2f hPa\n", meas.Pressure)
	} else {
		fmt.Fprintf(out, "Pressure:    %s\n", errMarker)
	}
	if meas.TemperatureErr == nil {
		fmt.Fprintf(out, "Temperature: %.2f °C\n", meas.Temperature)
	} else {
		fmt.Fprintf(out, "Temperature: %s\n", errMarker)
	}

	if m.env != nil {
		if es, err := m.env.Read(); err != nil {
			log.Warn("env sensor read failed", "err", err)
		} else {
			fmt.Fprintf(out, "Env:         %.2f °C  %.2f hPa  %.2f %%RH\n",
				es.Temperature, es.PressureHPa, es.Humidity)
		}
	}

	return errors.Join(meas.PressureErr, meas.TemperatureErr)
}
