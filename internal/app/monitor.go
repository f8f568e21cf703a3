// Copyright (c) 2026 DevLab Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/devlab-hw/baro_station/internal/baro"
	"github.com/devlab-hw/baro_station/internal/config"
	"github.com/devlab-hw/baro_station/internal/icp10111"
	"github.com/devlab-hw/baro_station/internal/sensors"
)

const errMarker = "Error"

// envSensor is what the monitor needs from the optional secondary sensor.
type envSensor interface {
	Read() (sensors.EnvSample, error)
	Halt() error
}

// Monitor polls the barometric sensor and writes one table row per cycle.
type Monitor struct {
	log  *slog.Logger
	out  io.Writer
	baro *icp10111.Dev
	env  envSensor // nil when the secondary sensor is disabled
}

// RunMonitor opens the bus, initializes the sensors and polls until ctx is
// cancelled or maxSamples rows have been written (0 means no bound).
//
// Initial bus acquisition failure is returned to the caller, which must
// terminate the process with a non-zero status without attempting any reads.
// Per-cycle failures only mark the failing column and never stop the loop.
func RunMonitor(ctx context.Context, log *slog.Logger, out io.Writer, maxSamples int) error {
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

	m.printBanner(cfg)
	return m.run(ctx, cfg.SampleInterval(), maxSamples)
}

// newMonitor wires the sensor handles onto an already-open bus. The
// secondary sensor is best-effort: if it fails to initialize the monitor
// runs without it.
func newMonitor(log *slog.Logger, out io.Writer, bus i2c.Bus, cfg *config.Config) (*Monitor, error) {
	opts := icp10111.Opts{
		PressureSettle:    cfg.PressureSettle(),
		TemperatureSettle: cfg.TempSettle(),
		CheckCRC:          cfg.BaroCRCCheck,
	}
	dev, err := icp10111.New(bus, cfg.BaroI2CAddr, &opts)
	if err != nil {
		return nil, err
	}

	m := &Monitor{log: log, out: out, baro: dev}

	if cfg.EnvSensorEnabled {
		env, err := sensors.NewEnv(bus, cfg.EnvI2CAddr)
		if err != nil {
			// The secondary sensor never blocks the primary one.
			log.Warn("env sensor unavailable", "addr", fmt.Sprintf("0x%02X", cfg.EnvI2CAddr), "err", err)
		} else {
			m.env = env
			log.Info("env sensor initialized", "addr", fmt.Sprintf("0x%02X", cfg.EnvI2CAddr))
		}
	}

	return m, nil
}

// run prints the table header and then one row per interval. Cancellation
// happens between cycles, never mid-measurement.
func (m *Monitor) run(ctx context.Context, interval time.Duration, maxSamples int) error {
	m.printHeader()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sample := 0
	for {
		sample++
		fmt.Fprintln(m.out, m.row(sample))

		if maxSamples > 0 && sample >= maxSamples {
			return nil
		}

		select {
		case <-ctx.Done():
			m.log.Info("monitor shutting down", "samples", sample)
			return nil
		case <-ticker.C:
		}
	}
}

// row acquires one cycle and renders its columns. Out-of-range conversions
// are demoted to errors here: the simplified linear transform is not
// bounds-checked, so the operating-range check belongs to the caller.
func (m *Monitor) row(sample int) string {
	meas := m.baro.ReadBoth()

	if meas.PressureErr != nil {
		m.log.Warn("pressure read failed", "err", meas.PressureErr)
	} else if err := baro.ValidatePressure(meas.Pressure); err != nil {
		m.log.Warn("pressure out of range", "err", err)
		meas.PressureErr = err
	}

	if meas.TemperatureErr != nil {
		m.log.Warn("temperature read failed", "err", meas.TemperatureErr)
	} else if err := baro.ValidateTemperature(meas.Temperature); err != nil {
		m.log.Warn("temperature out of range", "err", err)
		meas.TemperatureErr = err
	}

	row := formatRow(sample, meas)
	if m.env != nil {
		row += m.envColumn()
	}
	return row
}

// formatRow renders the fixed-width columns of the documented table. A
// failing quantity shows the error marker; the other still prints.
func formatRow(sample int, m baro.Measurement) string {
	p := fmt.Sprintf("%13s", errMarker)
	if m.PressureErr == nil {
		p = fmt.Sprintf("%13.2f", m.Pressure)
	}

	t := fmt.Sprintf("%15s", errMarker)
	if m.TemperatureErr == nil {
		t = fmt.Sprintf("%15.2f", m.Temperature)
	}

	return fmt.Sprintf("%6d | %s | %s", sample, p, t)
}

// close puts the optional secondary sensor back to sleep.
func (m *Monitor) close() {
	if m.env == nil {
		return
	}
	if err := m.env.Halt(); err != nil {
		m.log.Warn("env sensor halt failed", "err", err)
	}
}

// envColumn renders the humidity column appended when the secondary sensor
// is enabled.
func (m *Monitor) envColumn() string {
	es, err := m.env.Read()
	if err != nil {
		m.log.Warn("env sensor read failed", "err", err)
		return fmt.Sprintf(" | %12s", errMarker)
	}
	return fmt.Sprintf(" | %12.2f", es.Humidity)
}

func (m *Monitor) printBanner(cfg *config.Config) {
	fmt.Fprintln(m.out, "========================================")
	fmt.Fprintln(m.out, "  ICP-10111 Barometric Pressure Sensor")
	fmt.Fprintln(m.out, "========================================")
	fmt.Fprintf(m.out, "I2C Address: 0x%02X\n", cfg.BaroI2CAddr)
	fmt.Fprintf(m.out, "I2C Bus: %s\n", cfg.I2CBus)
	fmt.Fprintln(m.out, "Pressure Range: 300-1250 hPa")
	fmt.Fprintln(m.out, "Accuracy: ±0.4 hPa @ 25°C")
	fmt.Fprintln(m.out, "========================================")
	fmt.Fprintln(m.out)
}

func (m *Monitor) printHeader() {
	header := "Sample | Pressure (hPa) | Temperature (°C)"
	rule := "-------|----------------|------------------"
	if m.env != nil {
		header += " | Humidity (%)"
		rule += "|--------------"
	}
	fmt.Fprintln(m.out, header)
	fmt.Fprintln(m.out, rule)
}
