package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds all application configuration values.
type Config struct {
	// I2C
	I2CBus      string
	BaroI2CAddr uint16

	// Barometer timing. The sensor converts in 1.6 ms typical; the defaults
	// keep the conservative margins from the module documentation.
	BaroPressureSettleMS int
	BaroTempSettleMS     int

	// CRC validation of reply words (off in the reference example).
	BaroCRCCheck bool

	// Optional secondary environmental sensor on the same bus.
	EnvSensorEnabled bool
	EnvI2CAddr       uint16

	// Polling
	SampleIntervalMS int

	// Logging
	LogLevel slog.Level
}

// Package-level unexported variables for the singleton: globalConfig is only
// set through InitGlobal and read through Get, behind configMu.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// defaults returns a Config pre-filled with the reference example's values,
// so a minimal config file only needs to override what differs.
func defaults() *Config {
	return &Config{
		I2CBus:               "1",
		BaroI2CAddr:          0x63,
		BaroPressureSettleMS: 100,
		BaroTempSettleMS:     50,
		BaroCRCCheck:         false,
		EnvSensorEnabled:     false,
		EnvI2CAddr:           0x77,
		SampleIntervalMS:     1000,
		LogLevel:             slog.LevelInfo,
	}
}

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := defaults()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	case "I2C_BUS":
		c.I2CBus = value

	case "BARO_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid BARO_I2C_ADDR %q: %w", value, err)
		}
		c.BaroI2CAddr = uint16(addr)

	case "BARO_PRESSURE_SETTLE_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid BARO_PRESSURE_SETTLE_MS %q: %w", value, err)
		}
		c.BaroPressureSettleMS = ms

	case "BARO_TEMP_SETTLE_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid BARO_TEMP_SETTLE_MS %q: %w", value, err)
		}
		c.BaroTempSettleMS = ms

	case "BARO_CRC_CHECK":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid BARO_CRC_CHECK %q: %w", value, err)
		}
		c.BaroCRCCheck = b

	case "ENV_SENSOR_ENABLED":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid ENV_SENSOR_ENABLED %q: %w", value, err)
		}
		c.EnvSensorEnabled = b

	case "ENV_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid ENV_I2C_ADDR %q: %w", value, err)
		}
		c.EnvI2CAddr = uint16(addr)

	case "SAMPLE_INTERVAL_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_INTERVAL_MS %q: %w", value, err)
		}
		c.SampleIntervalMS = ms

	case "LOG_LEVEL":
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid LOG_LEVEL %q: %w", value, err)
		}
		c.LogLevel = lvl

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all fields hold usable values.
func (c *Config) validate() error {
	if c.I2CBus == "" {
		return fmt.Errorf("I2C_BUS is required")
	}
	if c.BaroI2CAddr == 0 || c.BaroI2CAddr > 0x7F {
		return fmt.Errorf("BARO_I2C_ADDR must be a nonzero 7-bit address, got 0x%X", c.BaroI2CAddr)
	}
	if c.EnvSensorEnabled && (c.EnvI2CAddr == 0 || c.EnvI2CAddr > 0x7F) {
		return fmt.Errorf("ENV_I2C_ADDR must be a nonzero 7-bit address, got 0x%X", c.EnvI2CAddr)
	}
	if c.EnvSensorEnabled && c.EnvI2CAddr == c.BaroI2CAddr {
		return fmt.Errorf("ENV_I2C_ADDR 0x%X collides with BARO_I2C_ADDR", c.EnvI2CAddr)
	}
	if c.BaroPressureSettleMS < 0 || c.BaroTempSettleMS < 0 {
		return fmt.Errorf("settle delays must not be negative")
	}
	if c.SampleIntervalMS <= 0 {
		return fmt.Errorf("SAMPLE_INTERVAL_MS must be positive, got %d", c.SampleIntervalMS)
	}
	return nil
}

// PressureSettle returns the pressure settle delay as a Duration.
func (c *Config) PressureSettle() time.Duration {
	return time.Duration(c.BaroPressureSettleMS) * time.Millisecond
}

// TempSettle returns the temperature settle delay as a Duration.
func (c *Config) TempSettle() time.Duration {
	return time.Duration(c.BaroTempSettleMS) * time.Millisecond
}

// SampleInterval returns the polling interval as a Duration.
func (c *Config) SampleInterval() time.Duration {
	return time.Duration(c.SampleIntervalMS) * time.Millisecond
}

// InitGlobal initializes the global configuration from file. Uses sync.Once
// so only the first call loads; later calls are no-ops.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must have been
// called first, or this returns nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
