package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "baro_config.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "# empty on purpose\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.I2CBus != "1" {
		t.Errorf("I2CBus = %q; want \"1\"", cfg.I2CBus)
	}
	if cfg.BaroI2CAddr != 0x63 {
		t.Errorf("BaroI2CAddr = 0x%X; want 0x63", cfg.BaroI2CAddr)
	}
	if cfg.EnvI2CAddr != 0x77 {
		t.Errorf("EnvI2CAddr = 0x%X; want 0x77", cfg.EnvI2CAddr)
	}
	if cfg.PressureSettle() != 100*time.Millisecond {
		t.Errorf("PressureSettle = %v; want 100ms", cfg.PressureSettle())
	}
	if cfg.TempSettle() != 50*time.Millisecond {
		t.Errorf("TempSettle = %v; want 50ms", cfg.TempSettle())
	}
	if cfg.SampleInterval() != time.Second {
		t.Errorf("SampleInterval = %v; want 1s", cfg.SampleInterval())
	}
	if cfg.BaroCRCCheck || cfg.EnvSensorEnabled {
		t.Error("CRC check and env sensor should default to off")
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v; want info", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, strings.Join([]string{
		"I2C_BUS=/dev/i2c-3",
		"BARO_I2C_ADDR=0x63",
		"BARO_PRESSURE_SETTLE_MS=2",
		"BARO_TEMP_SETTLE_MS=1",
		"BARO_CRC_CHECK=true",
		"ENV_SENSOR_ENABLED=true",
		"ENV_I2C_ADDR=0x77",
		"SAMPLE_INTERVAL_MS=250",
		"LOG_LEVEL=debug",
	}, "\n")))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.I2CBus != "/dev/i2c-3" {
		t.Errorf("I2CBus = %q", cfg.I2CBus)
	}
	if !cfg.BaroCRCCheck {
		t.Error("BaroCRCCheck = false; want true")
	}
	if !cfg.EnvSensorEnabled {
		t.Error("EnvSensorEnabled = false; want true")
	}
	if cfg.BaroPressureSettleMS != 2 || cfg.BaroTempSettleMS != 1 {
		t.Errorf("settle = %d/%d; want 2/1", cfg.BaroPressureSettleMS, cfg.BaroTempSettleMS)
	}
	if cfg.SampleIntervalMS != 250 {
		t.Errorf("SampleIntervalMS = %d; want 250", cfg.SampleIntervalMS)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v; want debug", cfg.LogLevel)
	}
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name     string
		contents string
	}{
		{"malformed line", "JUST_A_KEY\n"},
		{"unknown key", "NOT_A_KEY=1\n"},
		{"bad address", "BARO_I2C_ADDR=0xZZ\n"},
		{"address not 7-bit", "BARO_I2C_ADDR=0x80\n"},
		{"zero interval", "SAMPLE_INTERVAL_MS=0\n"},
		{"negative settle", "BARO_PRESSURE_SETTLE_MS=-1\n"},
		{"env address collision", "ENV_SENSOR_ENABLED=true\nENV_I2C_ADDR=0x63\n"},
		{"bad bool", "BARO_CRC_CHECK=maybe\n"},
		{"bad level", "LOG_LEVEL=chatty\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tc.contents)); err == nil {
				t.Errorf("Load(%q) succeeded; want error", tc.contents)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Load of missing file succeeded; want error")
	}
}
