package baro

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePressure(t *testing.T) {
	for _, v := range []float64{1013.25, MinPressureHPa, MaxPressureHPa} {
		if err := ValidatePressure(v); err != nil {
			t.Errorf("ValidatePressure(%v) = %v; want nil", v, err)
		}
	}

	for _, v := range []float64{299.99, 1250.01, 10175.04, 0} {
		err := ValidatePressure(v)
		var re *RangeError
		if !errors.As(err, &re) {
			t.Errorf("ValidatePressure(%v) = %v; want *RangeError", v, err)
			continue
		}
		if re.Value != v {
			t.Errorf("RangeError.Value = %v; want %v", re.Value, v)
		}
	}
}

func TestValidateTemperature(t *testing.T) {
	for _, v := range []float64{25, MinTemperatureC, MaxTemperatureC} {
		if err := ValidateTemperature(v); err != nil {
			t.Errorf("ValidateTemperature(%v) = %v; want nil", v, err)
		}
	}

	for _, v := range []float64{-40.01, 85.01, 615.35} {
		if err := ValidateTemperature(v); err == nil {
			t.Errorf("ValidateTemperature(%v) = nil; want *RangeError", v)
		}
	}
}

func TestRangeErrorMessage(t *testing.T) {
	err := ValidatePressure(10175.04)
	if err == nil {
		t.Fatal("want error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "10175.04") || !strings.Contains(msg, "pressure") {
		t.Errorf("message %q should name the quantity and value", msg)
	}
}
