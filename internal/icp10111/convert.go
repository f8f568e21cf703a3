// Copyright (c) 2026 DevLab Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package icp10111

// pressureFromRaw converts the 9-byte pressure reply to hPa. The first three
// bytes form a 24-bit unsigned big-endian integer scaled by 1/100.
//
// This is the simplified linear transform from the module documentation, not
// the sensor's factory-calibrated algorithm: no calibration coefficients and
// no temperature compensation. No bounds check is applied here; validating
// against the operating range is the caller's job (see package baro).
//
// Note that on the wire the reply is laid out as 16-bit words each followed
// by a CRC byte, so byte 2 here is word 0's CRC. The documented transform
// reads it as data anyway, and this function keeps that behavior verbatim
// whether or not CRC checking is enabled.
func pressureFromRaw(raw []byte) float64 {
	v := uint32(raw[0])<<16 | uint32(raw[1])<<8 | uint32(raw[2])
	return float64(v) / 100.0
}

// temperatureFromRaw converts the 6-byte temperature reply to °C. The first
// two bytes form a 16-bit unsigned big-endian integer; the scale is 1/100
// with a -40 offset.
func temperatureFromRaw(raw []byte) float64 {
	v := uint16(raw[0])<<8 | uint16(raw[1])
	return float64(v)/100.0 - 40.0
}

// checkWords validates a reply laid out as 16-bit words each followed by a
// CRC byte.
func checkWords(raw []byte) error {
	for i := 0; i+3 <= len(raw); i += 3 {
		want := crc8(raw[i : i+2])
		if got := raw[i+2]; got != want {
			return &ChecksumError{Word: i / 3, Want: want, Got: got}
		}
	}
	return nil
}

// crc8 is the sensor's wire CRC: polynomial 0x31, initialization 0xFF.
func crc8(buf []byte) byte {
	crc := byte(0xFF)
	for _, v := range buf {
		crc ^= v
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x31
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
