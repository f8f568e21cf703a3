// Copyright (c) 2026 DevLab Team
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package icp10111

import "fmt"

// TransportError reports an I2C write or read failure. It wraps the
// underlying bus error and is fatal to the attempted operation; the driver
// never retries on its own.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("icp10111: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ChecksumError reports a CRC-8 mismatch on a reply word when CRC checking
// is enabled. Word is the index of the failing 16-bit word within the reply.
type ChecksumError struct {
	Word int
	Want byte
	Got  byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("icp10111: reply word %d CRC mismatch: calculated 0x%02X, wire carries 0x%02X", e.Word, e.Want, e.Got)
}
