// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"periph.io/x/conn/v3/physic"
)

// Register addresses. The set is fixed by the device; only the registers
// this driver manages are listed.
const (
	regDevID      = 0x00 // Device ID, reads 0xE5 on a genuine part
	regOffsetX    = 0x1E // X-axis offset
	regOffsetY    = 0x1F // Y-axis offset
	regOffsetZ    = 0x20 // Z-axis offset
	regBwRate     = 0x2C // Data rate and power mode control
	regPowerCtl   = 0x2D // Power saving features control
	regDataFormat = 0x31 // Data format control
	regDataX0     = 0x32 // First of six contiguous output bytes, X low
)

const (
	// DeviceID is the expected content of the identity register.
	DeviceID byte = 0xE5

	// DefaultAddr is the I²C address with the ALT ADDRESS pin grounded.
	// AltAddr applies when the pin is tied high.
	DefaultAddr uint16 = 0x53
	AltAddr     uint16 = 0x1D

	powerCtlMeasure byte = 0x08 // measure bit on, auto-sleep off
	powerCtlStandby byte = 0x00

	fullResBit    byte = 0x08 // DATA_FORMAT full resolution enable
	rangeMask     byte = 0x03
	rateMask      byte = 0x0F
	formatLowMask byte = 0x0F

	// In full resolution mode the scale stays at 4mg/LSB across all ranges.
	gPerLSB = 0.004
	// Standard gravity, m/s² per g.
	gravity = 9.80665
)

// Range selects the measurement range of the device. The driver always
// enables full resolution mode alongside the range, so the output scale is
// the same for all four values.
type Range byte

const (
	Range2G  Range = 0x0 // ±2g
	Range4G  Range = 0x1 // ±4g
	Range8G  Range = 0x2 // ±8g
	Range16G Range = 0x3 // ±16g
)

func (r Range) valid() bool {
	return r <= Range16G
}

// String returns a human readable name for the range, or "unknown" for a
// value outside the four defined codes.
func (r Range) String() string {
	switch r {
	case Range2G:
		return "±2g"
	case Range4G:
		return "±4g"
	case Range8G:
		return "±8g"
	case Range16G:
		return "±16g"
	default:
		return "unknown"
	}
}

// Rate selects the output data rate of the device, per the BW_RATE table
// of the datasheet. Writing a rate always forces the low power bit off.
type Rate byte

const (
	Rate0Hz10  Rate = 0x0 // 0.10Hz
	Rate0Hz20  Rate = 0x1 // 0.20Hz
	Rate0Hz39  Rate = 0x2 // 0.39Hz
	Rate0Hz78  Rate = 0x3 // 0.78Hz
	Rate1Hz56  Rate = 0x4 // 1.56Hz
	Rate3Hz13  Rate = 0x5 // 3.13Hz
	Rate6Hz25  Rate = 0x6 // 6.25Hz
	Rate12Hz5  Rate = 0x7 // 12.5Hz
	Rate25Hz   Rate = 0x8
	Rate50Hz   Rate = 0x9
	Rate100Hz  Rate = 0xA
	Rate200Hz  Rate = 0xB
	Rate400Hz  Rate = 0xC
	Rate800Hz  Rate = 0xD
	Rate1600Hz Rate = 0xE
	Rate3200Hz Rate = 0xF
)

var rateNames = [...]string{
	"0.10Hz", "0.20Hz", "0.39Hz", "0.78Hz",
	"1.56Hz", "3.13Hz", "6.25Hz", "12.5Hz",
	"25Hz", "50Hz", "100Hz", "200Hz",
	"400Hz", "800Hz", "1600Hz", "3200Hz",
}

var rateFrequencies = [...]physic.Frequency{
	100 * physic.MilliHertz, 200 * physic.MilliHertz,
	390 * physic.MilliHertz, 780 * physic.MilliHertz,
	1560 * physic.MilliHertz, 3130 * physic.MilliHertz,
	6250 * physic.MilliHertz, 12500 * physic.MilliHertz,
	25 * physic.Hertz, 50 * physic.Hertz,
	100 * physic.Hertz, 200 * physic.Hertz,
	400 * physic.Hertz, 800 * physic.Hertz,
	1600 * physic.Hertz, 3200 * physic.Hertz,
}

func (r Rate) valid() bool {
	return r <= Rate3200Hz
}

// String returns a human readable name for the rate, or "unknown" for a
// value outside the sixteen defined codes.
func (r Rate) String() string {
	if !r.valid() {
		return "unknown"
	}
	return rateNames[r]
}

// Frequency returns the output data rate as a physic.Frequency, or 0 for a
// value outside the sixteen defined codes.
func (r Rate) Frequency() physic.Frequency {
	if !r.valid() {
		return 0
	}
	return rateFrequencies[r]
}

// decodeInt16 combines an output register pair, low byte first, into the
// two's complement 16-bit value the device delivers.
func decodeInt16(lo, hi byte) int16 {
	return int16(uint16(hi)<<8 | uint16(lo))
}

// encodeRange merges a range code into the current DATA_FORMAT content.
// The low four bits are replaced by the range code plus the full resolution
// bit; the upper four bits carry settings this driver does not manage and
// pass through untouched.
func encodeRange(format byte, r Range) (byte, error) {
	if !r.valid() {
		return 0, &InvalidConfigurationError{Value: int(r)}
	}
	return format&^formatLowMask | byte(r) | fullResBit, nil
}

// encodeRate returns the BW_RATE content for a rate code. The driver owns
// the whole register: the low power bit is forced off and the reserved
// upper bits are written as zero.
func encodeRate(r Rate) (byte, error) {
	if !r.valid() {
		return 0, &InvalidConfigurationError{Value: int(r)}
	}
	return byte(r) & rateMask, nil
}

func decodeRange(format byte) Range {
	return Range(format & rangeMask)
}

func decodeRate(b byte) Rate {
	return Rate(b & rateMask)
}
