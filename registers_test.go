// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"errors"
	"math"
	"testing"

	"periph.io/x/conn/v3/physic"
)

func TestDecodeInt16(t *testing.T) {
	for _, test := range []struct {
		lo, hi byte
		want   int16
	}{
		{0x00, 0x00, 0},
		{0x10, 0x01, 272},
		{0xFF, 0x7F, 32767},
		{0x00, 0x80, -32768},
		{0xFF, 0xFF, -1},
		{0x06, 0xFF, -250},
	} {
		if got := decodeInt16(test.lo, test.hi); got != test.want {
			t.Errorf("decodeInt16(%#02x, %#02x) = %d, want %d", test.lo, test.hi, got, test.want)
		}
	}
}

func TestScaling(t *testing.T) {
	raw := decodeInt16(0x10, 0x01)
	g := float64(raw) * gPerLSB
	if math.Abs(g-1.088) > 1e-9 {
		t.Errorf("gravity scale of %d = %g, want 1.088", raw, g)
	}
	ms2 := g * gravity
	if math.Abs(ms2-10.6760752) > 1e-7 {
		t.Errorf("SI scale of %g g = %g, want 10.6760752", g, ms2)
	}
}

func TestRateRoundTrip(t *testing.T) {
	for r := Rate0Hz10; r <= Rate3200Hz; r++ {
		b, err := encodeRate(r)
		if err != nil {
			t.Fatalf("encodeRate(%d): %v", r, err)
		}
		if b&0x10 != 0 {
			t.Errorf("encodeRate(%d) = %#02x, low power bit must be off", r, b)
		}
		if got := decodeRate(b); got != r {
			t.Errorf("decodeRate(encodeRate(%d)) = %d", r, got)
		}
	}
}

func TestRangeRoundTrip(t *testing.T) {
	// The prior register content must not leak into the decoded range, and
	// the full resolution bit must be set no matter what it was.
	for _, format := range []byte{0x00, 0xFF, 0xA5, 0x0B} {
		for r := Range2G; r <= Range16G; r++ {
			b, err := encodeRange(format, r)
			if err != nil {
				t.Fatalf("encodeRange(%#02x, %d): %v", format, r, err)
			}
			if b&fullResBit == 0 {
				t.Errorf("encodeRange(%#02x, %d) = %#02x, full resolution bit must be set", format, r, b)
			}
			if b&0xF0 != format&0xF0 {
				t.Errorf("encodeRange(%#02x, %d) = %#02x, upper bits not preserved", format, r, b)
			}
			if got := decodeRange(b); got != r {
				t.Errorf("decodeRange(encodeRange(%#02x, %d)) = %d", format, r, got)
			}
		}
	}
}

func TestEncodeInvalid(t *testing.T) {
	var icErr *InvalidConfigurationError
	for _, r := range []Range{4, 17, 0xFF} {
		if _, err := encodeRange(0, r); !errors.As(err, &icErr) {
			t.Errorf("encodeRange(0, %d) = %v, want InvalidConfigurationError", r, err)
		} else if icErr.Value != int(r) {
			t.Errorf("InvalidConfigurationError carries %d, want %d", icErr.Value, r)
		}
	}
	for _, r := range []Rate{16, 0x42, 0xFF} {
		if _, err := encodeRate(r); !errors.As(err, &icErr) {
			t.Errorf("encodeRate(%d) = %v, want InvalidConfigurationError", r, err)
		}
	}
}

func TestNames(t *testing.T) {
	for _, test := range []struct {
		s    interface{ String() string }
		want string
	}{
		{Range2G, "±2g"},
		{Range16G, "±16g"},
		{Range(9), "unknown"},
		{Rate0Hz10, "0.10Hz"},
		{Rate12Hz5, "12.5Hz"},
		{Rate3200Hz, "3200Hz"},
		{Rate(0x30), "unknown"},
	} {
		if got := test.s.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}

func TestRateFrequency(t *testing.T) {
	if got := Rate100Hz.Frequency(); got != 100*physic.Hertz {
		t.Errorf("Rate100Hz.Frequency() = %s", got)
	}
	if got := Rate0Hz10.Frequency(); got != 100*physic.MilliHertz {
		t.Errorf("Rate0Hz10.Frequency() = %s", got)
	}
	if got := Rate(99).Frequency(); got != 0 {
		t.Errorf("out of domain Frequency() = %s, want 0", got)
	}
}
