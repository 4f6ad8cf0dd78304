// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import "fmt"

// UnexpectedDeviceError is returned by NewI2C when the identity register
// does not read back DeviceID, meaning another chip or no chip at all
// answers at the probed address.
type UnexpectedDeviceError struct {
	// ID is the value actually read from the identity register.
	ID byte
}

func (e *UnexpectedDeviceError) Error() string {
	return fmt.Sprintf("adxl345: unexpected device ID %#02x, want %#02x", e.ID, DeviceID)
}

// InvalidConfigurationError is returned when a range or rate value outside
// the defined codes is supplied. It is raised before any bus transaction.
type InvalidConfigurationError struct {
	// Value is the offending code.
	Value int
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("adxl345: invalid configuration value %#x", e.Value)
}
