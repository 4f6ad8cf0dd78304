// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package adxl345 controls an Analog Devices ADXL345 3-axis accelerometer
// over I²C.
//
// The driver verifies the device identity, switches the chip into
// continuous measurement mode and exposes range, output data rate and per
// axis offset calibration. Acceleration is read as one atomic six byte
// block and returned in g or m/s².
//
// # Datasheet
//
// http://www.analog.com/media/en/technical-documentation/data-sheets/ADXL345.pdf
package adxl345
