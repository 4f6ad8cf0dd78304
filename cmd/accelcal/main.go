// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// accelcal is a guided offset calibration for the ADXL345.
//
// The device is placed on a level surface so X and Y read 0g and Z reads
// +1g. The tool averages a burst of samples, converts the residual per
// axis into offset register counts (one offset LSB equals four output
// LSBs), writes the offsets and verifies the result.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/adxl345"
)

const (
	countsPerG      = 250.0 // 4mg/LSB in full resolution
	countsPerOffset = 4.0   // offset register LSB = 15.6mg

	// Mean noise above this (in g) suggests the device was not still.
	stillnessLimit = 0.05
)

func main() {
	busName := flag.String("bus", "", "I²C bus name, empty for the first available")
	addr := flag.Uint("addr", uint(adxl345.DefaultAddr), "I²C device address")
	samples := flag.Int("samples", 200, "number of samples to average")
	interval := flag.Duration("interval", 10*time.Millisecond, "delay between samples")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		log.Fatalf("host init: %v", err)
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		log.Fatalf("failed to open I²C bus %q: %v", *busName, err)
	}
	defer bus.Close()

	dev, err := adxl345.NewI2C(bus, uint16(*addr), &adxl345.Opts{
		Range: adxl345.Range2G,
		Rate:  adxl345.Rate100Hz,
	})
	if err != nil {
		log.Fatalf("failed to initialize accelerometer: %v", err)
	}
	defer dev.Halt()

	// Start from a clean slate so the measured bias is the raw one.
	if err := clearOffsets(dev); err != nil {
		log.Fatalf("failed to clear offsets: %v", err)
	}

	fmt.Println("Place the device on a level surface, Z axis up, and keep it still.")
	fmt.Print("Press Enter to start... ")
	bufio.NewScanner(os.Stdin).Scan()

	mx, my, mz, noise, err := average(dev, *samples, *interval)
	if err != nil {
		log.Fatalf("sampling failed: %v", err)
	}
	fmt.Printf("mean: X=%+.4fg Y=%+.4fg Z=%+.4fg (noise %.4fg)\n", mx, my, mz, noise)
	if noise > stillnessLimit {
		fmt.Println("WARNING: readings were noisy, calibration quality will be poor")
	}

	ox := offsetCounts(mx, 0)
	oy := offsetCounts(my, 0)
	oz := offsetCounts(mz, 1)
	fmt.Printf("writing offsets: X=%d Y=%d Z=%d\n", ox, oy, oz)

	if err := dev.SetOffsetX(ox); err != nil {
		log.Fatalf("failed to write X offset: %v", err)
	}
	if err := dev.SetOffsetY(oy); err != nil {
		log.Fatalf("failed to write Y offset: %v", err)
	}
	if err := dev.SetOffsetZ(oz); err != nil {
		log.Fatalf("failed to write Z offset: %v", err)
	}

	stored, err := dev.Offsets()
	if err != nil {
		log.Fatalf("failed to read offsets back: %v", err)
	}
	fmt.Printf("device offsets now: %s\n", stored)

	mx, my, mz, _, err = average(dev, *samples, *interval)
	if err != nil {
		log.Fatalf("verification sampling failed: %v", err)
	}
	fmt.Printf("residual: X=%+.4fg Y=%+.4fg Z=%+.4fg\n", mx, my, mz-1)
}

func clearOffsets(dev *adxl345.Dev) error {
	if err := dev.SetOffsetX(0); err != nil {
		return err
	}
	if err := dev.SetOffsetY(0); err != nil {
		return err
	}
	return dev.SetOffsetZ(0)
}

// average reads n samples and returns the per axis mean in g plus a crude
// noise figure, the mean absolute deviation of the X axis.
func average(dev *adxl345.Dev, n int, interval time.Duration) (mx, my, mz, noise float64, err error) {
	xs := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		s, err := dev.ReadAcceleration(adxl345.Gravity)
		if err != nil {
			return 0, 0, 0, 0, err
		}
		mx += s.X
		my += s.Y
		mz += s.Z
		xs = append(xs, s.X)
		time.Sleep(interval)
	}
	mx /= float64(n)
	my /= float64(n)
	mz /= float64(n)
	for _, x := range xs {
		noise += math.Abs(x - mx)
	}
	noise /= float64(n)
	return mx, my, mz, noise, nil
}

// offsetCounts converts a measured mean in g into the offset register
// value that cancels the bias against the expected reading.
func offsetCounts(mean, expected float64) int8 {
	counts := (mean - expected) * countsPerG
	v := math.Round(-counts / countsPerOffset)
	if v > math.MaxInt8 {
		v = math.MaxInt8
	}
	if v < math.MinInt8 {
		v = math.MinInt8
	}
	return int8(v)
}
