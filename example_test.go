// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345_test

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/adxl345"
)

// ExampleNewI2C reads the acceleration once a second for ten seconds.
//
// Use i2c-tools to find the bus and confirm the device answers at 0x53:
//
//	sudo i2cdetect -y 1
func ExampleNewI2C() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := adxl345.NewI2C(b, adxl345.DefaultAddr, &adxl345.Opts{
		Range: adxl345.Range4G,
		Rate:  adxl345.Rate100Hz,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer d.Halt()

	ch, err := d.ReadContinuous(time.Second, adxl345.MetersPerSecondSquared)
	if err != nil {
		log.Fatal(err)
	}
	stop := time.After(10 * time.Second)
	for {
		select {
		case <-stop:
			return
		case s := <-ch:
			fmt.Println(s)
		}
	}
}

// ExampleDev_Offsets shows offset calibration round-tripping.
func ExampleDev_Offsets() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d, err := adxl345.NewI2C(b, 0, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := d.SetOffsetZ(-2); err != nil {
		log.Fatal(err)
	}
	o, err := d.Offsets()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(o)
}
