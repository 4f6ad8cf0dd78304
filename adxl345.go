// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl345

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// Unit selects the unit system of a Sample.
type Unit int

const (
	// Gravity expresses acceleration in g.
	Gravity Unit = iota
	// MetersPerSecondSquared expresses acceleration in m/s².
	MetersPerSecondSquared
)

func (u Unit) String() string {
	switch u {
	case Gravity:
		return "g"
	case MetersPerSecondSquared:
		return "m/s²"
	default:
		return "unknown"
	}
}

// Sample is one acceleration reading across the three axes.
type Sample struct {
	X, Y, Z float64
	Unit    Unit
}

func (s Sample) String() string {
	return fmt.Sprintf("X:%.3f Y:%.3f Z:%.3f %s", s.X, s.Y, s.Z, s.Unit)
}

// Offset holds the per axis offset registers. One LSB corresponds to
// 15.6mg, four output LSBs.
type Offset struct {
	X, Y, Z int8
}

func (o Offset) String() string {
	return fmt.Sprintf("X:%d Y:%d Z:%d", o.X, o.Y, o.Z)
}

// Opts holds the configuration applied while initializing the device.
type Opts struct {
	// Range is the measurement range. Full resolution mode is enabled with
	// it regardless of the value.
	Range Range
	// Rate is the output data rate.
	Rate Rate
}

// DefaultOpts matches the device's ±2g reset range at a moderate rate.
var DefaultOpts = Opts{
	Range: Range2G,
	Rate:  Rate100Hz,
}

// Dev is a handle to an ADXL345 accelerometer on an I²C bus.
//
// A Dev assumes exclusive access to the device. Its methods serialize
// against each other, but a single configuration change can span two bus
// transactions and is not atomic against an external user of the same bus
// address.
type Dev struct {
	d    *i2c.Dev
	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// NewI2C probes and initializes an ADXL345 behind addr on the given bus.
// An addr of 0 selects DefaultAddr. A nil opts selects DefaultOpts.
//
// The identity register is verified before anything is written; a mismatch
// returns an UnexpectedDeviceError. On success the device is switched to
// continuous measurement mode with the requested range and rate, ready for
// ReadAcceleration.
func NewI2C(b i2c.Bus, addr uint16, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if addr == 0 {
		addr = DefaultAddr
	}
	d := &Dev{d: &i2c.Dev{Bus: b, Addr: addr}}
	id, err := d.readByte(regDevID)
	if err != nil {
		return nil, err
	}
	if id != DeviceID {
		return nil, &UnexpectedDeviceError{ID: id}
	}
	if err := d.TurnOn(); err != nil {
		return nil, err
	}
	if err := d.SetRange(opts.Range); err != nil {
		return nil, err
	}
	if err := d.SetRate(opts.Rate); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("adxl345: %s", d.d.String())
}

// TurnOn switches the device into continuous measurement mode. NewI2C
// already does this; TurnOn is only needed after a TurnOff or Halt.
func (d *Dev) TurnOn() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeByte(regPowerCtl, powerCtlMeasure)
}

// TurnOff puts the device into standby. Output registers keep their last
// value and draw is reduced to standby current.
func (d *Dev) TurnOff() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeByte(regPowerCtl, powerCtlStandby)
}

// ReadAcceleration returns the current acceleration in the requested unit.
//
// All six output bytes are fetched in a single block read so the three
// axes belong to the same conversion.
func (d *Dev) ReadAcceleration(unit Unit) (Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [6]byte
	if err := d.readBlock(regDataX0, buf[:]); err != nil {
		return Sample{}, err
	}
	s := Sample{
		X:    float64(decodeInt16(buf[0], buf[1])) * gPerLSB,
		Y:    float64(decodeInt16(buf[2], buf[3])) * gPerLSB,
		Z:    float64(decodeInt16(buf[4], buf[5])) * gPerLSB,
		Unit: unit,
	}
	if unit == MetersPerSecondSquared {
		s.X *= gravity
		s.Y *= gravity
		s.Z *= gravity
	}
	return s, nil
}

// ReadContinuous starts polling the device every interval and delivers the
// samples on the returned channel. Call Halt to stop and close the
// channel. Samples that fail to read are skipped.
func (d *Dev) ReadContinuous(interval time.Duration, unit Unit) (<-chan Sample, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errors.New("adxl345: ReadContinuous already running")
	}
	d.stop = make(chan struct{})
	d.wg.Add(1)
	ch := make(chan Sample, 16)
	stop := d.stop
	go func() {
		defer d.wg.Done()
		defer close(ch)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if s, err := d.ReadAcceleration(unit); err == nil {
					ch <- s
				}
			}
		}
	}()
	return ch, nil
}

// Halt stops a running ReadContinuous and puts the device into standby.
// Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()
	if stop != nil {
		close(stop)
		d.wg.Wait()
	}
	return d.TurnOff()
}

// SetRange sets the measurement range and enables full resolution mode.
//
// DATA_FORMAT shares bits with settings this driver does not manage, so
// the register is read back first and only the low four bits are replaced.
// The two transactions are not atomic; a transport failure in between
// leaves the register at its previous content.
func (d *Dev) SetRange(r Range) error {
	if !r.valid() {
		return &InvalidConfigurationError{Value: int(r)}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	format, err := d.readByte(regDataFormat)
	if err != nil {
		return err
	}
	b, err := encodeRange(format, r)
	if err != nil {
		return err
	}
	return d.writeByte(regDataFormat, b)
}

// Range returns the measurement range the device currently uses.
func (d *Dev) Range() (Range, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	format, err := d.readByte(regDataFormat)
	if err != nil {
		return 0, err
	}
	return decodeRange(format), nil
}

// SetRate sets the output data rate. The whole BW_RATE register is owned
// by the driver, so this is a single direct write with the low power bit
// forced off.
func (d *Dev) SetRate(r Rate) error {
	b, err := encodeRate(r)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeByte(regBwRate, b)
}

// Rate returns the output data rate the device currently uses.
func (d *Dev) Rate() (Rate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, err := d.readByte(regBwRate)
	if err != nil {
		return 0, err
	}
	return decodeRate(b), nil
}

// SetOffsetX stores a calibration offset for the X axis. The full int8
// range is legal. The offset is added by the device to every sample at
// 15.6mg per LSB.
func (d *Dev) SetOffsetX(v int8) error {
	return d.setOffset(regOffsetX, v)
}

// SetOffsetY stores a calibration offset for the Y axis.
func (d *Dev) SetOffsetY(v int8) error {
	return d.setOffset(regOffsetY, v)
}

// SetOffsetZ stores a calibration offset for the Z axis.
func (d *Dev) SetOffsetZ(v int8) error {
	return d.setOffset(regOffsetZ, v)
}

func (d *Dev) setOffset(reg byte, v int8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeByte(reg, byte(v))
}

// Offsets returns the three offset registers. They sit at consecutive
// addresses, so one 3 byte block read retrieves them together.
func (d *Dev) Offsets() (Offset, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var buf [3]byte
	if err := d.readBlock(regOffsetX, buf[:]); err != nil {
		return Offset{}, err
	}
	return Offset{X: int8(buf[0]), Y: int8(buf[1]), Z: int8(buf[2])}, nil
}

func (d *Dev) readByte(reg byte) (byte, error) {
	var buf [1]byte
	if err := d.d.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, fmt.Errorf("adxl345: read %#02x: %w", reg, err)
	}
	return buf[0], nil
}

func (d *Dev) readBlock(reg byte, buf []byte) error {
	if err := d.d.Tx([]byte{reg}, buf); err != nil {
		return fmt.Errorf("adxl345: read %#02x: %w", reg, err)
	}
	return nil
}

func (d *Dev) writeByte(reg, value byte) error {
	if err := d.d.Tx([]byte{reg, value}, nil); err != nil {
		return fmt.Errorf("adxl345: write %#02x: %w", reg, err)
	}
	return nil
}

var _ conn.Resource = &Dev{}
