// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftx101

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/gold-standard-phantoms/devices/common"
)

// LedCurrentLevel is the LED excitation current band reported through
// bits 1..0 of the data word.
type LedCurrentLevel int

const (
	// Under500 indicates an LED current under 500.
	Under500 LedCurrentLevel = iota
	// Range500To1000 indicates an LED current of at least 500 but under 1000.
	Range500To1000
	// Range1000To2000 indicates an LED current of at least 1000 but under 2000.
	Range1000To2000
	// Over2000 indicates an LED current of 2000 or more.
	Over2000
	// Unknown is the fallback for a code outside the 2-bit domain. It is
	// not reachable from a well-formed word.
	Unknown
)

func (l LedCurrentLevel) String() string {
	switch l {
	case Under500:
		return "<500"
	case Range500To1000:
		return "500-1000"
	case Range1000To2000:
		return "1000-2000"
	case Over2000:
		return ">2000"
	default:
		return "unknown"
	}
}

// Reading is a confirmed temperature measurement together with the LED
// current diagnostic reported in the same word.
type Reading struct {
	Temperature physic.Temperature
	LedCurrent  LedCurrentLevel
}

func (r Reading) String() string {
	return fmt.Sprintf("%s (LED current %s)", r.Temperature, r.LedCurrent)
}

var (
	// SpiFrequency is the default SPI frequency used to communicate with
	// the device.
	SpiFrequency = physic.MegaHertz
	SpiMode      = spi.Mode0
	SpiBits      = 8
)

const (
	// The minimum temperature the device can read.
	MinimumTemperature physic.Temperature = physic.ZeroCelsius - 40*physic.Kelvin
	// The maximum temperature the device can read.
	MaximumTemperature physic.Temperature = physic.ZeroCelsius + 250*physic.Kelvin

	// The all-zero sentinel word reported when the excitation source has
	// been disabled after prolonged non-detection.
	rawNoProbe uint16 = 0x0000
	// Temperature field of the 255°C fault code (raw word 0x7FF8). The
	// fault is defined by the field alone; the status bits of a faulted
	// word carry no information.
	faultField int16 = 0x0FFF

	confirmationBit uint16 = 0x0004
	ledCurrentMask  uint16 = 0x0003
)

// ledCurrentLevel maps the 2-bit current code to its band. Total over the
// 2-bit domain; a wider code classifies as Unknown rather than failing.
func ledCurrentLevel(bits byte) LedCurrentLevel {
	switch bits {
	case 0b00:
		return Under500
	case 0b01:
		return Range500To1000
	case 0b10:
		return Range1000To2000
	case 0b11:
		return Over2000
	default:
		return Unknown
	}
}

// decode classifies one raw word. Sentinel codes are defined at the
// raw-word level and are checked before the confirmation bit, since a
// sentinel word may carry any confirmation-bit value; the confirmation
// check then gates all remaining words before their temperature bits are
// trusted.
func decode(raw uint16) (Reading, error) {
	if raw == rawNoProbe {
		return Reading{}, &NoProbeError{}
	}
	if common.TemperatureField(raw) == faultField {
		return Reading{}, &DeviceFaultError{}
	}
	if raw&confirmationBit == 0 {
		return Reading{}, &InvalidMeasurementError{}
	}
	return Reading{
		Temperature: common.Temperature(raw),
		LedCurrent:  ledCurrentLevel(byte(raw & ledCurrentMask)),
	}, nil
}

// Dev represents an FTX-101 sensor.
type Dev struct {
	c    spi.Conn
	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// New returns an FTX-101 sensor using the specified SPI port. One probe
// transaction is performed so that a misconfigured or absent bus is
// reported at construction time. The word it returns is discarded without
// classification: a powering-up device legitimately reports an unconfirmed
// measurement, and a device without its probe attached is still a usable
// device.
func New(p spi.Port) (*Dev, error) {
	c, err := p.Connect(SpiFrequency, SpiMode, SpiBits)
	if err != nil {
		return nil, err
	}
	d := &Dev{c: c}
	if _, err := d.read(); err != nil {
		return nil, err
	}
	return d, nil
}

// read performs one exclusive 2-byte transaction and returns the raw word,
// MSB first.
func (d *Dev) read() (uint16, error) {
	w := make([]byte, 2)
	r := make([]byte, 2)
	if err := d.c.Tx(w, r); err != nil {
		return 0, err
	}
	return uint16(r[0])<<8 | uint16(r[1]), nil
}

// GetExtendedReading returns the temperature of the most recent conversion
// together with the LED current diagnostic.
//
// A transport error is returned verbatim and takes precedence over any
// classification. Otherwise the word is classified as *NoProbeError,
// *DeviceFaultError, *InvalidMeasurementError or a Reading, in that order.
func (d *Dev) GetExtendedReading() (Reading, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, err := d.read()
	if err != nil {
		return Reading{}, err
	}
	return decode(raw)
}

// GetReading returns the temperature of the most recent conversion. The
// word is validated exactly as in GetExtendedReading; the LED current
// level is read but discarded.
func (d *Dev) GetReading() (physic.Temperature, error) {
	r, err := d.GetExtendedReading()
	if err != nil {
		return MinimumTemperature, err
	}
	return r.Temperature, nil
}

// Sense reads temperature from the device and writes the value to the
// specified env variable. Implements physic.SenseEnv.
func (d *Dev) Sense(env *physic.Env) error {
	t, err := d.GetReading()
	if err == nil {
		env.Temperature = t
	}
	return err
}

// SenseContinuous continuously reads from the device and writes the value
// to the returned channel. Unconfirmed or sentinel words are skipped, not
// surfaced. Implements physic.SenseEnv. To terminate the continuous read,
// call Halt().
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval < 100*time.Millisecond {
		return nil, errors.New("invalid duration. minimum 100ms")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errors.New("ftx101: already sensing continuously")
	}
	d.stop = make(chan struct{})
	d.wg.Add(1)

	channelSize := 16
	channel := make(chan physic.Env, channelSize)
	go func(stop <-chan struct{}) {
		defer d.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				close(channel)
				return
			case <-ticker.C:
				e := physic.Env{}
				err := d.Sense(&e)
				if err == nil && len(channel) < channelSize {
					channel <- e
				}
			}
		}
	}(d.stop)

	return channel, nil
}

// Halt stops a SenseContinuous operation in progress. The chip itself
// converts continuously and cannot be shut down. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
	d.mu.Unlock()
	d.wg.Wait()
	return nil
}

// Precision returns the sensor's precision, or minimum value between steps
// the device can make. The specified precision is 0.0625 degrees Celsius.
func (d *Dev) Precision(env *physic.Env) {
	env.Temperature = common.Resolution
	env.Pressure = 0
	env.Humidity = 0
}

func (d *Dev) String() string {
	return fmt.Sprintf("FTX-101: %s", d.c)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
