// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp12x

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

// Variant is the type denoting a specific chip of the family. The TMP121
// and TMP123 share the same data format and differ only in package and
// pinout.
type Variant string

const (
	TMP121 Variant = "TMP121" // TMP121 in SOT23-6. Datasheet: https://www.ti.com/lit/gpn/tmp121
	TMP123 Variant = "TMP123" // TMP123 in SOT23-6 with reduced pin count. Datasheet: https://www.ti.com/lit/gpn/tmp123
)

var (
	// SpiFrequency is the default SPI frequency used to communicate with
	// the device. The chip supports up to 10MHz.
	SpiFrequency = physic.MegaHertz
	SpiMode      = spi.Mode0
	SpiBits      = 8
)

const (
	// The minimum temperature the device can read.
	MinimumTemperature physic.Temperature = physic.ZeroCelsius - 55*physic.Kelvin
	// The maximum temperature the device can read.
	MaximumTemperature physic.Temperature = physic.ZeroCelsius + 150*physic.Kelvin

	// Worst-case time for the device to complete a conversion.
	conversionTime = 320 * time.Millisecond
)

// Opts represents configurable options for the TMP12x.
type Opts struct {
	Variant Variant
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{Variant: TMP121}

// Dev represents a TMP121/TMP123 sensor.
type Dev struct {
	c    spi.Conn
	opts Opts
	mu   sync.Mutex
	stop chan struct{}
	wg   sync.WaitGroup
}

// New returns a TMP12x sensor using the specified SPI port. The device has
// no writable registers; one probe transaction is performed so that a
// misconfigured or absent bus is reported at construction time. If opts is
// nil, DefaultOpts is used.
func New(p spi.Port, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	switch opts.Variant {
	case TMP121, TMP123:
	default:
		return nil, fmt.Errorf("tmp12x: unsupported variant %q", string(opts.Variant))
	}
	c, err := p.Connect(SpiFrequency, SpiMode, SpiBits)
	if err != nil {
		return nil, err
	}
	d := &Dev{c: c, opts: *opts}
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

// GetReading returns the temperature of the most recent conversion. Any
// raw word received from the device yields a temperature; the only failure
// mode is the SPI transaction itself, whose error is returned verbatim.
func (d *Dev) GetReading() (physic.Temperature, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	raw, err := d.read()
	if err != nil {
		return MinimumTemperature, err
	}
	return common.Temperature(raw), nil
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
// to the returned channel. Implements physic.SenseEnv. To terminate the
// continuous read, call Halt().
func (d *Dev) SenseContinuous(interval time.Duration) (<-chan physic.Env, error) {
	if interval < conversionTime {
		return nil, errors.New("invalid duration. minimum 320ms")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return nil, errors.New("tmp12x: already sensing continuously")
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
// Note that the accuracy of the device is +/- 1.5 degrees Celsius.
func (d *Dev) Precision(env *physic.Env) {
	env.Temperature = common.Resolution
	env.Pressure = 0
	env.Humidity = 0
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s: %s", string(d.opts.Variant), d.c)
}

var _ conn.Resource = &Dev{}
var _ physic.SenseEnv = &Dev{}
