// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package common contains functions used across multiple packages. For
// example, the 13-bit temperature field decode shared by the TI TMP12x
// and OSENSA FTX 101 drivers.
package common

import (
	"periph.io/x/conn/v3/physic"
)

// Resolution is the temperature represented by one count of the 13-bit
// temperature field, 0.0625 degrees Celsius.
const Resolution physic.Temperature = 62_500 * physic.MicroKelvin

// TemperatureField extracts the signed 13-bit temperature field from a
// raw 16-bit word. The field occupies bits 15..3 in two's complement;
// the arithmetic shift of the signed word drops the three status bits
// and sign-extends in one step.
func TemperatureField(raw uint16) int16 {
	return int16(raw) >> 3
}

// Temperature converts a raw 16-bit word into a temperature. The
// conversion is exact; counts are 0.0625 degrees Celsius each and
// negative values are valid. Bits 2..0 of the word do not contribute.
func Temperature(raw uint16) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(TemperatureField(raw))*Resolution
}
