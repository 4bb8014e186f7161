// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// tmp12x provides a package for interfacing a Texas Instruments TMP121 or
// TMP123 SPI temperature sensor.
//
// The device is read-only: it converts continuously and each 2-byte SPI
// transaction returns the most recent conversion. Following power-up the
// temperature register reads 0°C until the first conversion completes.
//
// Range: -55°C - 150°C
//
// Accuracy: +/- 1.5°C
//
// Resolution: 0.0625°C
//
// For detailed information, refer to the [datasheet].
//
// [datasheet]: https://www.ti.com/lit/ds/symlink/tmp121.pdf
package tmp12x
