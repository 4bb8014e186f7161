// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// ftx101 provides a package for interfacing an OSENSA FTX-101 fiber optic
// temperature sensor over SPI.
//
// The FTX-101 uses the TMP123 data format for its 13-bit temperature
// field, but drives the three low bits of the word as a status field:
// bit 2 is the confirmation (CFM) bit and bits 1..0 report the LED
// excitation current band. Two reserved words are sentinel codes, 0x0000
// for "no probe detected" and the 255°C fault code for a damaged probe or
// a signal too weak to resolve.
//
// Resolution: 0.0625°C
package ftx101
