// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ftx101

// NoProbeError is returned when the device reports the all-zero word. The
// analog front end disables its excitation source after prolonged
// non-detection, so this is an expected operating condition rather than a
// fault. It is distinct from a genuine 0°C reading, which carries status
// bits and therefore cannot produce an all-zero word.
type NoProbeError struct{}

func (e *NoProbeError) Error() string {
	return "ftx101: no probe detected"
}

// DeviceFaultError is returned when the device reports its 255°C fault
// code. The probe is damaged or the optical signal is too weak to resolve.
type DeviceFaultError struct{}

func (e *DeviceFaultError) Error() string {
	return "ftx101: device fault, probe damaged or signal too weak"
}

// InvalidMeasurementError is returned when the confirmation bit is clear.
// The device has not yet produced a settled sample; the condition is
// transient and a later read is expected to succeed. The driver does not
// retry; retry policy and delay are the caller's.
type InvalidMeasurementError struct{}

func (e *InvalidMeasurementError) Error() string {
	return "ftx101: measurement not yet confirmed"
}
