// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp12x

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

// Every transaction clocks out two zero bytes; the device is read-only.
var readWord = []byte{0x00, 0x00}

func playback(ops ...conntest.IO) *spitest.Playback {
	return &spitest.Playback{Playback: conntest.Playback{Ops: ops, DontPanic: true}}
}

// probeOp is the transaction New performs at construction time.
func probeOp() conntest.IO {
	return conntest.IO{W: readWord, R: []byte{0x00, 0x00}}
}

func TestGetReading(t *testing.T) {
	// A set of raw words, and the expected temperature value.
	tests := []struct {
		bits     []byte
		expected physic.Temperature
	}{
		{[]byte{0x0C, 0x80}, physic.ZeroCelsius + 25*physic.Kelvin},
		{[]byte{0x19, 0x00}, physic.ZeroCelsius + 50*physic.Kelvin},
		{[]byte{0x00, 0x00}, physic.ZeroCelsius},
		{[]byte{0xF3, 0x80}, physic.ZeroCelsius - 25*physic.Kelvin},
		{[]byte{0xF8, 0x30}, physic.ZeroCelsius - 15_625*physic.MilliKelvin},
		{[]byte{0xE4, 0x80}, physic.ZeroCelsius - 55*physic.Kelvin},
		// Status bits set. The standard profile never interprets bits
		// 2..0 as validity signals; the word still yields a reading.
		{[]byte{0x0C, 0x83}, physic.ZeroCelsius + 25*physic.Kelvin},
	}

	ops := []conntest.IO{probeOp()}
	for _, test := range tests {
		ops = append(ops, conntest.IO{W: readWord, R: test.bits})
	}
	pb := playback(ops...)
	defer pb.Close()

	dev, err := New(pb, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range tests {
		got, err := dev.GetReading()
		if err != nil {
			t.Fatal(err)
		}
		if got != test.expected {
			t.Errorf("GetReading() raw=%#v: read %.4f, expected %.4f", test.bits, got.Celsius(), test.expected.Celsius())
		}
	}
}

// TestGetReadingIdempotent verifies that the same raw word always decodes
// to the same value.
func TestGetReadingIdempotent(t *testing.T) {
	bits := []byte{0x0C, 0x80}
	pb := playback(
		probeOp(),
		conntest.IO{W: readWord, R: bits},
		conntest.IO{W: readWord, R: bits},
	)
	defer pb.Close()

	dev, err := New(pb, nil)
	if err != nil {
		t.Fatal(err)
	}
	first, err := dev.GetReading()
	if err != nil {
		t.Fatal(err)
	}
	second, err := dev.GetReading()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("decoding the same word twice: %.4f != %.4f", first.Celsius(), second.Celsius())
	}
}

func TestNewInvalidVariant(t *testing.T) {
	pb := playback()
	defer pb.Close()
	if _, err := New(pb, &Opts{Variant: "TMP9999"}); err == nil {
		t.Error("expected an error for an unsupported variant")
	}
}

func TestNewTransportFailure(t *testing.T) {
	// No transactions available: the construction probe must fail.
	pb := playback()
	if _, err := New(pb, nil); err == nil {
		t.Error("expected New to fail when the probe transaction fails")
	}
}

func TestGetReadingTransportFailure(t *testing.T) {
	pb := playback(probeOp())
	dev, err := New(pb, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := dev.GetReading()
	if err == nil {
		t.Error("expected a transport error once the playback is exhausted")
	}
	if got != MinimumTemperature {
		t.Errorf("expected MinimumTemperature on failure, got %.4f", got.Celsius())
	}
}

func TestSenseContinuous(t *testing.T) {
	tests := []struct {
		bits     []byte
		expected physic.Temperature
	}{
		{[]byte{0x64, 0x00}, physic.ZeroCelsius + 200*physic.Kelvin},
		{[]byte{0x0C, 0x80}, physic.ZeroCelsius + 25*physic.Kelvin},
		{[]byte{0xF3, 0x80}, physic.ZeroCelsius - 25*physic.Kelvin},
	}
	ops := []conntest.IO{probeOp()}
	for _, test := range tests {
		ops = append(ops, conntest.IO{W: readWord, R: test.bits})
	}
	pb := playback(ops...)
	record := &spitest.Record{Port: pb}

	dev, err := New(record, nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := dev.SenseContinuous(time.Millisecond); err == nil {
		t.Error("expected an interval shorter than the conversion time to be rejected")
	}

	ch, err := dev.SenseContinuous(conversionTime)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dev.SenseContinuous(conversionTime); err == nil {
		t.Error("expected a second SenseContinuous to be rejected")
	}
	for count := 0; count < len(tests); count++ {
		env := <-ch
		t.Logf("Temperature = %.4f", env.Temperature.Celsius())
		if env.Temperature != tests[count].expected {
			t.Errorf("Error testing. Read: %.4f Expected %.4f", env.Temperature.Celsius(), tests[count].expected.Celsius())
		}
	}
	if err := dev.Halt(); err != nil {
		t.Error(err)
	}
	t.Logf("record.ops=%#v", record.Ops)
}

func TestPrecision(t *testing.T) {
	pb := playback(probeOp())
	defer pb.Close()
	dev, err := New(pb, nil)
	if err != nil {
		t.Fatal(err)
	}
	env := physic.Env{}
	dev.Precision(&env)
	if env.Temperature != 62_500*physic.MicroKelvin {
		t.Errorf("invalid Precision() result: %d", env.Temperature)
	}
}

func TestString(t *testing.T) {
	pb := playback(probeOp())
	defer pb.Close()
	dev, err := New(pb, &Opts{Variant: TMP123})
	if err != nil {
		t.Fatal(err)
	}
	s := dev.String()
	t.Log(s)
	if len(s) == 0 {
		t.Error("invalid String() result")
	}
}
