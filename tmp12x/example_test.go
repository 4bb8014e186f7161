// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmp12x_test

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/gold-standard-phantoms/devices/tmp12x"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use spireg SPI port registry to find the first available SPI port.
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	dev, err := tmp12x.New(p, &tmp12x.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}

	t, err := dev.GetReading()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%8s\n", t)
}
