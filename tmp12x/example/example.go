// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package example

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/gold-standard-phantoms/devices/tmp12x"
)

// Example reads the temperature every 500ms for 10 seconds.
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

	d, err := tmp12x.New(p, &tmp12x.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(d.String())

	ch, err := d.SenseContinuous(500 * time.Millisecond)
	if err != nil {
		log.Fatal(err)
	}
	defer d.Halt()

	stop := time.After(10 * time.Second)
	for {
		select {
		case <-stop:
			return
		case e := <-ch:
			fmt.Printf("%8s\n", e.Temperature)
		}
	}
}
