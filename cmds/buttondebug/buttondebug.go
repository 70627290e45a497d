// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package main prints every debounced button press, to check the
// wiring of a board without running any action.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/u-root/wifimenu/pkg/buttons"
)

var (
	chip    = flag.String("chip", "gpiochip0", "GPIO chip")
	prev    = flag.Int("prev", buttons.DefaultPins.Prev, "Line of the previous button")
	next    = flag.Int("next", buttons.DefaultPins.Next, "Line of the next button")
	sel     = flag.Int("select", buttons.DefaultPins.Select, "Line of the select button")
	device  = flag.String("evdev", "", "Read an input event device instead of GPIO lines")
	seconds = flag.Int("t", 0, "Stop after this many seconds, 0 runs forever")
)

func open() (buttons.Source, error) {
	if *device != "" {
		return buttons.OpenEvdev(*device, nil)
	}
	return buttons.OpenGPIO(*chip, buttons.Pins{Prev: *prev, Next: *next, Select: *sel})
}

// watch prints events from r until deadline, or forever if it is zero.
func watch(r *buttons.Reader, w io.Writer, deadline time.Time) error {
	for deadline.IsZero() || r.Clock.Now().Before(deadline) {
		ev, err := r.Poll()
		if err != nil {
			return err
		}
		if ev == buttons.None {
			r.Clock.Sleep(r.Interval)
			continue
		}
		fmt.Fprintf(w, "%s %v\n", r.Clock.Now().Format("15:04:05.000"), ev)
	}
	return nil
}

func main() {
	flag.Parse()
	src, err := open()
	if err != nil {
		log.Fatal(err)
	}

	r := buttons.NewReader(src, nil)
	var deadline time.Time
	if *seconds > 0 {
		deadline = time.Now().Add(time.Duration(*seconds) * time.Second)
	}
	err = watch(r, os.Stdout, deadline)
	src.Close()
	if err != nil {
		log.Fatalf("poll: %v", err)
	}
}
