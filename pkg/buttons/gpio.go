// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buttons

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Pins maps each button to a line offset on a GPIO chip. On a Raspberry
// Pi the offsets of gpiochip0 are the BCM numbers.
type Pins struct {
	Prev   int
	Next   int
	Select int
}

// DefaultPins is the reference board wiring.
var DefaultPins = Pins{Prev: 17, Next: 27, Select: 22}

// GPIO reads buttons wired between a line and ground, using the
// internal pull-up. A pressed button reads as logical 1.
type GPIO struct {
	lines  *gpiocdev.Lines
	index  map[Event]int
	values []int
}

var _ = Source(&GPIO{})

// OpenGPIO requests the three lines on chip (e.g. "gpiochip0") as inputs.
func OpenGPIO(chip string, pins Pins) (*GPIO, error) {
	offsets := []int{pins.Prev, pins.Next, pins.Select}
	lines, err := gpiocdev.RequestLines(chip, offsets,
		gpiocdev.AsInput,
		gpiocdev.AsActiveLow,
		gpiocdev.WithPullUp,
		gpiocdev.WithConsumer("wifimenu"))
	if err != nil {
		return nil, fmt.Errorf("requesting lines %v on %s: %w", offsets, chip, err)
	}
	return &GPIO{
		lines:  lines,
		index:  map[Event]int{Prev: 0, Next: 1, Select: 2},
		values: make([]int, len(offsets)),
	}, nil
}

// Pressed implements Source.
func (g *GPIO) Pressed(b Event) (bool, error) {
	i, ok := g.index[b]
	if !ok {
		return false, fmt.Errorf("no line for %v", b)
	}
	if err := g.lines.Values(g.values); err != nil {
		return false, err
	}
	return g.values[i] == 1, nil
}

// Close releases the lines.
func (g *GPIO) Close() error {
	return g.lines.Close()
}
