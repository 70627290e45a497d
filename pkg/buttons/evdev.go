// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buttons

import (
	"fmt"

	"github.com/holoplot/go-evdev"
)

// KeyMap binds buttons to key codes of an input device.
type KeyMap map[Event]evdev.EvCode

// DefaultKeyMap matches a gpio-keys overlay declaring left, right and
// enter keys.
var DefaultKeyMap = KeyMap{
	Prev:   evdev.KEY_LEFT,
	Next:   evdev.KEY_RIGHT,
	Select: evdev.KEY_ENTER,
}

// Evdev reads button state from an input event device, such as the one
// the kernel creates for buttons declared with the gpio-keys overlay.
type Evdev struct {
	dev  *evdev.InputDevice
	keys KeyMap
}

var _ = Source(&Evdev{})

// OpenEvdev opens the device at path (e.g. /dev/input/event0).
func OpenEvdev(path string, keys KeyMap) (*Evdev, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if keys == nil {
		keys = DefaultKeyMap
	}
	return &Evdev{dev: dev, keys: keys}, nil
}

// Pressed implements Source by querying the device key state, which
// does not consume queued events.
func (e *Evdev) Pressed(b Event) (bool, error) {
	code, ok := e.keys[b]
	if !ok {
		return false, fmt.Errorf("no key for %v", b)
	}
	state, err := e.dev.State(evdev.EV_KEY)
	if err != nil {
		return false, err
	}
	return state[code], nil
}

// Close closes the device.
func (e *Evdev) Close() error {
	return e.dev.Close()
}
