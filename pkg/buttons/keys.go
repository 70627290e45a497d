// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buttons

import (
	ui "github.com/gizak/termui/v3"
	"go.uber.org/atomic"
)

// DefaultKeyIDs maps termui key ids to buttons.
var DefaultKeyIDs = map[string]Event{
	"<Left>":  Prev,
	"<Up>":    Prev,
	"<Right>": Next,
	"<Down>":  Next,
	"<Enter>": Select,
	"<Space>": Select,
}

// Keys uses a terminal keyboard as the three buttons. Terminal key
// events have no release, so a key press reads as pressed for exactly
// one sample.
type Keys struct {
	ids     map[string]Event
	pending map[Event]*atomic.Bool
	quit    func()
	done    chan struct{}
	closed  atomic.Bool
}

var _ = Source(&Keys{})

// NewKeys consumes uiEvents until Close. quit, if not nil, is called
// when the user types q or Ctrl-C, since the terminal is in raw mode and
// no SIGINT is delivered.
func NewKeys(uiEvents <-chan ui.Event, quit func()) *Keys {
	return newKeys(uiEvents, DefaultKeyIDs, quit)
}

// NewQuitKeys consumes uiEvents only for q and Ctrl-C. It is used when
// the terminal is in raw mode but the buttons are elsewhere.
func NewQuitKeys(uiEvents <-chan ui.Event, quit func()) *Keys {
	return newKeys(uiEvents, nil, quit)
}

func newKeys(uiEvents <-chan ui.Event, ids map[string]Event, quit func()) *Keys {
	k := &Keys{
		ids:     ids,
		pending: make(map[Event]*atomic.Bool),
		quit:    quit,
		done:    make(chan struct{}),
	}
	for _, b := range All {
		k.pending[b] = atomic.NewBool(false)
	}
	go k.listen(uiEvents)
	return k
}

func (k *Keys) listen(uiEvents <-chan ui.Event) {
	for {
		select {
		case <-k.done:
			return
		case e, ok := <-uiEvents:
			if !ok {
				return
			}
			if e.Type != ui.KeyboardEvent {
				continue
			}
			switch e.ID {
			case "q", "<C-c>":
				if k.quit != nil {
					k.quit()
				}
				continue
			}
			if b, ok := k.ids[e.ID]; ok {
				k.pending[b].Store(true)
			}
		}
	}
}

// Pressed implements Source.
func (k *Keys) Pressed(b Event) (bool, error) {
	p, ok := k.pending[b]
	if !ok {
		return false, nil
	}
	return p.Swap(false), nil
}

// Drain forgets keys typed since the last sample.
func (k *Keys) Drain() {
	for _, p := range k.pending {
		p.Store(false)
	}
}

// Close stops consuming events.
func (k *Keys) Close() error {
	if k.closed.CompareAndSwap(false, true) {
		close(k.done)
	}
	return nil
}
