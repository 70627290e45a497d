// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buttons turns the level of three physical buttons into discrete,
// debounced menu events.
package buttons

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Event is a debounced button press.
type Event int

const (
	None Event = iota
	Prev
	Next
	Select
)

// All lists the buttons in the order Poll samples them.
var All = []Event{Prev, Next, Select}

func (e Event) String() string {
	switch e {
	case None:
		return "none"
	case Prev:
		return "prev"
	case Next:
		return "next"
	case Select:
		return "select"
	}
	return fmt.Sprintf("Event(%d)", int(e))
}

// Source reports the current level of the line wired to each button.
type Source interface {
	// Pressed returns true while the button bound to b is held down.
	Pressed(b Event) (bool, error)
	// Close releases the underlying lines or device.
	Close() error
}

// Clock is the time source used for debouncing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

const (
	DefaultInterval       = 50 * time.Millisecond
	DefaultSettle         = 200 * time.Millisecond
	DefaultReleaseTimeout = 5 * time.Second
)

// Reader polls a Source and yields one event per physical press.
type Reader struct {
	Source Source
	Clock  Clock
	Log    *slog.Logger

	// Interval is the sampling period while waiting for release.
	Interval time.Duration
	// Settle is slept after release before the line is re-armed.
	Settle time.Duration
	// ReleaseTimeout bounds the wait for release. A button held longer
	// still yields its event.
	ReleaseTimeout time.Duration
}

// NewReader returns a Reader over src with the default timings.
func NewReader(src Source, log *slog.Logger) *Reader {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reader{
		Source:         src,
		Clock:          SystemClock{},
		Log:            log,
		Interval:       DefaultInterval,
		Settle:         DefaultSettle,
		ReleaseTimeout: DefaultReleaseTimeout,
	}
}

// Poll samples the buttons once. If none is pressed it returns None
// without blocking. Otherwise it waits for the first pressed button to be
// released, sleeps the settle delay and returns its event.
func (r *Reader) Poll() (Event, error) {
	for _, b := range All {
		down, err := r.Source.Pressed(b)
		if err != nil {
			return None, fmt.Errorf("reading %v button: %w", b, err)
		}
		if !down {
			continue
		}
		if err := r.waitRelease(b); err != nil {
			return None, err
		}
		r.Clock.Sleep(r.Settle)
		r.Log.Debug("button pressed", "event", b)
		return b, nil
	}
	return None, nil
}

// Drainer is a Source that buffers presses, such as a keyboard.
type Drainer interface {
	Drain()
}

// Drain discards presses the Source buffered while nobody was polling.
func (r *Reader) Drain() {
	if d, ok := r.Source.(Drainer); ok {
		d.Drain()
	}
}

func (r *Reader) waitRelease(b Event) error {
	deadline := r.Clock.Now().Add(r.ReleaseTimeout)
	for {
		down, err := r.Source.Pressed(b)
		if err != nil {
			return fmt.Errorf("reading %v button: %w", b, err)
		}
		if !down {
			return nil
		}
		if !r.Clock.Now().Before(deadline) {
			r.Log.Warn("button still held, not waiting for release", "event", b, "timeout", r.ReleaseTimeout)
			return nil
		}
		r.Clock.Sleep(r.Interval)
	}
}
