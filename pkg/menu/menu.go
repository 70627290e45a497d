// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package menu drives a single-line menu with three buttons: previous,
// next and select.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/u-root/wifimenu/pkg/buttons"
	"github.com/u-root/wifimenu/pkg/display"
)

// DefaultIdle is how long Run sleeps after a poll that saw no press.
const DefaultIdle = 50 * time.Millisecond

// ErrNoOptions is returned by New for an empty option list.
var ErrNoOptions = errors.New("menu has no options")

// Action is run when its option is selected. It must not assume
// anything about the caller beyond the context; failures stay inside it.
type Action func(ctx context.Context)

// Option is one menu entry.
type Option struct {
	Label  string
	Action Action
}

// Input yields debounced button events. Poll must not block when no
// button is pressed.
type Input interface {
	Poll() (buttons.Event, error)
}

// Controller owns the selection and runs the poll, update, draw loop.
type Controller struct {
	options  []Option
	selected int

	input   Input
	display display.Display
	log     *slog.Logger

	// Clock is used to idle between empty polls.
	Clock buttons.Clock
	// Idle is the pause after a poll returning buttons.None.
	Idle time.Duration
	// Lines is the number of display rows used for the label.
	Lines int
}

// New returns a Controller with the first option selected.
func New(options []Option, in Input, d display.Display, log *slog.Logger) (*Controller, error) {
	if len(options) == 0 {
		return nil, ErrNoOptions
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Controller{
		options: append([]Option(nil), options...),
		input:   in,
		display: d,
		log:     log,
		Clock:   buttons.SystemClock{},
		Idle:    DefaultIdle,
		Lines:   display.Lines,
	}, nil
}

// Selected returns the index of the current option.
func (c *Controller) Selected() int {
	return c.selected
}

// Label returns the text drawn for the current option.
func (c *Controller) Label() string {
	return "> " + c.options[c.selected].Label
}

// Handle applies ev to the selection. On buttons.Select it runs the
// current action and returns once it has finished. It reports whether
// the display needs redrawing.
func (c *Controller) Handle(ctx context.Context, ev buttons.Event) bool {
	n := len(c.options)
	switch ev {
	case buttons.Prev:
		c.selected = (c.selected - 1 + n) % n
	case buttons.Next:
		c.selected = (c.selected + 1) % n
	case buttons.Select:
		c.invoke(ctx, c.options[c.selected])
	default:
		return false
	}
	return true
}

// invoke runs opt to completion. A started action is not cancelled by
// shutdown, and a panic in it is logged rather than ending the loop.
// Presses made while it ran are dropped.
func (c *Controller) invoke(ctx context.Context, opt Option) {
	if opt.Action == nil {
		return
	}
	log := c.log.With("option", opt.Label)
	start := time.Now()
	defer func() {
		if d, ok := c.input.(buttons.Drainer); ok {
			d.Drain()
		}
		if r := recover(); r != nil {
			log.Error("action failed", "panic", r)
			return
		}
		log.Info("action finished", "elapsed", time.Since(start))
	}()
	log.Info("running action")
	opt.Action(context.WithoutCancel(ctx))
}

func (c *Controller) render() {
	c.display.Show(c.Label(), c.Lines)
}

// Run draws the current option and then polls for events until ctx is
// cancelled. It only returns an error if the buttons cannot be read.
func (c *Controller) Run(ctx context.Context) error {
	c.render()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		ev, err := c.input.Poll()
		if err != nil {
			return fmt.Errorf("polling buttons: %w", err)
		}
		if ev == buttons.None {
			c.Clock.Sleep(c.Idle)
			continue
		}
		c.log.Debug("event", "event", ev, "selected", c.selected)
		if c.Handle(ctx, ev) {
			c.render()
		}
	}
}
