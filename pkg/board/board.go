// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package board acquires the buttons and the screen once for the life of
// the process and releases them exactly once.
package board

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	ui "github.com/gizak/termui/v3"
	"github.com/u-root/wifimenu/pkg/buttons"
	"github.com/u-root/wifimenu/pkg/config"
	"github.com/u-root/wifimenu/pkg/display"
	"go.uber.org/atomic"
)

// Board holds the hardware handles.
type Board struct {
	Buttons buttons.Source
	Display display.Display

	log     *slog.Logger
	closers []func() error
	closed  atomic.Bool
}

// Open acquires the display and the buttons described by cfg. quit is
// called if the user asks to leave from a keyboard source. On error
// everything acquired so far has been released.
func Open(cfg *config.Config, log *slog.Logger, quit func()) (*Board, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	b := &Board{log: log}

	if err := b.openDisplay(cfg.Display); err != nil {
		b.Close()
		return nil, fmt.Errorf("display: %w", err)
	}
	if err := b.openButtons(cfg.Buttons, cfg.Display.Kind, quit); err != nil {
		b.Close()
		return nil, fmt.Errorf("buttons: %w", err)
	}
	log.Info("board ready", "buttons", cfg.Buttons.Source, "display", cfg.Display.Kind)
	return b, nil
}

func (b *Board) openDisplay(c config.Display) error {
	switch c.Kind {
	case config.DisplayTerminal:
		t, err := display.InitTerminal("wifimenu", c.Width, c.Lines)
		if err != nil {
			return err
		}
		b.Display = t
		b.closers = append(b.closers, t.Close)
	case config.DisplayConsole:
		b.Display = &display.Writer{W: os.Stdout, Width: c.Width}
	case config.DisplayLog:
		b.Display = &display.Log{Log: b.log}
	default:
		return fmt.Errorf("unknown kind %q", c.Kind)
	}
	return nil
}

func (b *Board) openButtons(c config.Buttons, displayKind string, quit func()) error {
	var src buttons.Source
	switch c.Source {
	case config.SourceGPIO:
		g, err := buttons.OpenGPIO(c.Chip, buttons.Pins{Prev: c.Prev, Next: c.Next, Select: c.Select})
		if err != nil {
			return err
		}
		src = g
	case config.SourceEvdev:
		e, err := buttons.OpenEvdev(c.Device, nil)
		if err != nil {
			return err
		}
		src = e
	case config.SourceKeys:
		if displayKind != config.DisplayTerminal {
			return errors.New("keyboard buttons need the terminal display")
		}
		src = buttons.NewKeys(ui.PollEvents(), quit)
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	b.Buttons = src
	// buttons go first so the screen is the last thing given back.
	b.closers = append([]func() error{src.Close}, b.closers...)

	if displayKind == config.DisplayTerminal && c.Source != config.SourceKeys {
		// raw mode turns Ctrl-C into a key event.
		q := buttons.NewQuitKeys(ui.PollEvents(), quit)
		b.closers = append([]func() error{q.Close}, b.closers...)
	}
	return nil
}

// Close releases everything Open acquired. Only the first call has any
// effect.
func (b *Board) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	var errs []error
	for _, c := range b.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	b.log.Debug("board released")
	return errors.Join(errs...)
}
