// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package display renders short status text on a small fixed-width screen.
package display

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

const (
	// Width is the number of characters in a row.
	Width = 20
	// Lines is the number of rows shown by default.
	Lines = 3
)

// Display shows text split over up to lines rows.
type Display interface {
	Show(text string, lines int)
}

// Suspender is a Display that owns the terminal and can hand it to a
// foreground program for a while.
type Suspender interface {
	Display
	Suspend() error
	Resume() error
}

// Rows cuts text into lines rows of width characters. Row i holds
// text[i*width:(i+1)*width]; rows past the end of text are empty.
func Rows(text string, width, lines int) []string {
	if lines < 0 {
		lines = 0
	}
	r := []rune(text)
	rows := make([]string, lines)
	for i := range rows {
		start := i * width
		if start >= len(r) {
			continue
		}
		rows[i] = string(r[start:min(start+width, len(r))])
	}
	return rows
}

// Writer prints each frame as plain rows, e.g. on a serial console.
type Writer struct {
	W     io.Writer
	Width int
}

var _ = Display(&Writer{})

func (d *Writer) Show(text string, lines int) {
	var b strings.Builder
	for _, row := range Rows(text, d.width(), lines) {
		fmt.Fprintf(&b, "|%-*s|\n", d.width(), row)
	}
	io.WriteString(d.W, b.String())
}

func (d *Writer) width() int {
	if d.Width <= 0 {
		return Width
	}
	return d.Width
}

// Log records what would be shown. It is the display of last resort
// for a headless board.
type Log struct {
	Log *slog.Logger
}

var _ = Display(&Log{})

func (d *Log) Show(text string, lines int) {
	d.Log.Info("display", "rows", Rows(text, Width, lines))
}

// Multi shows every frame on all of its displays.
type Multi []Display

func (m Multi) Show(text string, lines int) {
	for _, d := range m {
		d.Show(text, lines)
	}
}
