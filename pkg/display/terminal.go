// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package display

import (
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

// Terminal draws the screen as a bordered termui paragraph, sized like
// the real panel.
type Terminal struct {
	paragraph *widgets.Paragraph
	width     int
	render    func(...ui.Drawable)

	// init and close take and give back the terminal, ui.Init and
	// ui.Close by default.
	init  func() error
	close func()
}

var _ = Display(&Terminal{})

// InitTerminal takes over the terminal and draws a panel of wid
// columns and ht rows. Close must be called to restore it.
func InitTerminal(title string, wid int, ht int) (*Terminal, error) {
	if err := ui.Init(); err != nil {
		return nil, err
	}
	return newTerminal(title, wid, ht, ui.Render), nil
}

// newTerminal returns a Terminal with a paragraph of wid columns and ht rows.
func newTerminal(title string, wid int, ht int, render func(...ui.Drawable)) *Terminal {
	p := widgets.NewParagraph()
	p.Title = title
	p.Border = true
	p.SetRect(0, 0, wid+2, ht+2)
	p.TextStyle.Fg = ui.ColorWhite
	return &Terminal{paragraph: p, width: wid, render: render, init: ui.Init, close: ui.Close}
}

func (t *Terminal) Show(text string, lines int) {
	t.paragraph.Text = strings.Join(Rows(text, t.width, lines), "\n")
	t.render(t.paragraph)
}

// Suspend gives the terminal back so a foreground program can use it.
func (t *Terminal) Suspend() error {
	t.close()
	return nil
}

// Resume takes the terminal over again and redraws the last frame.
func (t *Terminal) Resume() error {
	if err := t.init(); err != nil {
		return err
	}
	t.render(t.paragraph)
	return nil
}

// Close gives the terminal back.
func (t *Terminal) Close() error {
	t.close()
	return nil
}
