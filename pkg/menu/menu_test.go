// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menu

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/u-root/wifimenu/pkg/buttons"
	"github.com/u-root/wifimenu/pkg/tlog"
)

// scriptInput replays events, then cancels the run.
type scriptInput struct {
	events []buttons.Event
	err    error
	cancel context.CancelFunc
	polls  int
}

func (s *scriptInput) Poll() (buttons.Event, error) {
	s.polls++
	if len(s.events) == 0 {
		if s.err != nil {
			return buttons.None, s.err
		}
		s.cancel()
		return buttons.None, nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

type recorder struct {
	frames []string
}

func (r *recorder) Show(text string, lines int) {
	r.frames = append(r.frames, text)
}

type nopClock struct{ slept int }

func (c *nopClock) Now() time.Time { return time.Time{} }
func (c *nopClock) Sleep(d time.Duration) { c.slept++ }

func labels(names ...string) []Option {
	var opts []Option
	for _, n := range names {
		opts = append(opts, Option{Label: n})
	}
	return opts
}

func newTestController(t *testing.T, opts []Option, events ...buttons.Event) (*Controller, *scriptInput, *recorder, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	in := &scriptInput{events: events, cancel: cancel}
	rec := &recorder{}
	c, err := New(opts, in, rec, tlog.New(t))
	require.NoError(t, err)
	c.Clock = &nopClock{}
	return c, in, rec, ctx
}

func TestNewEmpty(t *testing.T) {
	_, err := New(nil, &scriptInput{}, &recorder{}, nil)
	assert.ErrorIs(t, err, ErrNoOptions)
}

func TestHandle(t *testing.T) {
	for _, tt := range []struct {
		name   string
		n      int
		start  int
		events []buttons.Event
		want   []int
	}{
		{
			name:   "next_wraps_to_zero",
			n:      3,
			events: []buttons.Event{buttons.Next, buttons.Next, buttons.Next},
			want:   []int{1, 2, 0},
		},
		{
			name:   "prev_from_zero",
			n:      3,
			events: []buttons.Event{buttons.Prev},
			want:   []int{2},
		},
		{
			name:   "next_from_last",
			n:      4,
			start:  3,
			events: []buttons.Event{buttons.Next},
			want:   []int{0},
		},
		{
			name:   "single_option",
			n:      1,
			events: []buttons.Event{buttons.Next, buttons.Prev, buttons.Select},
			want:   []int{0, 0, 0},
		},
		{
			name:   "select_keeps_index",
			n:      3,
			events: []buttons.Event{buttons.Next, buttons.Select, buttons.Select},
			want:   []int{1, 1, 1},
		},
		{
			name:   "none_keeps_index",
			n:      3,
			events: []buttons.Event{buttons.Prev, buttons.None, buttons.None},
			want:   []int{2, 2, 2},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			opts := make([]Option, tt.n)
			c, _, _, ctx := newTestController(t, opts)
			c.selected = tt.start
			var got []int
			for _, ev := range tt.events {
				c.Handle(ctx, ev)
				got = append(got, c.Selected())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleStaysInRange(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 1; n <= 8; n++ {
		c, _, _, ctx := newTestController(t, make([]Option, n))
		for i := 0; i < 500; i++ {
			ev := []buttons.Event{buttons.Prev, buttons.Next, buttons.None}[r.Intn(3)]
			c.Handle(ctx, ev)
			require.GreaterOrEqual(t, c.Selected(), 0)
			require.Less(t, c.Selected(), n)
		}
	}
}

func TestRunRendersEveryTransition(t *testing.T) {
	c, _, rec, ctx := newTestController(t, labels("A", "B", "C"),
		buttons.Next, buttons.None, buttons.Next, buttons.Next, buttons.Prev)

	require.NoError(t, c.Run(ctx))
	assert.Equal(t, []string{"> A", "> B", "> C", "> A", "> C"}, rec.frames)
}

func TestRunNoneNeverActs(t *testing.T) {
	ran := 0
	opts := []Option{{Label: "A", Action: func(context.Context) { ran++ }}}
	c, in, rec, ctx := newTestController(t, opts, buttons.None, buttons.None, buttons.None)
	clk := &nopClock{}
	c.Clock = clk

	require.NoError(t, c.Run(ctx))
	assert.Zero(t, ran)
	assert.Equal(t, 0, c.Selected())
	assert.Equal(t, []string{"> A"}, rec.frames)
	assert.Equal(t, 4, in.polls)
	assert.Equal(t, 4, clk.slept)
}

func TestRunSelectInvokesCurrent(t *testing.T) {
	var ran []string
	act := func(name string) Action {
		return func(context.Context) { ran = append(ran, name) }
	}
	opts := []Option{{"A", act("a")}, {"B", act("b")}, {"C", act("c")}}
	c, _, rec, ctx := newTestController(t, opts,
		buttons.Select, buttons.Prev, buttons.Select, buttons.Next, buttons.Next, buttons.Select)

	require.NoError(t, c.Run(ctx))
	assert.Equal(t, []string{"a", "c", "b"}, ran)
	assert.Equal(t, 1, c.Selected())
	assert.Equal(t, []string{"> A", "> A", "> C", "> C", "> A", "> B", "> B"}, rec.frames)
}

func TestRunSurvivesFailingAction(t *testing.T) {
	calls := 0
	opts := []Option{
		{Label: "boom", Action: func(context.Context) {
			calls++
			panic("apt exploded")
		}},
		{Label: "B"},
	}
	c, _, rec, ctx := newTestController(t, opts, buttons.Select, buttons.Select, buttons.Next)

	require.NoError(t, c.Run(ctx))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, c.Selected())
	assert.Equal(t, "> B", rec.frames[len(rec.frames)-1])
}

func TestRunActionOutlivesCancel(t *testing.T) {
	var actionCtx context.Context
	ctx, cancel := context.WithCancel(context.Background())
	opts := []Option{{Label: "A", Action: func(ctx context.Context) {
		cancel()
		actionCtx = ctx
	}}}
	in := &scriptInput{events: []buttons.Event{buttons.Select, buttons.Next}, cancel: cancel}
	c, err := New(opts, in, &recorder{}, tlog.New(t))
	require.NoError(t, err)

	require.NoError(t, c.Run(ctx))
	require.NotNil(t, actionCtx)
	assert.NoError(t, actionCtx.Err())
	// the loop exits before polling again.
	assert.Equal(t, 1, in.polls)
}

func TestRunPollError(t *testing.T) {
	errRead := errors.New("gpio: no such device")
	c, in, _, ctx := newTestController(t, labels("A"), buttons.Next)
	in.err = errRead

	err := c.Run(ctx)
	assert.ErrorIs(t, err, errRead)
}

// stopAfter cancels the run after a number of polls. Embedding the
// Reader keeps its Drain visible to the Controller.
type stopAfter struct {
	*buttons.Reader
	left   int
	cancel context.CancelFunc
}

func (s *stopAfter) Poll() (buttons.Event, error) {
	s.left--
	if s.left < 0 {
		s.cancel()
	}
	return s.Reader.Poll()
}

func TestRunDropsPressesDuringAction(t *testing.T) {
	uiEvents := make(chan ui.Event)
	keys := buttons.NewKeys(uiEvents, nil)
	defer keys.Close()
	// the listener has handled a key once the event after it is taken.
	press := func(id string) {
		uiEvents <- ui.Event{Type: ui.KeyboardEvent, ID: id}
		uiEvents <- ui.Event{Type: ui.ResizeEvent}
	}

	ran := 0
	opts := []Option{{Label: "A", Action: func(context.Context) {
		ran++
		press("<Enter>")
		press("<Right>")
	}}, {Label: "B"}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := buttons.NewReader(keys, tlog.New(t))
	reader.Clock = &nopClock{}
	in := &stopAfter{Reader: reader, left: 5, cancel: cancel}
	c, err := New(opts, in, &recorder{}, tlog.New(t))
	require.NoError(t, err)
	c.Clock = &nopClock{}

	press("<Enter>")
	require.NoError(t, c.Run(ctx))
	assert.Equal(t, 1, ran)
	assert.Equal(t, 0, c.Selected())
}
