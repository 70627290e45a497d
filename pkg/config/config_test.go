// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "wifimenu.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadOverrides(t *testing.T) {
	p := writeConfig(t, `
[buttons]
source = "evdev"
device = "/dev/input/event3"
settle = "150ms"

[display]
kind = "console"
lines = 2

[tools]
packages = ["aircrack-ng"]
interfaces = ["wlan1"]
`)
	c, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, SourceEvdev, c.Buttons.Source)
	assert.Equal(t, "/dev/input/event3", c.Buttons.Device)
	assert.Equal(t, 150*time.Millisecond, c.Buttons.Settle.Duration)
	assert.Equal(t, 50*time.Millisecond, c.Buttons.Interval.Duration)
	assert.Equal(t, DisplayConsole, c.Display.Kind)
	assert.Equal(t, 2, c.Display.Lines)
	assert.Equal(t, 20, c.Display.Width)
	assert.Equal(t, []string{"aircrack-ng"}, c.Tools.Packages)
	assert.Equal(t, []string{"wlan1"}, c.Tools.Interfaces)
	assert.Equal(t, Default().Tools.Processes, c.Tools.Processes)
}

func TestLoadErrors(t *testing.T) {
	for _, tt := range []struct {
		name string
		body string
		want string
	}{
		{
			name: "unknown_key",
			body: "[buttons]\nflavour = \"mint\"\n",
			want: "unknown keys",
		},
		{
			name: "bad_duration",
			body: "[buttons]\nsettle = \"soon\"\n",
			want: "soon",
		},
		{
			name: "zero_interval",
			body: "[buttons]\ninterval = \"0s\"\n",
			want: "interval must be positive",
		},
		{
			name: "negative_release_timeout",
			body: "[buttons]\nrelease_timeout = \"-1s\"\n",
			want: "release_timeout must be positive",
		},
		{
			name: "shared_pin",
			body: "[buttons]\nprev = 22\n",
			want: "distinct lines",
		},
		{
			name: "bad_source",
			body: "[buttons]\nsource = \"morse\"\n",
			want: "unknown source",
		},
		{
			name: "zero_lines",
			body: "[display]\nlines = 0\n",
			want: "must be positive",
		},
		{
			name: "empty_audit",
			body: "[tools]\naudit = []\n",
			want: "audit command is empty",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/pi")
	assert.Equal(t, "/home/pi/rtl8812au", ExpandHome("~/rtl8812au"))
	assert.Equal(t, "/home/pi", ExpandHome("~"))
	assert.Equal(t, "/opt/rtl8812au", ExpandHome("/opt/rtl8812au"))
	assert.Equal(t, "~pi/x", ExpandHome("~pi/x"))
}
