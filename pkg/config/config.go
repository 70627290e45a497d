// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the board wiring and action parameters from a
// TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Input source kinds.
const (
	SourceGPIO  = "gpio"
	SourceEvdev = "evdev"
	SourceKeys  = "keys"
)

// Display kinds.
const (
	DisplayTerminal = "terminal"
	DisplayConsole  = "console"
	DisplayLog      = "log"
)

// Duration is a time.Duration written as a string such as "200ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Buttons struct {
	Source string `toml:"source"`

	Chip   string `toml:"chip"`
	Prev   int    `toml:"prev"`
	Next   int    `toml:"next"`
	Select int    `toml:"select"`

	Device string `toml:"device"`

	Interval       Duration `toml:"interval"`
	Settle         Duration `toml:"settle"`
	ReleaseTimeout Duration `toml:"release_timeout"`
}

type Display struct {
	Kind  string `toml:"kind"`
	Width int    `toml:"width"`
	Lines int    `toml:"lines"`
}

type Tools struct {
	Sudo bool `toml:"sudo"`

	Packages  []string `toml:"packages"`
	Processes []string `toml:"processes"`

	DriverRepo     string   `toml:"driver_repo"`
	DriverDir      string   `toml:"driver_dir"`
	DriverPackages []string `toml:"driver_packages"`
	DriverModule   string   `toml:"driver_module"`
	// Interfaces to bring up after the driver loads. Empty means every
	// wireless interface.
	Interfaces []string `toml:"interfaces"`

	Audit []string `toml:"audit"`
}

type Config struct {
	Buttons Buttons `toml:"buttons"`
	Display Display `toml:"display"`
	Tools   Tools   `toml:"tools"`
}

// Default returns the configuration of the reference board: buttons on
// BCM 17, 27 and 22, a 20x3 screen and an RTL8812AU adapter.
func Default() *Config {
	return &Config{
		Buttons: Buttons{
			Source:         SourceGPIO,
			Chip:           "gpiochip0",
			Prev:           17,
			Next:           27,
			Select:         22,
			Device:         "/dev/input/event0",
			Interval:       Duration{50 * time.Millisecond},
			Settle:         Duration{200 * time.Millisecond},
			ReleaseTimeout: Duration{5 * time.Second},
		},
		Display: Display{
			Kind:  DisplayTerminal,
			Width: 20,
			Lines: 3,
		},
		Tools: Tools{
			Sudo:           true,
			Packages:       []string{"bully", "hashcat", "hcxdumptool", "hcxtools", "macchanger"},
			Processes:      []string{"avahi-daemon", "NetworkManager", "wpa_supplicant"},
			DriverRepo:     "https://github.com/aircrack-ng/rtl8812au.git",
			DriverDir:      "~/rtl8812au",
			DriverPackages: []string{"dkms", "raspberrypi-kernel-headers", "build-essential", "bc"},
			DriverModule:   "88XXau",
			Audit:          []string{"wifite", "--kill"},
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown keys %v", path, undecoded)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks values the board cannot work without.
func (c *Config) Validate() error {
	switch c.Buttons.Source {
	case SourceGPIO:
		p := c.Buttons
		if p.Prev == p.Next || p.Prev == p.Select || p.Next == p.Select {
			return fmt.Errorf("buttons: prev, next and select must use distinct lines, got %d, %d, %d", p.Prev, p.Next, p.Select)
		}
	case SourceEvdev, SourceKeys:
	default:
		return fmt.Errorf("buttons: unknown source %q", c.Buttons.Source)
	}
	for _, d := range []struct {
		key string
		val Duration
	}{
		{"interval", c.Buttons.Interval},
		{"settle", c.Buttons.Settle},
		{"release_timeout", c.Buttons.ReleaseTimeout},
	} {
		if d.val.Duration <= 0 {
			return fmt.Errorf("buttons: %s must be positive, got %v", d.key, d.val)
		}
	}
	switch c.Display.Kind {
	case DisplayTerminal, DisplayConsole, DisplayLog:
	default:
		return fmt.Errorf("display: unknown kind %q", c.Display.Kind)
	}
	if c.Display.Width <= 0 || c.Display.Lines <= 0 {
		return fmt.Errorf("display: width and lines must be positive, got %dx%d", c.Display.Width, c.Display.Lines)
	}
	if len(c.Tools.Audit) == 0 {
		return errors.New("tools: audit command is empty")
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
