// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package main runs the three-button Wi-Fi adapter menu.
//
// Synopsis:
//
//	wifimenu [-config file] [-v] [-log file] [-dryrun] [-source gpio|evdev|keys] [-display terminal|console|log]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rusq/osenv/v2"
	"github.com/u-root/wifimenu/pkg/board"
	"github.com/u-root/wifimenu/pkg/buttons"
	"github.com/u-root/wifimenu/pkg/config"
	"github.com/u-root/wifimenu/pkg/display"
	"github.com/u-root/wifimenu/pkg/menu"
	"github.com/u-root/wifimenu/pkg/wifi"
)

var (
	configPath  = flag.String("config", osenv.Value("WIFIMENU_CONFIG", "/etc/wifimenu.toml"), "Path of the TOML config file (environment: WIFIMENU_CONFIG)")
	v           = flag.Bool("v", false, "Verbose output")
	logFile     = flag.String("log", osenv.Value("WIFIMENU_LOG", ""), "Log file, stderr if empty (environment: WIFIMENU_LOG)")
	dryRun      = flag.Bool("dryrun", false, "Log the commands the actions would run instead of running them")
	source      = flag.String("source", "", "Override the button source: gpio, evdev or keys")
	displayKind = flag.String("display", "", "Override the display: terminal, console or log")
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *source != "" {
		cfg.Buttons.Source = *source
	}
	if *displayKind != "" {
		cfg.Display.Kind = *displayKind
	}
	return cfg, cfg.Validate()
}

// openLog returns the logger and the writer command output is copied to.
// The terminal display owns the screen, so it always logs to a file.
// A JSON log file keeps command output in a file of its own, path.out.
func openLog(cfg *config.Config) (*slog.Logger, io.Writer, func(), error) {
	level := &slog.LevelVar{}
	if *v {
		level.Set(slog.LevelDebug)
	}
	path := *logFile
	if path == "" && cfg.Display.Kind == config.DisplayTerminal {
		path = filepath.Join(os.TempDir(), "wifimenu.log")
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, nil, err
	}
	out, err := os.OpenFile(path+".out", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		f.Close()
		return nil, nil, nil, err
	}
	log := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return log, out, func() {
		out.Close()
		f.Close()
	}, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, out, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := board.Open(cfg, log, stop)
	if err != nil {
		return err
	}
	var runner wifi.Runner = &wifi.ExecRunner{Stdout: out, Stderr: out, Sudo: cfg.Tools.Sudo}
	if *dryRun {
		runner = wifi.NewStubRunner(out)
	}
	return serve(ctx, cfg, b.Buttons, b.Display, b, runner, log)
}

// serve runs the menu over src and d until ctx is done or the buttons
// fail. hw is closed before serve returns.
func serve(ctx context.Context, cfg *config.Config, src buttons.Source, d display.Display, hw io.Closer, runner wifi.Runner, log *slog.Logger) error {
	defer func() {
		if err := hw.Close(); err != nil {
			log.Error("releasing board", "error", err)
		}
	}()

	tk := wifi.NewToolkit(runner, &wifi.Netlink{}, d, cfg.Tools, log)
	tk.Lines = cfg.Display.Lines

	reader := buttons.NewReader(src, log)
	reader.Interval = cfg.Buttons.Interval.Duration
	reader.Settle = cfg.Buttons.Settle.Duration
	reader.ReleaseTimeout = cfg.Buttons.ReleaseTimeout.Duration

	c, err := menu.New(tk.Options(), reader, d, log)
	if err != nil {
		return err
	}
	c.Lines = cfg.Display.Lines

	log.Info("menu started", "config", *configPath, "dryrun", *dryRun)
	start := time.Now()
	if err := c.Run(ctx); err != nil {
		return err
	}
	log.Info("menu stopped", "uptime", time.Since(start))
	return nil
}

// exitCode reports err on w and returns the process exit status.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(w, "wifimenu: %v\n", err)
	return 1
}

func main() {
	flag.Parse()
	os.Exit(exitCode(os.Stderr, run()))
}
