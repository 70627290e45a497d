// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wifi holds the menu actions that prepare a USB Wi-Fi adapter
// for auditing: tool installation, driver build, killing processes that
// fight over the interface and starting the audit tool.
//
// Every action is best effort. Failures are logged and the action moves
// on; nothing is reported back to the menu.
package wifi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/u-root/u-root/pkg/kmodule"
	"github.com/u-root/wifimenu/pkg/config"
	"github.com/u-root/wifimenu/pkg/display"
	"github.com/u-root/wifimenu/pkg/menu"
	"golang.org/x/sys/unix"
)

// Toolkit runs the actions behind the menu options.
type Toolkit struct {
	Runner  Runner
	Links   Links
	Display display.Display
	Lines   int
	Log     *slog.Logger
	Tools   config.Tools

	// probe loads a kernel module, kmodule.Probe by default.
	probe func(name, params string) error
	// kill signals a process, unix.Kill by default.
	kill func(pid int, sig unix.Signal) error
	// stat is os.Stat by default.
	stat func(name string) (os.FileInfo, error)
}

// NewToolkit returns a Toolkit acting on the host.
func NewToolkit(r Runner, links Links, d display.Display, tools config.Tools, log *slog.Logger) *Toolkit {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Toolkit{
		Runner:  r,
		Links:   links,
		Display: d,
		Lines:   display.Lines,
		Log:     log,
		Tools:   tools,
		probe:   kmodule.Probe,
		kill:    unix.Kill,
		stat:    os.Stat,
	}
}

// Options is the fixed menu.
func (t *Toolkit) Options() []menu.Option {
	return []menu.Option{
		{Label: "Driver & Kill", Action: func(ctx context.Context) {
			t.InstallDriver(ctx)
			t.KillConflictingProcesses(ctx)
		}},
		{Label: "Install Tools", Action: t.InstallTools},
		{Label: "Run Wifite", Action: t.RunAuditTool},
	}
}

func (t *Toolkit) show(text string) {
	t.Display.Show(text, t.Lines)
}

// run runs c and logs a failure. It reports whether c succeeded.
func (t *Toolkit) run(ctx context.Context, c Cmd) ([]byte, bool) {
	t.Log.Debug("running", "cmd", c.String(), "dir", c.Dir)
	out, err := t.Runner.Run(ctx, c)
	if err != nil {
		t.Log.Warn("command failed", "cmd", c.String(), "error", err)
		return out, false
	}
	return out, true
}

func (t *Toolkit) aptInstall(ctx context.Context, pkgs ...string) bool {
	_, ok := t.run(ctx, Cmd{Args: append([]string{"apt", "install", "-y"}, pkgs...), Root: true})
	return ok
}

// InstallTools installs every configured package whose command is not
// already on the PATH.
func (t *Toolkit) InstallTools(ctx context.Context) {
	t.show("Installing tools...")
	for _, tool := range t.Tools.Packages {
		out, err := t.Runner.Run(ctx, Cmd{Args: []string{"which", tool}})
		if err == nil && len(bytes.TrimSpace(out)) > 0 {
			t.Log.Debug("already installed", "tool", tool)
			continue
		}
		t.show(fmt.Sprintf("Installing %s...", tool))
		if t.aptInstall(ctx, tool) {
			t.Log.Info("installed", "tool", tool)
		}
	}
}

// InstallDriver clones, builds and installs the out-of-tree adapter
// driver with DKMS, loads it and brings the wireless interfaces up.
func (t *Toolkit) InstallDriver(ctx context.Context) {
	t.show("Installing driver...")
	dir := config.ExpandHome(t.Tools.DriverDir)
	if _, err := t.stat(dir); errors.Is(err, fs.ErrNotExist) {
		t.show("Cloning driver...")
		t.run(ctx, Cmd{Args: []string{"git", "clone", t.Tools.DriverRepo, dir}})
	}
	if len(t.Tools.DriverPackages) > 0 {
		t.aptInstall(ctx, t.Tools.DriverPackages...)
	}
	t.show("Building driver...")
	t.run(ctx, Cmd{Args: []string{"make", "dkms_install"}, Dir: dir, Root: true})

	if t.Tools.DriverModule != "" {
		t.show("Loading driver...")
		if err := t.probe(t.Tools.DriverModule, ""); err != nil {
			t.Log.Warn("loading module failed", "module", t.Tools.DriverModule, "error", err)
		}
	}
	t.upInterfaces()
}

func (t *Toolkit) upInterfaces() {
	if t.Links == nil {
		return
	}
	names := t.Tools.Interfaces
	if len(names) == 0 {
		var err error
		if names, err = t.Links.Wireless(); err != nil {
			t.Log.Warn("listing wireless interfaces failed", "error", err)
			return
		}
	}
	for _, name := range names {
		if err := t.Links.Up(name); err != nil {
			t.Log.Warn("interface up failed", "interface", name, "error", err)
			continue
		}
		t.Log.Info("interface up", "interface", name)
	}
}

// KillConflictingProcesses kills every running instance of the
// configured processes.
func (t *Toolkit) KillConflictingProcesses(ctx context.Context) {
	t.show("Killing processes...")
	for _, proc := range t.Tools.Processes {
		// pidof exits 1 when nothing matches.
		out, err := t.Runner.Run(ctx, Cmd{Args: []string{"pidof", proc}})
		if err != nil {
			t.Log.Debug("not running", "process", proc)
			continue
		}
		for _, f := range bytes.Fields(out) {
			pid, err := strconv.Atoi(string(f))
			if err != nil {
				t.Log.Warn("bad pid from pidof", "process", proc, "pid", string(f))
				continue
			}
			t.killPID(ctx, proc, pid)
		}
	}
}

func (t *Toolkit) killPID(ctx context.Context, proc string, pid int) {
	err := t.kill(pid, unix.SIGKILL)
	if errors.Is(err, unix.EPERM) {
		_, ok := t.run(ctx, Cmd{Args: []string{"kill", "-9", strconv.Itoa(pid)}, Root: true})
		if ok {
			err = nil
		}
	}
	switch {
	case err == nil:
		t.Log.Info("killed", "process", proc, "pid", pid)
	case errors.Is(err, unix.ESRCH):
		t.Log.Debug("already exited", "process", proc, "pid", pid)
	default:
		t.Log.Warn("kill failed", "process", proc, "pid", pid, "error", err)
	}
}

// RunAuditTool runs the audit tool attached to the terminal until it exits.
func (t *Toolkit) RunAuditTool(ctx context.Context) {
	if len(t.Tools.Audit) == 0 {
		return
	}
	t.show(fmt.Sprintf("Launching %s...", t.Tools.Audit[0]))
	t.foreground(ctx, Cmd{Args: t.Tools.Audit, Root: true, Interactive: true})
}

// foreground runs an interactive command. A display holding the terminal
// gives it up for the duration, so the command gets cooked input and
// Ctrl-C.
func (t *Toolkit) foreground(ctx context.Context, c Cmd) {
	s, ok := t.Display.(display.Suspender)
	if !ok {
		t.run(ctx, c)
		return
	}
	if err := s.Suspend(); err != nil {
		t.Log.Warn("suspending display failed", "error", err)
	}
	t.run(ctx, c)
	if err := s.Resume(); err != nil {
		t.Log.Error("resuming display failed", "error", err)
	}
}
