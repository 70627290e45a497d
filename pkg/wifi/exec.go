// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

var _ = Runner(&ExecRunner{})

// ExecRunner runs commands on the host. Output is copied to Stdout and
// Stderr as well as captured. Interactive commands use the process's
// own terminal instead.
type ExecRunner struct {
	Stdout, Stderr io.Writer
	// Sudo prefixes commands needing root with sudo when not running as root.
	Sudo bool
}

func (r *ExecRunner) args(c Cmd) []string {
	if c.Root && r.Sudo && unix.Geteuid() != 0 {
		return append([]string{"sudo"}, c.Args...)
	}
	return c.Args
}

func (r *ExecRunner) Run(ctx context.Context, c Cmd) ([]byte, error) {
	if len(c.Args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	args := r.args(c)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.Dir

	// Need a local copy of the output for callers that parse it
	var execOutput bytes.Buffer
	cmd.Stdout, cmd.Stderr = &execOutput, r.Stderr
	if r.Stdout != nil {
		cmd.Stdout = io.MultiWriter(&execOutput, r.Stdout)
	}
	if c.Interactive {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return execOutput.Bytes(), fmt.Errorf("%v: %w", c, err)
	}
	return execOutput.Bytes(), nil
}
