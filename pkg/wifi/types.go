// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"context"
	"strings"
)

// Cmd is one external command run by an action.
type Cmd struct {
	Args []string
	Dir  string
	// Root marks commands that need superuser rights.
	Root bool
	// Interactive commands get the runner's stdin and are not captured.
	Interactive bool
}

func (c Cmd) String() string {
	return strings.Join(c.Args, " ")
}

// Runner runs external commands and returns what they wrote to stdout.
type Runner interface {
	Run(ctx context.Context, c Cmd) ([]byte, error)
}

// Links controls network interfaces.
type Links interface {
	// Wireless lists the wireless interfaces.
	Wireless() ([]string, error)
	// Up sets the interface administratively up.
	Up(name string) error
}
