// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"context"
	"fmt"
	"io"
)

var _ = Runner(&StubRunner{})

// StubRunner records commands instead of running them. Output and
// errors can be scripted per command line.
type StubRunner struct {
	Log     io.Writer
	Outputs map[string]string
	Errors  map[string]error
	Ran     []Cmd
}

func NewStubRunner(log io.Writer) *StubRunner {
	return &StubRunner{Log: log, Outputs: map[string]string{}, Errors: map[string]error{}}
}

func (s *StubRunner) Run(ctx context.Context, c Cmd) ([]byte, error) {
	s.Ran = append(s.Ran, c)
	if s.Log != nil {
		fmt.Fprintf(s.Log, "would run: %v\n", c)
	}
	return []byte(s.Outputs[c.String()]), s.Errors[c.String()]
}

// Commands returns the command lines run so far.
func (s *StubRunner) Commands() []string {
	var cmds []string
	for _, c := range s.Ran {
		cmds = append(cmds, c.String())
	}
	return cmds
}

var _ = Links(&StubLinks{})

type StubLinks struct {
	Names []string
	Err   error
	Upped []string
}

func (s *StubLinks) Wireless() ([]string, error) {
	return s.Names, s.Err
}

func (s *StubLinks) Up(name string) error {
	s.Upped = append(s.Upped, name)
	return s.Err
}
