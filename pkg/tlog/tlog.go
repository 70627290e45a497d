// Copyright 2019 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tlog

import (
	"log/slog"
	"strings"
	"testing"
)

//Writer implements io.Writer on top of the test log
type Writer struct {
	Test testing.TB
}

//Write logs p as one line
func (w Writer) Write(p []byte) (int, error) {
	w.Test.Helper()
	w.Test.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

//New returns a debug level logger printing through t
func New(t testing.TB) *slog.Logger {
	return slog.New(slog.NewTextHandler(Writer{Test: t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
