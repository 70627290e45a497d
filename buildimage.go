// Copyright 2019 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

package main

// Cross-compiles the binaries for a Raspberry Pi and optionally copies
// them over. Run it from the repository root:
// go run buildimage.go -host pi@raspberrypi.local

import (
	"flag"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

type cmd struct {
	args []string
	env  []string
}

var (
	debug = func(string, ...interface{}) {}

	verbose = flag.Bool("v", true, "verbose debugging output")
	goarch  = flag.String("arch", "arm64", "target GOARCH, arm for 32-bit Raspberry Pi OS")
	goarm   = flag.String("arm", "6", "GOARM when -arch=arm")
	out     = flag.String("o", "build", "output directory")
	host    = flag.String("host", "", "optional ssh destination to copy the binaries to")
	dest    = flag.String("dest", "/usr/local/bin", "install directory on the host")
)

func init() {
	flag.Parse()
	if *verbose {
		debug = log.Printf
	}
}

func main() {
	env := []string{"CGO_ENABLED=0", "GOOS=linux", "GOARCH=" + *goarch}
	if *goarch == "arm" {
		env = append(env, "GOARM="+*goarm)
	}

	var commands []cmd
	var bins []string
	for _, name := range []string{"wifimenu", "buttondebug"} {
		bin := filepath.Join(*out, name)
		bins = append(bins, bin)
		commands = append(commands, cmd{
			args: []string{"go", "build", "-o", bin, "./cmds/" + name},
			env:  env,
		})
	}
	if *host != "" {
		commands = append(commands, cmd{args: append(append([]string{"scp"}, bins...), *host+":/tmp/")})
		for _, name := range []string{"wifimenu", "buttondebug"} {
			commands = append(commands, cmd{args: []string{"ssh", *host, "sudo", "install", "-m", "0755", "/tmp/" + name, *dest}})
		}
	}

	for _, cmd := range commands {
		debug("Run %v", cmd)
		c := exec.Command(cmd.args[0], cmd.args[1:]...)
		c.Stdout, c.Stderr = os.Stdout, os.Stderr
		c.Env = append(os.Environ(), cmd.env...)
		if err := c.Run(); err != nil {
			log.Fatalf("%s failed: %v", cmd.args, err)
		}
	}
	debug("done")
}
