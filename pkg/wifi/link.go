// Copyright 2018 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vishvananda/netlink"
)

var _ = Links(&Netlink{})

// Netlink implements Links with rtnetlink.
type Netlink struct {
	// SysRoot is where sysfs is mounted, /sys if empty.
	SysRoot string
}

func (n *Netlink) sysRoot() string {
	if n.SysRoot == "" {
		return "/sys"
	}
	return n.SysRoot
}

// isWireless reports whether ifname has a wireless extension directory.
func (n *Netlink) isWireless(ifname string) bool {
	_, err := os.Stat(filepath.Join(n.sysRoot(), "class", "net", ifname, "wireless"))
	return err == nil
}

func (n *Netlink) Wireless() ([]string, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("can't get list of link names: %w", err)
	}
	var names []string
	for _, l := range links {
		if name := l.Attrs().Name; n.isWireless(name) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (n *Netlink) Up(name string) error {
	l, err := netlink.LinkByName(name)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := netlink.LinkSetUp(l); err != nil {
		return fmt.Errorf("%s: set up: %w", name, err)
	}
	return nil
}
