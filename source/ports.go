// go-ndefdecode
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-ndefdecode.
//
// go-ndefdecode is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-ndefdecode is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ndefdecode; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package source

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"go.bug.st/serial"
)

// Ports lists serial ports that could host a bridge device, leaving out
// any path in ignorePaths.
func Ports(ignorePaths []string) ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return FilterPorts(ports, ignorePaths), nil
}

// FilterPorts returns ports without the ignored ones, keeping order.
func FilterPorts(ports, ignorePaths []string) []string {
	filtered := make([]string, 0, len(ports))
	for _, p := range ports {
		if !IsPathIgnored(p, ignorePaths) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// IsPathIgnored reports whether devicePath names the same port as an entry
// of ignorePaths. Paths are compared cleaned and lower-cased, so "com3" and
// "COM3" match. Empty entries never match.
func IsPathIgnored(devicePath string, ignorePaths []string) bool {
	if devicePath == "" {
		return false
	}
	key := portKey(devicePath)
	return slices.ContainsFunc(ignorePaths, func(p string) bool {
		return p != "" && portKey(p) == key
	})
}

func portKey(path string) string {
	return strings.ToLower(filepath.Clean(path))
}
