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

package testing

import (
	"errors"
	"time"

	"github.com/ZaparooProject/go-ndefdecode/internal/syncutil"
)

// ErrPortClosed is returned by MockSerialPort reads after Close.
var ErrPortClosed = errors.New("mock serial port closed")

// MockSerialPort is an in-memory serial port. Reads return queued chunks in
// order; once they are drained, reads behave like a serial read timeout
// (0, nil) unless a read error has been set.
type MockSerialPort struct {
	readErr     error
	chunks      [][]byte
	readTimeout time.Duration
	mu          syncutil.Mutex
	closed      bool
}

// NewMockSerialPort creates a port that will deliver chunks in order.
func NewMockSerialPort(chunks ...string) *MockSerialPort {
	m := &MockSerialPort{readTimeout: time.Millisecond}
	for _, c := range chunks {
		m.chunks = append(m.chunks, []byte(c))
	}
	return m
}

// Read copies the next queued bytes into p.
func (m *MockSerialPort) Read(p []byte) (int, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0, ErrPortClosed
	}
	if len(m.chunks) > 0 {
		n := copy(p, m.chunks[0])
		m.chunks[0] = m.chunks[0][n:]
		if len(m.chunks[0]) == 0 {
			m.chunks = m.chunks[1:]
		}
		m.mu.Unlock()
		return n, nil
	}
	readErr := m.readErr
	timeout := m.readTimeout
	m.mu.Unlock()

	if readErr != nil {
		return 0, readErr
	}
	time.Sleep(timeout)
	return 0, nil
}

// Feed queues more data for subsequent reads.
func (m *MockSerialPort) Feed(chunk string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = append(m.chunks, []byte(chunk))
}

// SetReadError makes reads fail with err once queued data is drained.
func (m *MockSerialPort) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// SetReadTimeout records the timeout used when no data is queued.
func (m *MockSerialPort) SetReadTimeout(t time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readTimeout = t
	return nil
}

// Close marks the port closed.
func (m *MockSerialPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockSerialPort) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
