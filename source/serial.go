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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/go-ndefdecode/internal/transport"
	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// SerialPort defines the interface for serial port operations (for mocking in tests).
type SerialPort interface {
	Read(p []byte) (n int, err error)
	Close() error
	SetReadTimeout(t time.Duration) error
}

// SerialPortFactory creates a serial port connection.
type SerialPortFactory func(path string, mode *serial.Mode) (SerialPort, error)

// DefaultSerialPortFactory is the default factory that opens real serial ports.
func DefaultSerialPortFactory(path string, mode *serial.Mode) (SerialPort, error) {
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port: %w", err)
	}
	return port, nil
}

// SerialConfig holds serial source settings.
type SerialConfig struct {
	// Path is the device path, e.g. /dev/ttyUSB0 or COM3.
	Path string

	// ReadTimeout bounds each port read so cancellation is noticed.
	ReadTimeout time.Duration

	// RetryDelay is the wait between open attempts.
	RetryDelay time.Duration

	// BaudRate of the bridge device.
	BaudRate int

	// OpenRetries is how many extra open attempts are made for busy ports.
	OpenRetries int
}

// DefaultSerialConfig returns the default serial configuration for path.
func DefaultSerialConfig(path string) *SerialConfig {
	return &SerialConfig{
		Path:        path,
		BaudRate:    115200,
		ReadTimeout: 100 * time.Millisecond,
		OpenRetries: 3,
		RetryDelay:  500 * time.Millisecond,
	}
}

// SerialSource reads "NDEF<tab>hex" lines from a serial bridge device.
type SerialSource struct {
	cfg         *SerialConfig
	portFactory SerialPortFactory
}

// NewSerialSource creates a serial source. A nil config is an error at Run.
func NewSerialSource(cfg *SerialConfig) *SerialSource {
	return &SerialSource{
		cfg:         cfg,
		portFactory: DefaultSerialPortFactory,
	}
}

// Run opens the port and sends each message line to out until ctx is done
// or the port fails. Lines that are not valid hex are sent with Err set.
// Cancellation is a normal stop and returns nil.
func (s *SerialSource) Run(ctx context.Context, out chan<- Message) error {
	if s.cfg == nil || s.cfg.Path == "" {
		return errors.New("serial source: empty device path")
	}

	port, err := s.open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	defer func() {
		if err := port.Close(); err != nil {
			log.Warn().Err(err).Str("port", s.cfg.Path).Msg("failed to close serial port")
		}
	}()

	log.Info().Str("port", s.cfg.Path).Int("baud", s.cfg.BaudRate).Msg("serial source opened")
	return s.readLoop(ctx, port, out)
}

func (s *SerialSource) open(ctx context.Context) (SerialPort, error) {
	mode := &serial.Mode{BaudRate: s.cfg.BaudRate}
	retryCfg := transport.RetryConfig{
		Description: "open serial port " + s.cfg.Path,
		MaxRetries:  s.cfg.OpenRetries,
		RetryDelay:  s.cfg.RetryDelay,
		OnRetry: func(attempt int, cause error) {
			log.Debug().Err(cause).Int("attempt", attempt).Str("port", s.cfg.Path).
				Msg("retrying serial port open")
		},
	}

	port, err := transport.WithRetry(ctx, retryCfg, func() (SerialPort, bool, error) {
		p, err := s.portFactory(s.cfg.Path, mode)
		if err != nil {
			return nil, !isPermanentOpenError(err), err
		}
		return p, false, nil
	})
	if err != nil {
		return nil, err
	}

	if err := port.SetReadTimeout(s.cfg.ReadTimeout); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to set read timeout on serial port: %w", err)
	}
	return port, nil
}

func (s *SerialSource) readLoop(ctx context.Context, port SerialPort, out chan<- Message) error {
	var lineBuf []byte
	lineNo := 0
	overflow := false
	buf := make([]byte, 1024)

	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := port.Read(buf)
		if err != nil {
			return fmt.Errorf("failed to read from serial port %s: %w", s.cfg.Path, err)
		}

		for _, b := range buf[:n] {
			if b != '\n' {
				if len(lineBuf) < maxLineLength {
					lineBuf = append(lineBuf, b)
				} else {
					overflow = true
				}
				continue
			}

			lineNo++
			msg, ok := lineMessage(s.cfg.Path, string(lineBuf), lineNo, overflow, true)
			lineBuf = lineBuf[:0]
			overflow = false
			if !ok {
				continue
			}

			select {
			case out <- msg:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// isPermanentOpenError reports whether retrying an open cannot help.
func isPermanentOpenError(err error) bool {
	var portErr *serial.PortError
	if !errors.As(err, &portErr) {
		return false
	}
	switch portErr.Code() {
	case serial.PortNotFound, serial.InvalidSerialPort, serial.PermissionDenied, serial.InvalidSpeed:
		return true
	default:
		return false
	}
}
