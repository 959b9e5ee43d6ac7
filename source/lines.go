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

// Package source reads raw NDEF messages from outside the decoder: hex
// text from files or pipes, or a serial bridge that prints one message per
// line.
package source

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// LinePrefix marks a message line emitted by a serial bridge.
const LinePrefix = "NDEF"

// maxLineLength bounds a single input line; a 64KiB message is 128KiB of hex.
const maxLineLength = 1 << 17

var (
	// ErrInvalidHex is returned for lines whose message is not valid hex.
	ErrInvalidHex = errors.New("invalid hex message")
	// ErrLineTooLong is reported for lines longer than the line limit.
	ErrLineTooLong = errors.New("line too long")
)

// Message is one raw NDEF message read from a source. Err is set instead of
// Data when the line could not be turned into bytes.
type Message struct {
	Err    error
	Source string
	Data   []byte
	Line   int
}

// ParseLine extracts a raw message from one line of input. It returns
// (nil, nil) for lines that carry no message. When strict is set only lines
// of the form "NDEF<tab>hex" are accepted; otherwise the prefix is optional
// and '#' starts a comment line.
func ParseLine(line string, strict bool) ([]byte, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}

	if rest, ok := cutPrefix(line); ok {
		line = rest
	} else if strict || strings.HasPrefix(line, "#") {
		return nil, nil
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':', '-':
			return -1
		default:
			return r
		}
	}, line)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidHex)
	}

	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	return data, nil
}

func cutPrefix(line string) (string, bool) {
	if !strings.HasPrefix(line, LinePrefix) {
		return "", false
	}
	rest := line[len(LinePrefix):]
	if rest == "" || (rest[0] != '\t' && rest[0] != ' ') {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// ReadHexLines reads every message from r. Lines that fail to parse or
// exceed the line limit are returned as messages with Err set, so one bad
// line does not hide the rest.
func ReadHexLines(r io.Reader, name string) ([]Message, error) {
	var messages []Message
	reader := bufio.NewReader(r)
	var line []byte
	lineNo := 0
	overflow := false
	for {
		chunk, isPrefix, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return messages, nil
			}
			return messages, fmt.Errorf("failed to read %s: %w", name, err)
		}

		if overflow || len(line)+len(chunk) > maxLineLength {
			overflow = true
		} else {
			line = append(line, chunk...)
		}
		if isPrefix {
			continue
		}

		lineNo++
		if msg, ok := lineMessage(name, string(line), lineNo, overflow, false); ok {
			messages = append(messages, msg)
		}
		line = line[:0]
		overflow = false
	}
}

// lineMessage turns one complete line into a Message. The second result is
// false for lines that carry no message.
func lineMessage(name, line string, lineNo int, overflow, strict bool) (Message, bool) {
	msg := Message{Source: name, Line: lineNo}
	if overflow {
		msg.Err = fmt.Errorf("%w: limit is %d bytes", ErrLineTooLong, maxLineLength)
		log.Warn().Str("source", name).Int("line", lineNo).Msg("line too long")
		return msg, true
	}

	data, err := ParseLine(line, strict)
	switch {
	case err != nil:
		log.Debug().Err(err).Str("source", name).Int("line", lineNo).Msg("malformed line")
		msg.Err = err
	case data == nil:
		return Message{}, false
	default:
		msg.Data = data
	}
	return msg, true
}
