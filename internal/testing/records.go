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
	"encoding/binary"
	"fmt"

	"github.com/hsanjuan/go-ndef"
	"golang.org/x/text/encoding/unicode"
)

// NDEF record header bits used when building raw records.
const (
	flagMB = 0x80
	flagME = 0x40
	flagCF = 0x20
	flagSR = 0x10
	flagIL = 0x08
)

// RawRecord describes one record for BuildMessage.
type RawRecord struct {
	Type    []byte
	ID      []byte
	Payload []byte
	TNF     byte
	Chunked bool
	// LongForm forces a 4-byte payload length even for short payloads.
	LongForm bool
}

// BuildTextPayload creates a Text record payload with a UTF-8 body.
func BuildTextPayload(locale, text string) []byte {
	payload := []byte{byte(len(locale)) & 0x3F}
	payload = append(payload, locale...)
	return append(payload, text...)
}

// BuildUTF16TextPayload creates a Text record payload with a big-endian
// UTF-16 body, optionally preceded by a byte order mark.
func BuildUTF16TextPayload(locale, text string, withBOM bool) ([]byte, error) {
	bom := unicode.IgnoreBOM
	if withBOM {
		bom = unicode.UseBOM
	}
	body, err := unicode.UTF16(unicode.BigEndian, bom).NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode UTF-16 text: %w", err)
	}
	payload := []byte{0x80 | byte(len(locale))&0x3F}
	payload = append(payload, locale...)
	return append(payload, body...), nil
}

// BuildURIPayload creates a URI record payload.
func BuildURIPayload(code byte, suffix string) []byte {
	return append([]byte{code}, suffix...)
}

// BuildMessage encodes records as a raw NDEF message, setting MB on the
// first record and ME on the last.
func BuildMessage(records ...RawRecord) []byte {
	var out []byte
	for i, rec := range records {
		header := rec.TNF & 0x07
		if i == 0 {
			header |= flagMB
		}
		if i == len(records)-1 {
			header |= flagME
		}
		if rec.Chunked {
			header |= flagCF
		}
		short := len(rec.Payload) < 256 && !rec.LongForm
		if short {
			header |= flagSR
		}
		if rec.ID != nil {
			header |= flagIL
		}

		out = append(out, header, byte(len(rec.Type)))
		if short {
			out = append(out, byte(len(rec.Payload)))
		} else {
			out = binary.BigEndian.AppendUint32(out, uint32(len(rec.Payload)))
		}
		if rec.ID != nil {
			out = append(out, byte(len(rec.ID)))
		}
		out = append(out, rec.Type...)
		out = append(out, rec.ID...)
		out = append(out, rec.Payload...)
	}
	return out
}

// BuildTextMessage creates a single Text record message using go-ndef.
func BuildTextMessage(text, locale string) ([]byte, error) {
	msg := ndef.NewTextMessage(text, locale)
	raw, err := msg.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal NDEF message: %w", err)
	}
	return raw, nil
}

// BuildURIMessage creates a single URI record message using go-ndef.
func BuildURIMessage(uri string) ([]byte, error) {
	msg := ndef.NewURIMessage(uri)
	raw, err := msg.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal NDEF message: %w", err)
	}
	return raw, nil
}
