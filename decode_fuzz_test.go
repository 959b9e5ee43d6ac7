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

package ndefdecode

import (
	"testing"
)

// FuzzDecode feeds random TNF, type and payload bytes through Decode to check
// that malformed records only ever produce typed errors.
func FuzzDecode(f *testing.F) {
	f.Add(byte(0x01), []byte("U"), []byte{0x01, 'a', '.', 'b'})
	f.Add(byte(0x01), []byte("U"), []byte{})
	f.Add(byte(0x01), []byte("U"), []byte{0x24})
	f.Add(byte(0x01), []byte("T"), []byte{0x02, 'e', 'n', 'H', 'i'})
	f.Add(byte(0x01), []byte("T"), []byte{0x3F})
	f.Add(byte(0x01), []byte("T"), []byte{0x80, 0xD8, 0x3D})
	f.Add(byte(0x02), []byte("text/plain"), []byte("hello"))
	f.Add(byte(0x07), []byte{0xFF}, []byte{0xFF})

	f.Fuzz(func(t *testing.T, tnf byte, typeField, payload []byte) {
		rec := Record{TNF: TNF(tnf), Type: typeField, Payload: payload}
		value, err := Decode(rec)

		if err != nil {
			if value != nil {
				t.Errorf("value %v returned with error %v", value, err)
			}
			if !IsDecodeError(err) {
				t.Errorf("untyped error: %v", err)
			}
			return
		}

		// URI prefixes are at most 26 bytes; UTF-16 text grows by at most half.
		if len(value.String()) > 2*len(payload)+26 {
			t.Errorf("result unexpectedly long: payload=%d bytes, result=%d", len(payload), len(value.String()))
		}

		value2, err2 := Decode(rec)
		if err2 != nil || value2 != value {
			t.Errorf("non-deterministic result for %x: %v/%v vs %v/%v", payload, value, err, value2, err2)
		}
	})
}

// FuzzDecodeMessage checks that arbitrary bytes never panic the message
// splitter and that every per-record failure is typed.
func FuzzDecodeMessage(f *testing.F) {
	f.Add([]byte{0xD1, 0x01, 0x04, 'U', 0x01, 'a', '.', 'b'})
	f.Add([]byte{0xD1, 0x01, 0x03, 'T', 0x00, 'h', 'i'})
	f.Add([]byte{0xC1, 0x01, 0xFF, 0xFF, 0xFF, 0xFF, 'U'})
	f.Add([]byte{0xB1, 0x01, 0x01, 'T', 0x00, 0x56, 0x00, 0x01, 'x'})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, raw []byte) {
		results, err := DecodeMessage(raw)
		if err != nil {
			if results != nil {
				t.Errorf("results returned with error %v", err)
			}
			return
		}
		for i, res := range results {
			if (res.Value == nil) == (res.Err == nil) {
				t.Errorf("record %d: exactly one of value and error must be set", i)
			}
			if res.Err != nil && !IsDecodeError(res.Err) {
				t.Errorf("record %d: untyped error: %v", i, res.Err)
			}
		}
	})
}

// FuzzDecodeText checks status byte handling: a decoded locale always has the
// declared length and is ASCII.
func FuzzDecodeText(f *testing.F) {
	f.Add([]byte{0x02, 'e', 'n', 'H', 'i'})
	f.Add([]byte{0x82, 'e', 'n', 0xFE, 0xFF, 0x00, 'H'})
	f.Add([]byte{0xC0, 0x00, 'x'})
	f.Add([]byte{0x05, 'e', 'n'})

	f.Fuzz(func(t *testing.T, payload []byte) {
		rec, err := DecodeText(payload)
		if err != nil {
			if !IsDecodeError(err) {
				t.Errorf("untyped error: %v", err)
			}
			return
		}

		if want := int(payload[0] & statusLocaleMask); len(rec.Locale) != want {
			t.Errorf("locale %q has length %d, status byte says %d", rec.Locale, len(rec.Locale), want)
		}
		if _, ok := asciiString([]byte(rec.Locale)); !ok {
			t.Errorf("non-ASCII locale %q", rec.Locale)
		}
		if wantUTF16 := payload[0]&statusUTF16Flag != 0; wantUTF16 != (rec.Encoding == EncodingUTF16) {
			t.Errorf("encoding %v does not match status byte 0x%02X", rec.Encoding, payload[0])
		}
	})
}

// FuzzDecodeURI checks that a decoded URI is always the table prefix followed
// by the payload suffix.
func FuzzDecodeURI(f *testing.F) {
	f.Add([]byte{0x04, 'x', '.', 'y'})
	f.Add([]byte{0x00})
	f.Add([]byte{0x23, 'a'})
	f.Add([]byte{0x24})
	f.Add([]byte{0x01, 0xFF})

	f.Fuzz(func(t *testing.T, payload []byte) {
		rec, err := DecodeURI(payload)
		if err != nil {
			if !IsDecodeError(err) {
				t.Errorf("untyped error: %v", err)
			}
			return
		}

		prefix, ok := URIPrefix(payload[0])
		if !ok {
			t.Fatalf("decoded unknown code 0x%02X", payload[0])
		}
		if got, want := rec.String(), prefix+string(payload[1:]); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	})
}
