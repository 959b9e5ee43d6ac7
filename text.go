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
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Text record status byte layout. Bit 6 is reserved and ignored.
const (
	statusUTF16Flag  = 0x80
	statusLocaleMask = 0x3F
)

// UTF-16 surrogate ranges.
const (
	highSurrogateMin = 0xD800
	lowSurrogateMin  = 0xDC00
	lowSurrogateMax  = 0xDFFF
)

// Encoding is the character encoding of a Text record body.
type Encoding byte

const (
	// EncodingUTF8 is selected by a clear status bit 7.
	EncodingUTF8 Encoding = iota
	// EncodingUTF16 is selected by a set status bit 7.
	EncodingUTF16
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16:
		return "UTF-16"
	default:
		return fmt.Sprintf("Encoding(%d)", byte(e))
	}
}

// TextRecord is a decoded NFC Forum well-known "T" record.
type TextRecord struct {
	Locale   string
	Text     string
	Encoding Encoding
}

// Kind implements Value.
func (TextRecord) Kind() Kind { return KindText }

// String returns the record text.
func (t TextRecord) String() string { return t.Text }

func (TextRecord) isValue() {}

// DecodeText decodes a Text record payload:
//
//	[status][locale (status&0x3F bytes, ASCII)][text (UTF-8 or UTF-16)]
//
// An empty text region is valid and yields an empty string.
func DecodeText(payload []byte) (TextRecord, error) {
	if len(payload) == 0 {
		return TextRecord{}, ErrEmptyPayload
	}

	status := payload[0]
	localeLen := int(status & statusLocaleMask)
	if len(payload) < 1+localeLen {
		return TextRecord{}, fmt.Errorf("%w: locale length %d exceeds %d remaining bytes",
			ErrTruncatedPayload, localeLen, len(payload)-1)
	}

	locale, ok := asciiString(payload[1 : 1+localeLen])
	if !ok {
		return TextRecord{}, fmt.Errorf("%w: non-ASCII byte in locale", ErrInvalidLocale)
	}

	encoding := EncodingUTF8
	if status&statusUTF16Flag != 0 {
		encoding = EncodingUTF16
	}

	body := payload[1+localeLen:]
	var text string
	var err error
	switch encoding {
	case EncodingUTF8:
		text, err = decodeUTF8(body)
	case EncodingUTF16:
		text, err = decodeUTF16(body)
	}
	if err != nil {
		return TextRecord{}, err
	}

	return TextRecord{Locale: locale, Text: text, Encoding: encoding}, nil
}

func decodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: malformed UTF-8", ErrInvalidTextEncoding)
	}
	return string(b), nil
}

// decodeUTF16 decodes UTF-16 text. A leading byte order mark selects the
// byte order and is dropped; without one the text is big-endian.
func decodeUTF16(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("%w: odd UTF-16 length %d", ErrInvalidTextEncoding, len(b))
	}

	var order binary.ByteOrder = binary.BigEndian
	endianness := unicode.BigEndian
	if len(b) >= 2 {
		switch {
		case b[0] == 0xFE && b[1] == 0xFF:
			b = b[2:]
		case b[0] == 0xFF && b[1] == 0xFE:
			order = binary.LittleEndian
			endianness = unicode.LittleEndian
			b = b[2:]
		}
	}

	if err := validateUTF16(b, order); err != nil {
		return "", err
	}

	out, err := unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidTextEncoding, err)
	}
	return string(out), nil
}

// validateUTF16 rejects unpaired surrogates. x/text would silently replace
// them with U+FFFD.
func validateUTF16(b []byte, order binary.ByteOrder) error {
	for i := 0; i < len(b); i += 2 {
		unit := order.Uint16(b[i:])
		switch {
		case unit >= highSurrogateMin && unit < lowSurrogateMin:
			if i+4 > len(b) {
				return fmt.Errorf("%w: unpaired high surrogate at offset %d", ErrInvalidTextEncoding, i)
			}
			next := order.Uint16(b[i+2:])
			if next < lowSurrogateMin || next > lowSurrogateMax {
				return fmt.Errorf("%w: unpaired high surrogate at offset %d", ErrInvalidTextEncoding, i)
			}
			i += 2
		case unit >= lowSurrogateMin && unit <= lowSurrogateMax:
			return fmt.Errorf("%w: unpaired low surrogate at offset %d", ErrInvalidTextEncoding, i)
		}
	}
	return nil
}
