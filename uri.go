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
	"fmt"
	"unicode/utf8"
)

// uriPrefixes maps URI record abbreviation codes to their prefixes, as listed
// in the NFC Forum URI Record Type Definition. Index is the code.
var uriPrefixes = [...]string{
	0x00: "",
	0x01: "http://www.",
	0x02: "https://www.",
	0x03: "http://",
	0x04: "https://",
	0x05: "tel:",
	0x06: "mailto:",
	0x07: "ftp://anonymous:anonymous@",
	0x08: "ftp://ftp.",
	0x09: "ftps://",
	0x0A: "sftp://",
	0x0B: "smb://",
	0x0C: "nfs://",
	0x0D: "ftp://",
	0x0E: "dav://",
	0x0F: "news:",
	0x10: "telnet://",
	0x11: "imap:",
	0x12: "rtsp://",
	0x13: "urn:",
	0x14: "pop:",
	0x15: "sip:",
	0x16: "sips:",
	0x17: "tftp:",
	0x18: "btspp://",
	0x19: "btl2cap://",
	0x1A: "btgoep://",
	0x1B: "tcpobex://",
	0x1C: "irdaobex://",
	0x1D: "file://",
	0x1E: "urn:epc:id:",
	0x1F: "urn:epc:tag:",
	0x20: "urn:epc:pat:",
	0x21: "urn:epc:raw:",
	0x22: "urn:epc:",
	0x23: "urn:nfc:",
}

// URIPrefixCount is the number of defined abbreviation codes (0x00-0x23).
const URIPrefixCount = len(uriPrefixes)

// URIPrefix returns the prefix for an abbreviation code. The second result is
// false for codes outside the table.
func URIPrefix(code byte) (string, bool) {
	if int(code) >= len(uriPrefixes) {
		return "", false
	}
	return uriPrefixes[code], true
}

// URIRecord is a decoded NFC Forum well-known "U" record.
type URIRecord struct {
	Suffix     string
	SchemeCode byte
}

// Kind implements Value.
func (URIRecord) Kind() Kind { return KindURI }

// Prefix returns the expansion of SchemeCode, or "" if it is not a valid code.
func (u URIRecord) Prefix() string {
	prefix, _ := URIPrefix(u.SchemeCode)
	return prefix
}

// String returns the full URI: the expanded prefix followed by the suffix.
func (u URIRecord) String() string {
	return u.Prefix() + u.Suffix
}

func (URIRecord) isValue() {}

// DecodeURI decodes a URI record payload: one abbreviation code byte followed
// by the UTF-8 remainder of the URI.
func DecodeURI(payload []byte) (URIRecord, error) {
	if len(payload) == 0 {
		return URIRecord{}, ErrEmptyPayload
	}

	code := payload[0]
	if _, ok := URIPrefix(code); !ok {
		return URIRecord{}, fmt.Errorf("%w: 0x%02X", ErrInvalidURICode, code)
	}

	suffix := payload[1:]
	if !utf8.Valid(suffix) {
		return URIRecord{}, fmt.Errorf("%w: malformed UTF-8", ErrInvalidURISuffix)
	}

	return URIRecord{SchemeCode: code, Suffix: string(suffix)}, nil
}
