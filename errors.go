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

import "errors"

// Record decode errors. Each one describes malformed payload data and is
// returned to the caller unchanged by Decode, so errors.Is can be used to
// tell them apart.
var (
	// ErrEmptyPayload is returned when a Text or URI payload has no bytes.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrTruncatedPayload is returned when a Text status byte claims a locale
	// longer than the remaining payload.
	ErrTruncatedPayload = errors.New("truncated payload")
	// ErrInvalidLocale is returned when a Text locale contains non-ASCII bytes.
	ErrInvalidLocale = errors.New("invalid locale")
	// ErrInvalidTextEncoding is returned when Text bytes are not valid UTF-8
	// or UTF-16.
	ErrInvalidTextEncoding = errors.New("invalid text encoding")
	// ErrInvalidURISuffix is returned when a URI suffix is not valid UTF-8.
	ErrInvalidURISuffix = errors.New("invalid URI suffix")
	// ErrInvalidURICode is returned for URI abbreviation codes above 0x23.
	ErrInvalidURICode = errors.New("invalid URI abbreviation code")
)

// ErrInvalidMessage is returned when raw bytes cannot be split into NDEF
// records at all.
var ErrInvalidMessage = errors.New("invalid NDEF message")

var decodeErrors = []error{
	ErrEmptyPayload,
	ErrTruncatedPayload,
	ErrInvalidLocale,
	ErrInvalidTextEncoding,
	ErrInvalidURISuffix,
	ErrInvalidURICode,
}

// IsDecodeError reports whether err is a per-record payload error. These are
// deterministic, so retrying the same record never helps.
func IsDecodeError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range decodeErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
