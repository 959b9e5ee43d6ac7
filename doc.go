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

/*
Package ndefdecode decodes NFC Data Exchange Format (NDEF) records into URI
and Text values.

A record is classified by its Type Name Format and type field. NFC Forum
well-known records of type "U" are decoded as URIs, records of type "T" as
text, and everything else is reported as Unrecognized rather than as an
error.

Features:
  - URI records with the 36 NFC Forum abbreviation codes (0x00-0x23)
  - Text records with ASCII locales and UTF-8 or UTF-16 bodies
  - Splitting raw NDEF messages into records, including chunked records
  - Adapting records parsed by github.com/hsanjuan/go-ndef

Basic Usage:

	value, err := ndefdecode.Decode(ndefdecode.Record{
	    TNF:     ndefdecode.TNFWellKnown,
	    Type:    []byte("U"),
	    Payload: append([]byte{0x01}, "example.com"...),
	})
	if err != nil {
	    return err
	}
	fmt.Println(value) // http://www.example.com

	// Or decode a whole message
	results, err := ndefdecode.DecodeMessage(raw)
	if err != nil {
	    return err
	}
	for _, res := range results {
	    if res.Err != nil {
	        continue
	    }
	    fmt.Println(res.Value)
	}

Error Handling:

Payload problems are reported with sentinel errors that can be inspected:

	if errors.Is(err, ndefdecode.ErrInvalidURICode) {
	    // Handle unknown abbreviation code
	}

Decoding is deterministic, so a failed record fails the same way every time.
DecodeMessage reports such failures per record and keeps going.

Thread Safety:

All functions are safe for concurrent use. Decoding holds no state and never
retains the caller's byte slices.
*/
package ndefdecode
