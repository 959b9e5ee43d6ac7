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

import "fmt"

// TNF is the 3-bit Type Name Format field of an NDEF record header.
type TNF byte

// TNF values defined by the NFC Forum NDEF format.
const (
	TNFEmpty       TNF = 0x00
	TNFWellKnown   TNF = 0x01
	TNFMedia       TNF = 0x02
	TNFAbsoluteURI TNF = 0x03
	TNFExternal    TNF = 0x04
	TNFUnknown     TNF = 0x05
	TNFUnchanged   TNF = 0x06
	TNFReserved    TNF = 0x07
)

// String returns a human-readable name for the TNF.
func (t TNF) String() string {
	switch t {
	case TNFEmpty:
		return "Empty"
	case TNFWellKnown:
		return "NfcWellKnown"
	case TNFMedia:
		return "Media"
	case TNFAbsoluteURI:
		return "AbsoluteUri"
	case TNFExternal:
		return "NfcExternal"
	case TNFUnknown:
		return "Unknown"
	case TNFUnchanged:
		return "Unchanged"
	case TNFReserved:
		return "Reserved"
	default:
		return fmt.Sprintf("TNF(0x%02X)", byte(t))
	}
}

// Well-known record type names handled by the payload decoders.
const (
	WellKnownURI  = "U"
	WellKnownText = "T"
)

// Strategy selects which payload decoder applies to a record.
type Strategy int

const (
	// StrategyUnrecognized means the record carries no decodable content.
	StrategyUnrecognized Strategy = iota
	// StrategyURI selects the URI record decoder.
	StrategyURI
	// StrategyText selects the Text record decoder.
	StrategyText
)

func (s Strategy) String() string {
	switch s {
	case StrategyURI:
		return "uri"
	case StrategyText:
		return "text"
	case StrategyUnrecognized:
		return "unrecognized"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// Classify decides how a record's payload should be decoded. Only NFC Forum
// well-known records of type "U" or "T" are decodable; everything else,
// including type fields that are not ASCII, is StrategyUnrecognized.
func Classify(tnf TNF, typeField []byte) Strategy {
	if tnf != TNFWellKnown {
		return StrategyUnrecognized
	}
	typeName, ok := asciiString(typeField)
	if !ok {
		return StrategyUnrecognized
	}

	switch typeName {
	case WellKnownURI:
		return StrategyURI
	case WellKnownText:
		return StrategyText
	default:
		return StrategyUnrecognized
	}
}

// asciiString converts b to a string if every byte is 7-bit ASCII.
func asciiString(b []byte) (string, bool) {
	for _, c := range b {
		if c > 0x7F {
			return "", false
		}
	}
	return string(b), true
}
