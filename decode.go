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

// Record is one NDEF record as handed over by a tag reader: its TNF, the raw
// type field and the raw payload. Decode never modifies or retains the slices.
type Record struct {
	Type    []byte
	Payload []byte
	TNF     TNF
}

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindURI
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindURI:
		return "uri"
	case KindText:
		return "text"
	case KindUnrecognized:
		return "unrecognized"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the result of decoding a record. It is one of URIRecord,
// TextRecord or Unrecognized.
type Value interface {
	// Kind reports which variant this is.
	Kind() Kind
	// String renders the value for display.
	String() string

	isValue()
}

// Unrecognized is returned for records that carry no URI or Text content.
// It keeps the record's TNF and type so callers can still describe it.
type Unrecognized struct {
	Type string
	TNF  TNF
}

// Kind implements Value.
func (Unrecognized) Kind() Kind { return KindUnrecognized }

// String returns an empty string; there is no content to render.
func (Unrecognized) String() string { return "" }

func (Unrecognized) isValue() {}

// Decode classifies rec and decodes its payload. Records that are not
// well-known URI or Text records decode to Unrecognized without error.
// Payload errors from DecodeURI and DecodeText are returned as is.
func Decode(rec Record) (Value, error) {
	strategy := Classify(rec.TNF, rec.Type)
	switch strategy {
	case StrategyURI:
		uri, err := DecodeURI(rec.Payload)
		if err != nil {
			return nil, err
		}
		return uri, nil
	case StrategyText:
		text, err := DecodeText(rec.Payload)
		if err != nil {
			return nil, err
		}
		return text, nil
	case StrategyUnrecognized:
		return Unrecognized{TNF: rec.TNF, Type: string(rec.Type)}, nil
	default:
		panic(fmt.Sprintf("ndefdecode: unhandled strategy %v", strategy))
	}
}
