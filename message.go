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

	"github.com/hsanjuan/go-ndef"
)

// NDEF record header flags.
const (
	headerCF      = 0x20
	headerSR      = 0x10
	headerIL      = 0x08
	headerTNFMask = 0x07
)

// Result is the outcome of decoding one record of a message. Exactly one of
// Value and Err is set.
type Result struct {
	Value  Value
	Err    error
	Record Record
}

// ParseMessage splits a raw NDEF message into records. The input must be the
// message itself, already unwrapped from any tag TLV block. Chunked records
// are joined into a single Record carrying the first chunk's TNF and type.
// Apart from joined chunks, record slices share memory with raw.
func ParseMessage(raw []byte) ([]Record, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrInvalidMessage)
	}

	var records []Record
	var chunked *Record
	offset := 0
	for offset < len(raw) {
		rec, flags, next, err := parseRecord(raw, offset)
		if err != nil {
			return nil, err
		}
		start := offset
		offset = next

		switch {
		case chunked != nil:
			if rec.TNF != TNFUnchanged || len(rec.Type) != 0 {
				return nil, fmt.Errorf("%w: chunk at offset %d is not TNF Unchanged", ErrInvalidMessage, start)
			}
			chunked.Payload = append(chunked.Payload, rec.Payload...)
			if flags&headerCF == 0 {
				records = append(records, *chunked)
				chunked = nil
			}
		case flags&headerCF != 0:
			first := rec
			first.Payload = append([]byte(nil), rec.Payload...)
			chunked = &first
		default:
			records = append(records, rec)
		}
	}

	if chunked != nil {
		return nil, fmt.Errorf("%w: message ends inside a chunked record", ErrInvalidMessage)
	}
	return records, nil
}

// parseRecord reads the record starting at offset and returns it with its
// header flags and the offset of the following record.
func parseRecord(raw []byte, offset int) (rec Record, flags byte, next int, err error) {
	start := offset
	need := func(n int) error {
		if n < 0 || len(raw)-offset < n {
			return fmt.Errorf("%w: record at offset %d truncated", ErrInvalidMessage, start)
		}
		return nil
	}

	if err = need(2); err != nil {
		return Record{}, 0, 0, err
	}
	flags = raw[offset]
	typeLen := int(raw[offset+1])
	offset += 2

	var payloadLen int
	if flags&headerSR != 0 {
		if err = need(1); err != nil {
			return Record{}, 0, 0, err
		}
		payloadLen = int(raw[offset])
		offset++
	} else {
		if err = need(4); err != nil {
			return Record{}, 0, 0, err
		}
		n := binary.BigEndian.Uint32(raw[offset:])
		if uint64(n) > uint64(len(raw)) {
			return Record{}, 0, 0, fmt.Errorf("%w: record at offset %d truncated", ErrInvalidMessage, start)
		}
		payloadLen = int(n)
		offset += 4
	}

	idLen := 0
	if flags&headerIL != 0 {
		if err = need(1); err != nil {
			return Record{}, 0, 0, err
		}
		idLen = int(raw[offset])
		offset++
	}

	if err = need(typeLen + idLen + payloadLen); err != nil {
		return Record{}, 0, 0, err
	}
	rec.TNF = TNF(flags & headerTNFMask)
	rec.Type = raw[offset : offset+typeLen]
	offset += typeLen + idLen
	rec.Payload = raw[offset : offset+payloadLen]
	offset += payloadLen

	return rec, flags, offset, nil
}

// DecodeMessage parses raw and decodes every record in it. A record that
// fails to decode is reported in its Result and does not stop the others.
// An error is returned only when raw cannot be split into records.
func DecodeMessage(raw []byte) ([]Result, error) {
	records, err := ParseMessage(raw)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(records))
	for _, rec := range records {
		value, err := Decode(rec)
		results = append(results, Result{Record: rec, Value: value, Err: err})
	}
	return results, nil
}

// RecordFromNDEF converts a record parsed by github.com/hsanjuan/go-ndef.
// The payload is the one go-ndef marshals back from its parsed form.
func RecordFromNDEF(rec *ndef.Record) (Record, error) {
	if rec == nil {
		return Record{}, fmt.Errorf("%w: nil record", ErrInvalidMessage)
	}
	payload, err := rec.Payload()
	if err != nil {
		return Record{}, fmt.Errorf("failed to get NDEF record payload: %w", err)
	}
	return Record{
		TNF:     TNF(rec.TNF()),
		Type:    []byte(rec.Type()),
		Payload: payload.Marshal(),
	}, nil
}
