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

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		typeField []byte
		tnf       TNF
		want      Strategy
	}{
		{name: "well-known URI", tnf: TNFWellKnown, typeField: []byte("U"), want: StrategyURI},
		{name: "well-known Text", tnf: TNFWellKnown, typeField: []byte("T"), want: StrategyText},
		{name: "well-known smart poster", tnf: TNFWellKnown, typeField: []byte("Sp"), want: StrategyUnrecognized},
		{name: "lowercase u", tnf: TNFWellKnown, typeField: []byte("u"), want: StrategyUnrecognized},
		{name: "U with trailing byte", tnf: TNFWellKnown, typeField: []byte("UU"), want: StrategyUnrecognized},
		{name: "empty type", tnf: TNFWellKnown, typeField: []byte{}, want: StrategyUnrecognized},
		{name: "nil type", tnf: TNFWellKnown, typeField: nil, want: StrategyUnrecognized},
		{name: "non-ASCII type", tnf: TNFWellKnown, typeField: []byte{0xD5}, want: StrategyUnrecognized},
		{name: "media U", tnf: TNFMedia, typeField: []byte("U"), want: StrategyUnrecognized},
		{name: "absolute URI", tnf: TNFAbsoluteURI, typeField: []byte("U"), want: StrategyUnrecognized},
		{name: "external T", tnf: TNFExternal, typeField: []byte("T"), want: StrategyUnrecognized},
		{name: "empty TNF", tnf: TNFEmpty, typeField: nil, want: StrategyUnrecognized},
		{name: "unknown TNF", tnf: TNFUnknown, typeField: []byte("T"), want: StrategyUnrecognized},
		{name: "unchanged TNF", tnf: TNFUnchanged, typeField: []byte("U"), want: StrategyUnrecognized},
		{name: "reserved TNF", tnf: TNFReserved, typeField: []byte("U"), want: StrategyUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.tnf, tt.typeField))
		})
	}
}

func TestPropertyClassifyOnlyWellKnownDecodes(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		tnf := TNF(rapid.ByteRange(0, 0xFF).Draw(t, "tnf"))
		typeField := rapid.SliceOfN(rapid.Byte(), 0, 8).Draw(t, "type")

		got := Classify(tnf, typeField)
		if tnf != TNFWellKnown && got != StrategyUnrecognized {
			t.Fatalf("Classify(%v, %q) = %v, want unrecognized", tnf, typeField, got)
		}
	})
}

func TestTNFString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NfcWellKnown", TNFWellKnown.String())
	assert.Equal(t, "AbsoluteUri", TNFAbsoluteURI.String())
	assert.Equal(t, "TNF(0x09)", TNF(0x09).String())
	assert.Equal(t, "uri", StrategyURI.String())
	assert.Equal(t, "Strategy(9)", Strategy(9).String())
}
