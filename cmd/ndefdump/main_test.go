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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ndefdecode "github.com/ZaparooProject/go-ndefdecode"
	testutil "github.com/ZaparooProject/go-ndefdecode/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func hexMessage(records ...testutil.RawRecord) string {
	return fmt.Sprintf("%X", testutil.BuildMessage(records...))
}

func uriRecord(code byte, suffix string) testutil.RawRecord {
	return testutil.RawRecord{TNF: 0x01, Type: []byte("U"), Payload: testutil.BuildURIPayload(code, suffix)}
}

func textRecord(locale, text string) testutil.RawRecord {
	return testutil.RawRecord{TNF: 0x01, Type: []byte("T"), Payload: testutil.BuildTextPayload(locale, text)}
}

func runCLI(t *testing.T, stdin string, args ...string) (code int, stdout string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String()
}

func TestRun_HexFlag(t *testing.T) {
	code, out := runCLI(t, "", "-hex", hexMessage(uriRecord(0x01, "example.com")))

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "-hex: 1 record(s)")
	assert.Contains(t, out, `Record 0: TNF=NfcWellKnown Type="U"`)
	assert.Contains(t, out, "URI: http://www.example.com")
}

func TestRun_StdinBatchKeepsGoingAfterBadRecords(t *testing.T) {
	stdin := strings.Join([]string{
		hexMessage(textRecord("en", "first"), uriRecord(0x50, "bad")),
		"zz",
		hexMessage(testutil.RawRecord{TNF: 0x02, Type: []byte("image/png"), Payload: []byte{0x89}}),
		hexMessage(textRecord("en", "last")),
	}, "\n")

	code, out := runCLI(t, stdin)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "TEXT: first [en, UTF-8]")
	assert.Contains(t, out, "ERROR: No Text (invalid URI abbreviation code: 0x50)")
	assert.Contains(t, out, "stdin:2: ERROR: invalid hex message")
	assert.Contains(t, out, "UNKNOWN: Type unknown")
	assert.Contains(t, out, "TEXT: last [en, UTF-8]")
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "last"))
}

func TestRun_FilesInArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 6 {
		path := filepath.Join(dir, fmt.Sprintf("tag%d.txt", i))
		content := hexMessage(textRecord("en", fmt.Sprintf("tag-%d", i))) + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		paths = append(paths, path)
	}

	code, out := runCLI(t, "", append([]string{"-jobs", "2"}, paths...)...)

	require.Equal(t, 0, code)
	last := -1
	for i := range 6 {
		idx := strings.Index(out, fmt.Sprintf("tag-%d", i))
		require.Greater(t, idx, last, "tag-%d out of order", i)
		last = idx
	}
}

func TestRun_MissingFileKeepsOtherInputs(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte(hexMessage(textRecord("en", "still here"))+"\n"), 0o600))

	code, out := runCLI(t, "", filepath.Join(dir, "missing.txt"), good)

	assert.Equal(t, 1, code)
	assert.Contains(t, out, "missing.txt: ERROR: failed to open input")
	assert.Contains(t, out, "TEXT: still here [en, UTF-8]")
}

func TestRun_OversizedLineDoesNotDropBatch(t *testing.T) {
	stdin := strings.Join([]string{
		hexMessage(uriRecord(0x01, "ab")),
		strings.Repeat("00", 1<<17),
		hexMessage(uriRecord(0x01, "cd")),
	}, "\n")

	code, out := runCLI(t, stdin)

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "URI: http://www.ab")
	assert.Contains(t, out, "stdin:2: ERROR: line too long")
	assert.Contains(t, out, "URI: http://www.cd")
}

func TestRun_JSON(t *testing.T) {
	code, out := runCLI(t, "", "-json", "-hex", hexMessage(
		textRecord("de", "Hallo"),
		uriRecord(0x24, "x"),
	))
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var first, second recordJSON
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, recordJSON{
		Source: "-hex", Record: 0, TNF: "NfcWellKnown", Type: "T",
		Kind: "text", Value: "Hallo", Locale: "de", Encoding: "UTF-8",
	}, first)
	assert.Equal(t, 1, second.Record)
	assert.Contains(t, second.Error, "invalid URI abbreviation code")
	assert.Empty(t, second.Kind)
}

func TestRun_InvalidMessageJSON(t *testing.T) {
	code, out := runCLI(t, "", "-json", "-hex", "D1")
	require.Equal(t, 0, code)

	var rec recordJSON
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &rec))
	assert.Equal(t, -1, rec.Record)
	assert.Contains(t, rec.Error, "invalid NDEF message")
}

func TestRun_BadFlag(t *testing.T) {
	code, _ := runCLI(t, "", "-no-such-flag")
	assert.Equal(t, 2, code)
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value     ndefdecode.Value
		err       error
		name      string
		wantLabel string
		wantText  string
	}{
		{
			name:      "uri",
			value:     ndefdecode.URIRecord{SchemeCode: 0x05, Suffix: "+123"},
			wantLabel: "URI",
			wantText:  "tel:+123",
		},
		{
			name:      "text",
			value:     ndefdecode.TextRecord{Locale: "en", Text: "hi", Encoding: ndefdecode.EncodingUTF16},
			wantLabel: "TEXT",
			wantText:  "hi [en, UTF-16]",
		},
		{
			name:      "empty text",
			value:     ndefdecode.TextRecord{Locale: "en"},
			wantLabel: "TEXT",
			wantText:  "No Text",
		},
		{
			name:      "unrecognized",
			value:     ndefdecode.Unrecognized{TNF: ndefdecode.TNFMedia, Type: "image/png"},
			wantLabel: "UNKNOWN",
			wantText:  "Type unknown",
		},
		{
			name:      "error",
			err:       ndefdecode.ErrEmptyPayload,
			wantLabel: "ERROR",
			wantText:  "No Text (empty payload)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			label, text := Render(tt.value, tt.err)
			assert.Equal(t, tt.wantLabel, label)
			assert.Equal(t, tt.wantText, text)
		})
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"/dev/ttyUSB0", "COM3"}, splitList(" /dev/ttyUSB0, ,COM3"))
	assert.Nil(t, splitList(""))
}
