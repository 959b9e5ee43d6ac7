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
	"encoding/json"
	"fmt"
	"io"

	ndefdecode "github.com/ZaparooProject/go-ndefdecode"
	"github.com/ZaparooProject/go-ndefdecode/source"
)

// Placeholders shown when a record has nothing to display.
const (
	placeholderUnrecognized = "Type unknown"
	placeholderNoText       = "No Text"
)

// Output handles consistent formatting of decoded records
type Output struct {
	w    io.Writer
	json bool
}

// NewOutput creates a new output handler
func NewOutput(w io.Writer, jsonLines bool) *Output {
	return &Output{w: w, json: jsonLines}
}

// recordJSON is the -json form of one decoded record.
type recordJSON struct {
	Source   string `json:"source"`
	TNF      string `json:"tnf,omitempty"`
	Type     string `json:"type,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Value    string `json:"value,omitempty"`
	Locale   string `json:"locale,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Error    string `json:"error,omitempty"`
	Line     int    `json:"line"`
	Record   int    `json:"record"`
}

// Message decodes and prints every record of msg. It never fails on bad
// data; problems are printed in place of the record.
func (o *Output) Message(msg source.Message) {
	if msg.Err != nil {
		o.messageError(msg, msg.Err)
		return
	}

	results, err := ndefdecode.DecodeMessage(msg.Data)
	if err != nil {
		o.messageError(msg, err)
		return
	}

	if !o.json {
		o.printf("%s: %d record(s)\n", location(msg), len(results))
	}
	for i, res := range results {
		o.record(msg, i, res)
	}
}

func (o *Output) messageError(msg source.Message, err error) {
	if o.json {
		o.writeJSON(recordJSON{Source: msg.Source, Line: msg.Line, Record: -1, Error: err.Error()})
		return
	}
	o.printf("%s: ERROR: %v\n", location(msg), err)
}

func (o *Output) record(msg source.Message, i int, res ndefdecode.Result) {
	if o.json {
		o.writeJSON(recordToJSON(msg, i, res))
		return
	}

	o.printf("      Record %d: TNF=%s Type=%q\n", i, res.Record.TNF, res.Record.Type)
	label, text := Render(res.Value, res.Err)
	o.printf("        %s: %s\n", label, text)
}

// Render returns a label and display text for one decode outcome.
func Render(value ndefdecode.Value, err error) (label, text string) {
	if err != nil {
		return "ERROR", fmt.Sprintf("%s (%v)", placeholderNoText, err)
	}

	switch v := value.(type) {
	case ndefdecode.URIRecord:
		return "URI", v.String()
	case ndefdecode.TextRecord:
		if v.Text == "" {
			return "TEXT", placeholderNoText
		}
		return "TEXT", fmt.Sprintf("%s [%s, %s]", v.Text, v.Locale, v.Encoding)
	default:
		return "UNKNOWN", placeholderUnrecognized
	}
}

func recordToJSON(msg source.Message, i int, res ndefdecode.Result) recordJSON {
	out := recordJSON{
		Source: msg.Source,
		Line:   msg.Line,
		Record: i,
		TNF:    res.Record.TNF.String(),
		Type:   string(res.Record.Type),
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
		return out
	}

	out.Kind = res.Value.Kind().String()
	out.Value = res.Value.String()
	if text, ok := res.Value.(ndefdecode.TextRecord); ok {
		out.Locale = text.Locale
		out.Encoding = text.Encoding.String()
	}
	return out
}

func (o *Output) writeJSON(v recordJSON) {
	data, err := json.Marshal(v)
	if err != nil {
		o.printf("{\"error\":%q}\n", err.Error())
		return
	}
	o.printf("%s\n", data)
}

// Error prints an error message
func (o *Output) Error(format string, args ...any) {
	o.printf("ERROR: "+format+"\n", args...)
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func location(msg source.Message) string {
	if msg.Line > 0 {
		return fmt.Sprintf("%s:%d", msg.Source, msg.Line)
	}
	return msg.Source
}
