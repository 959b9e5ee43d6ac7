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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ZaparooProject/go-ndefdecode/source"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// stdinName is both the file argument that selects stdin and its label.
const stdinName = "-"

// readInputs reads messages from every path concurrently, at most jobs at a
// time, and returns them grouped in argument order. A path that cannot be
// read yields an error Message in its group and is included in the joined
// error; the other groups are still returned. Stdin is read once, for the
// first "-" only.
func readInputs(ctx context.Context, fs afero.Fs, paths []string, stdin io.Reader, jobs int) ([][]source.Message, error) {
	results := make([][]source.Message, len(paths))
	failures := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	stdinRead := false
	for i, path := range paths {
		if path == stdinName {
			if stdinRead {
				continue
			}
			stdinRead = true
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			msgs, err := readInput(fs, path, stdin)
			if err != nil {
				failures[i] = err
				msgs = append(msgs, source.Message{Source: inputLabel(path), Err: err})
			}
			results[i] = msgs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, errors.Join(failures...)
}

func inputLabel(path string) string {
	if path == stdinName {
		return "stdin"
	}
	return path
}

func readInput(fs afero.Fs, path string, stdin io.Reader) ([]source.Message, error) {
	if path == stdinName {
		return source.ReadHexLines(stdin, inputLabel(path))
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	return source.ReadHexLines(f, path)
}
