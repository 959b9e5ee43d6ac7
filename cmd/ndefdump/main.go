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

// Command ndefdump decodes NDEF records and prints their URI or Text content.
//
// Messages are read as hex, one per line, from files, stdin, the -hex flag
// or a serial bridge that prints "NDEF<tab>hex" lines.
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ZaparooProject/go-ndefdecode/source"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type config struct {
	hexMessage *string
	serialPath *string
	ignore     *string
	baud       *int
	jobs       *int
	timeout    *time.Duration
	listPorts  *bool
	jsonOut    *bool
	debug      *bool
	files      []string
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("ndefdump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := &config{
		hexMessage: fs.String("hex", "", "Decode a single hex-encoded NDEF message"),
		serialPath: fs.String("serial", "",
			"Serial bridge device path (e.g., /dev/ttyUSB0 or COM3)"),
		ignore:    fs.String("ignore", "", "Comma-separated serial paths to skip when listing ports"),
		baud:      fs.Int("baud", 115200, "Serial baud rate"),
		jobs:      fs.Int("jobs", 4, "Number of input files read in parallel"),
		timeout:   fs.Duration("timeout", 0, "Stop reading the serial bridge after this long (0 = until interrupted)"),
		listPorts: fs.Bool("list-ports", false, "List serial ports and exit"),
		jsonOut:   fs.Bool("json", false, "Print one JSON object per record"),
		debug:     fs.Bool("debug", false, "Enable debug output"),
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.files = fs.Args()
	return cfg, nil
}

func setupLogging(stderr io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	setupLogging(stderr, *cfg.debug)
	out := NewOutput(stdout, *cfg.jsonOut)

	switch {
	case *cfg.listPorts:
		return listPorts(out, splitList(*cfg.ignore))
	case *cfg.serialPath != "":
		return runSerial(ctx, cfg, out)
	case *cfg.hexMessage != "":
		return decodeHexFlag(out, *cfg.hexMessage)
	default:
		return decodeFiles(ctx, cfg, stdin, out)
	}
}

func listPorts(out *Output, ignore []string) int {
	ports, err := source.Ports(ignore)
	if err != nil {
		out.Error("%v", err)
		return 1
	}
	for _, p := range ports {
		out.printf("%s\n", p)
	}
	return 0
}

func decodeHexFlag(out *Output, hexMessage string) int {
	data, err := source.ParseLine(hexMessage, false)
	out.Message(source.Message{Source: "-hex", Data: data, Err: err})
	return 0
}

func decodeFiles(ctx context.Context, cfg *config, stdin io.Reader, out *Output) int {
	paths := cfg.files
	if len(paths) == 0 {
		paths = []string{stdinName}
	}

	groups, err := readInputs(ctx, afero.NewOsFs(), paths, stdin, *cfg.jobs)
	if groups == nil && err != nil {
		out.Error("%v", err)
		return 1
	}
	for _, msgs := range groups {
		for _, msg := range msgs {
			out.Message(msg)
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("some inputs could not be read")
		return 1
	}
	return 0
}

func runSerial(ctx context.Context, cfg *config, out *Output) int {
	if *cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *cfg.timeout)
		defer cancel()
	}

	serialCfg := source.DefaultSerialConfig(*cfg.serialPath)
	serialCfg.BaudRate = *cfg.baud
	src := source.NewSerialSource(serialCfg)

	messages := make(chan source.Message)
	errCh := make(chan error, 1)
	go func() {
		errCh <- src.Run(ctx, messages)
		close(messages)
	}()

	for msg := range messages {
		out.Message(msg)
	}
	if err := <-errCh; err != nil {
		log.Error().Err(err).Msg("serial source stopped")
		return 1
	}
	return 0
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
