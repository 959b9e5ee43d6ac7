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

// Package transport provides retry helpers for opening record sources.
package transport

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrRetriesExhausted is returned when every attempt asked to be retried.
var ErrRetriesExhausted = errors.New("retries exhausted")

// RetryOperation represents a function that can be retried
// Returns: data, shouldRetry, error
// - data: the result if successful
// - shouldRetry: true if the operation should be retried; err is then the
// transient cause and is reported if retries run out
// - error: with shouldRetry false, a permanent error that stops retries
type RetryOperation[T any] func() (T, bool, error)

// RetryConfig configures retry behavior
type RetryConfig struct {
	OnRetry     func(attempt int, cause error)
	Description string
	MaxRetries  int
	RetryDelay  time.Duration
}

// WithRetry executes an operation with retry logic, waiting RetryDelay
// between attempts. It stops early when ctx is done.
func WithRetry[T any](ctx context.Context, config RetryConfig, operation RetryOperation[T]) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		result, shouldRetry, err := operation()
		if !shouldRetry {
			if err != nil {
				return zero, err
			}
			return result, nil
		}
		lastErr = err

		// If we should retry but we're at max attempts, break
		if attempt >= config.MaxRetries {
			break
		}

		if config.OnRetry != nil {
			config.OnRetry(attempt+1, err)
		}

		if err := sleepContext(ctx, config.RetryDelay); err != nil {
			return zero, err
		}
	}

	return zero, retriesExhausted(config.Description, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retriesExhausted(description string, cause error) error {
	if description == "" {
		description = "operation"
	}
	if cause == nil {
		return fmt.Errorf("%s: %w", description, ErrRetriesExhausted)
	}
	return fmt.Errorf("%s: %w: %w", description, ErrRetriesExhausted, cause)
}
