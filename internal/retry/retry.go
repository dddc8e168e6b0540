// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

// Package retry implements the forwarder's retry policy: a pure
// function mapping a 0-based attempt index to the wait that precedes
// it, with exponential growth capped at a configured ceiling.
package retry

import (
	"fmt"
	"math"
	"time"
)

// Config holds the retry schedule's parameters.
type Config struct {
	InitialWait time.Duration
	MaxAttempts int
	MaxWait     time.Duration
}

// DefaultConfig returns the spec's documented defaults: 500ms initial
// wait, 10 attempts, 60s cap.
func DefaultConfig() Config {
	return Config{
		InitialWait: 500 * time.Millisecond,
		MaxAttempts: 10,
		MaxWait:     60 * time.Second,
	}
}

// Validate enforces the invariants: initial wait cannot exceed the cap,
// and at least one attempt must be permitted.
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("retry: max_attempts must be >= 1, got %d", c.MaxAttempts)
	}
	if c.InitialWait > c.MaxWait {
		return fmt.Errorf("retry: initial_wait (%s) must not exceed max_wait (%s)", c.InitialWait, c.MaxWait)
	}
	return nil
}

// Wait returns the backoff that precedes attempt i (0-based). Attempt 0
// is immediate. For i >= 1 the wait grows as
// initial * 1.5^(i-1), clamped to MaxWait — the cap is inclusive, so an
// attempt that would naturally exceed it is clamped rather than
// skipped.
func (c Config) Wait(i int) time.Duration {
	if i <= 0 {
		return 0
	}
	grown := float64(c.InitialWait) * math.Pow(1.5, float64(i-1))
	if grown > float64(c.MaxWait) || math.IsInf(grown, 1) {
		return c.MaxWait
	}
	return time.Duration(grown)
}
