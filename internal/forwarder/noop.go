// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

package forwarder

// NoopClient satisfies Forwarder but opens no TCP connection, spawns no
// worker, and silently discards every record. Useful in tests and in
// disabled-logging builds where wiring a real Client would otherwise
// require a live aggregator.
type NoopClient struct{}

var _ Forwarder = NoopClient{}

// NewNoop constructs a NoopClient.
func NewNoop() NoopClient { return NoopClient{} }

// Send always succeeds and discards payload.
func (NoopClient) Send(tag string, payload map[string]any) error { return nil }

// SendWithTime always succeeds and discards payload.
func (NoopClient) SendWithTime(tag string, payload map[string]any, timestamp int64) error {
	return nil
}

// Stop always succeeds; there is no worker to terminate.
func (NoopClient) Stop() error { return nil }
