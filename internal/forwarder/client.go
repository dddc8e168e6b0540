// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

// Package forwarder implements the submit-channel handoff, the
// background worker, and the public Client handle described by the
// specification's §4.4–§4.6: the part of this library that owns a
// Fluentd Forward TCP connection, encodes records onto it, and retries
// with exponential backoff until a chunk is acknowledged.
package forwarder

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nishisan-dev/fluent-forward/internal/logging"
	"github.com/nishisan-dev/fluent-forward/internal/retry"
	"github.com/nishisan-dev/fluent-forward/internal/value"
	"github.com/nishisan-dev/fluent-forward/internal/wire"
)

// Config is the runtime (not on-disk) configuration for constructing a
// Client: a resolved address, a connect timeout, and the retry
// schedule.
type Config struct {
	Address        string
	ConnectTimeout time.Duration
	Retry          retry.Config
}

// Forwarder is the interface satisfied by both Client and NoopClient,
// letting callers disable log forwarding without branching on a
// concrete type (§6, "no-op client variant").
type Forwarder interface {
	Send(tag string, payload map[string]any) error
	SendWithTime(tag string, payload map[string]any, timestamp int64) error
	Stop() error
}

// Client is the public facade: it owns the sending end of the submit
// queue and is safe to share across producer goroutines. Cloning is
// unnecessary — pass the same *Client to every producer, since all of
// them feed the same queue and worker.
type Client struct {
	queue    *unboundedQueue
	done     chan struct{}
	stopOnce sync.Once
	logger   *slog.Logger
}

var _ Forwarder = (*Client)(nil)

// New resolves cfg.Address, opens a TCP connection bounded by
// cfg.ConnectTimeout, and spawns the background worker that owns it.
// The returned Client owns the sending end of the submit queue.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Retry.Validate(); err != nil {
		return nil, err
	}

	dialer := net.Dialer{Timeout: cfg.ConnectTimeout}
	conn, err := dialer.Dial("tcp", cfg.Address)
	if err != nil {
		return nil, classifyConnectErr(err)
	}

	q := newUnboundedQueue()
	w := newWorker(conn, q, cfg.Retry, logging.Component(logger, "forwarder_worker"))
	go w.run()

	c := &Client{queue: q, done: w.done, logger: logging.Component(logger, "forwarder_client")}
	runtime.SetFinalizer(c, finalizeClient)
	return c, nil
}

// finalizeClient implements the best-effort Terminate-on-drop behavior
// of §4.5 "Destruction" — Go has no deterministic destructors, so this
// runs from the garbage collector when the last reference to c is gone
// and Stop was never called.
func finalizeClient(c *Client) {
	_ = c.enqueue(message{terminate: true})
}

// Send is equivalent to SendWithTime(tag, payload, now) where now is
// the current wall-clock second since the Unix epoch.
func (c *Client) Send(tag string, payload map[string]any) error {
	return c.SendWithTime(tag, payload, time.Now().Unix())
}

// SendWithTime stamps a fresh chunk id, builds a Record, and enqueues
// it for the worker. It never performs I/O and never blocks on the
// network — the only failure mode is the worker having already
// terminated.
func (c *Client) SendWithTime(tag string, payload map[string]any, timestamp int64) error {
	m, err := value.FromGoMap(payload)
	if err != nil {
		return fmt.Errorf("forwarder: building payload: %w", err)
	}
	record := &wire.Record{
		Tag:       tag,
		Timestamp: timestamp,
		Payload:   m,
		ChunkID:   newChunkID(),
	}
	return c.enqueue(message{record: record})
}

// Stop enqueues Terminate and consumes the handle; subsequent calls are
// idempotent.
func (c *Client) Stop() error {
	var err error
	c.stopOnce.Do(func() {
		runtime.SetFinalizer(c, nil)
		err = c.enqueue(message{terminate: true})
	})
	return err
}

// enqueue pushes m unless the worker has already exited, in which case
// it reports a SubmitError rather than silently dropping the message.
func (c *Client) enqueue(m message) error {
	select {
	case <-c.done:
		return errWorkerTerminated
	default:
	}
	c.queue.push(m)
	return nil
}

// newChunkID produces the base64 of a fresh 128-bit identifier, unique
// per record across the process lifetime with overwhelming probability.
func newChunkID() string {
	id := uuid.New()
	return base64.StdEncoding.EncodeToString(id[:])
}

// classifyConnectErr maps a net.Dialer.Dial failure onto the Connect
// error kinds the spec's §4.5/§7 require the caller be able to
// distinguish.
func classifyConnectErr(err error) *ConnectError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ConnectError{Kind: ConnectErrorTimeout, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &ConnectError{Kind: ConnectErrorResolve, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if _, ok := opErr.Err.(*net.AddrError); ok {
			return &ConnectError{Kind: ConnectErrorResolve, Err: err}
		}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &ConnectError{Kind: ConnectErrorRefused, Err: err}
	}

	return &ConnectError{Kind: ConnectErrorUnknown, Err: err}
}
