// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

package forwarder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"syscall"
	"time"

	"github.com/nishisan-dev/fluent-forward/internal/retry"
	"github.com/nishisan-dev/fluent-forward/internal/wire"
)

// ackReadBufInitialCap is the initial capacity of the growable buffer
// the worker accumulates ack bytes into (§4.6.1).
const ackReadBufInitialCap = 64

// worker owns the TCP connection and the receiving end of the submit
// queue exclusively after it is spawned; no other goroutine touches the
// conn. It runs single-threaded until Terminate, connection loss, or
// the submitter side goes away.
type worker struct {
	conn   net.Conn
	queue  *unboundedQueue
	done   chan struct{}
	retry  retry.Config
	logger *slog.Logger
}

func newWorker(conn net.Conn, queue *unboundedQueue, retryCfg retry.Config, logger *slog.Logger) *worker {
	return &worker{
		conn:   conn,
		queue:  queue,
		done:   make(chan struct{}),
		retry:  retryCfg,
		logger: logger,
	}
}

// run is the worker's single loop: receive, encode, retry-write, repeat
// until Terminate or a fatal connection loss (§4.6).
func (w *worker) run() {
	defer close(w.done)
	defer w.conn.Close()

	for {
		msg := w.queue.pop()
		if msg.terminate {
			w.logger.Info("forwarder worker stopping on terminate message")
			return
		}
		if fatal := w.processRecord(msg.record); fatal {
			return
		}
	}
}

// processRecord encodes and retries a single record, returning true if
// the worker must exit (connection loss).
func (w *worker) processRecord(r *wire.Record) bool {
	encoded, err := wire.Encode(r)
	if err != nil {
		w.logger.Warn("dropping record: encode failed", "tag", r.Tag, "error", err)
		return false
	}

	for attempt := 0; attempt < w.retry.MaxAttempts; attempt++ {
		if wait := w.retry.Wait(attempt); wait > 0 {
			time.Sleep(wait)
		}

		err := w.writeAndAwaitAck(encoded, r.ChunkID)
		if err == nil {
			return false
		}

		if errors.Is(err, ErrConnectionClosed) {
			w.logger.Error("forwarder connection closed, worker exiting", "tag", r.Tag, "chunk", r.ChunkID, "error", err)
			return true
		}

		w.logger.Warn("forwarder write attempt failed",
			"tag", r.Tag, "chunk", r.ChunkID, "attempt", attempt+1, "error", err)
	}

	w.logger.Warn("forwarder max retries exceeded, dropping record",
		"tag", r.Tag, "chunk", r.ChunkID, "attempts", w.retry.MaxAttempts)
	return false
}

// writeAndAwaitAck implements §4.6.1: write the full frame, then read
// and accumulate bytes until a complete ack decodes, mismatches, or the
// connection closes.
func (w *worker) writeAndAwaitAck(encoded []byte, chunkID string) error {
	if err := writeFull(w.conn, encoded); err != nil {
		return classifyIOErr(err)
	}

	buf := make([]byte, 0, ackReadBufInitialCap)
	readChunk := make([]byte, 4096)
	for {
		n, err := w.conn.Read(readChunk)
		if n > 0 {
			buf = append(buf, readChunk[:n]...)
			ack, decErr := wire.DecodeAck(buf)
			if decErr == nil {
				if ack == chunkID {
					return nil
				}
				return fmt.Errorf("%w: got %q want %q", ErrAckUnmatched, ack, chunkID)
			}
			if !errors.Is(decErr, wire.ErrIncompleteAck) {
				return fmt.Errorf("%w: %v", ErrReadFailed, decErr)
			}
			// Incomplete: fall through and read more.
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrConnectionClosed
			}
			if cerr := classifyIOErr(err); errors.Is(cerr, ErrConnectionClosed) {
				return cerr
			}
			return fmt.Errorf("%w: %v", ErrReadFailed, err)
		}
	}
}

// writeFull writes buf in its entirety, retrying partial writes at the
// byte-stream layer until all bytes are written or an I/O error occurs.
func writeFull(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}

// classifyIOErr distinguishes a dead connection from a transient I/O
// hiccup: resets, aborts, and broken pipes mean the peer is gone and the
// worker must exit; anything else is counted as a retriable attempt.
func classifyIOErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) {
		return ErrConnectionClosed
	}
	return fmt.Errorf("%w: %v", ErrWriteFailed, err)
}
