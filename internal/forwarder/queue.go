// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

package forwarder

import (
	"sync"

	"github.com/nishisan-dev/fluent-forward/internal/wire"
)

// message is the submit channel's element: either a record to forward
// or the Terminate sentinel.
type message struct {
	record    *wire.Record
	terminate bool
}

// unboundedQueue is a growable FIFO of messages from many producers to
// a single worker consumer. Push never blocks on capacity — submit must
// not block on worker progress (§4.4) — so it is backed by a plain
// slice guarded by a mutex rather than a fixed-capacity channel.
type unboundedQueue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []message
}

func newUnboundedQueue() *unboundedQueue {
	q := &unboundedQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push enqueues m. It never blocks and never fails — a push after the
// worker has already exited simply sits in the queue until it is
// garbage collected with the queue itself.
func (q *unboundedQueue) push(m message) {
	q.mu.Lock()
	q.items = append(q.items, m)
	q.cond.Signal()
	q.mu.Unlock()
}

// pop blocks until an item is available, then returns it FIFO.
func (q *unboundedQueue) pop() message {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		q.cond.Wait()
	}
	m := q.items[0]
	q.items = q.items[1:]
	return m
}
