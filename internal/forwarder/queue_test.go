// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

package forwarder

import (
	"testing"

	"github.com/nishisan-dev/fluent-forward/internal/wire"
)

func TestQueueFIFO(t *testing.T) {
	q := newUnboundedQueue()
	for i := 0; i < 5; i++ {
		q.push(message{record: &wire.Record{Tag: string(rune('a' + i))}})
	}
	for i := 0; i < 5; i++ {
		m := q.pop()
		want := string(rune('a' + i))
		if m.record.Tag != want {
			t.Fatalf("pop %d = %q, want %q", i, m.record.Tag, want)
		}
	}
}

func TestQueuePushNeverBlocks(t *testing.T) {
	q := newUnboundedQueue()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10000; i++ {
			q.push(message{record: &wire.Record{Tag: "x"}})
		}
	}()
	<-done
}
