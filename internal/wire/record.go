// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

// Package wire implements the Fluentd Forward wire encoding of a record
// and the incremental decode of its chunk acknowledgement. The
// MessagePack codec itself (github.com/tinylib/msgp) is treated as an
// opaque serializer; this package only drives its primitives in the
// shape the protocol requires.
package wire

import "github.com/nishisan-dev/fluent-forward/internal/value"

// Record is the unit handed from the submit path to the worker: a tag,
// a capture-time timestamp, a payload map, and the chunk id that will
// be echoed back in the aggregator's ack.
type Record struct {
	Tag       string
	Timestamp int64
	Payload   *value.Map
	ChunkID   string
}
