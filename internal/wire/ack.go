// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

package wire

import (
	"errors"
	"fmt"

	"github.com/tinylib/msgp/msgp"
)

// ackKey is the single key the aggregator's ack map carries.
const ackKey = "ack"

// ErrIncompleteAck is returned by DecodeAck when buf holds too little
// data to decode a complete ack frame. It is not a protocol violation —
// the caller should read more bytes and retry the decode.
var ErrIncompleteAck = errors.New("wire: incomplete ack frame")

// DecodeAck attempts to decode a MessagePack map of the form
// {"ack": "<chunk-id>"} from buf, ignoring any other fields the
// aggregator includes. It is driven directly off msgp's byte-level
// helpers rather than a streaming reader so the worker can feed it an
// accumulating, growable buffer (see §4.6.1): ErrShortBytes from the
// underlying decode means "incomplete, read more", surfaced here as
// ErrIncompleteAck; any other decode error is a malformed frame.
func DecodeAck(buf []byte) (string, error) {
	sz, rest, err := msgp.ReadMapHeaderBytes(buf)
	if err != nil {
		return "", classifyDecodeErr(err)
	}

	var ack string
	var sawAck bool
	for i := uint32(0); i < sz; i++ {
		var key string
		key, rest, err = msgp.ReadStringBytes(rest)
		if err != nil {
			return "", classifyDecodeErr(err)
		}
		if key == ackKey {
			ack, rest, err = msgp.ReadStringBytes(rest)
			if err != nil {
				return "", classifyDecodeErr(err)
			}
			sawAck = true
			continue
		}
		rest, err = msgp.Skip(rest)
		if err != nil {
			return "", classifyDecodeErr(err)
		}
	}

	if !sawAck {
		return "", fmt.Errorf("wire: ack map missing %q key", ackKey)
	}
	return ack, nil
}

func classifyDecodeErr(err error) error {
	if errors.Is(err, msgp.ErrShortBytes) {
		return ErrIncompleteAck
	}
	return fmt.Errorf("wire: malformed ack frame: %w", err)
}
