// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

package wire

import (
	"bytes"
	"fmt"

	"github.com/tinylib/msgp/msgp"

	"github.com/nishisan-dev/fluent-forward/internal/value"
)

// optionsChunkKey is the sole key of the options map the client sends.
const optionsChunkKey = "chunk"

// Encode serializes r as a MessagePack array of exactly four elements —
// tag, timestamp, payload map, options map — per the Forward protocol's
// "Message mode" with a chunk option. Encoding can only fail on
// allocator exhaustion or a codec bug; callers are expected to drop the
// record and log a warning on error rather than treat it as retriable.
func Encode(r *Record) ([]byte, error) {
	var buf bytes.Buffer
	w := msgp.NewWriter(&buf)

	if err := w.WriteArrayHeader(4); err != nil {
		return nil, fmt.Errorf("wire: writing record array header: %w", err)
	}
	if err := w.WriteString(r.Tag); err != nil {
		return nil, fmt.Errorf("wire: writing tag: %w", err)
	}
	if err := w.WriteInt64(r.Timestamp); err != nil {
		return nil, fmt.Errorf("wire: writing timestamp: %w", err)
	}
	if err := encodeMap(w, r.Payload); err != nil {
		return nil, fmt.Errorf("wire: writing payload: %w", err)
	}

	if err := w.WriteMapHeader(1); err != nil {
		return nil, fmt.Errorf("wire: writing options header: %w", err)
	}
	if err := w.WriteString(optionsChunkKey); err != nil {
		return nil, fmt.Errorf("wire: writing options key: %w", err)
	}
	if err := w.WriteString(r.ChunkID); err != nil {
		return nil, fmt.Errorf("wire: writing chunk id: %w", err)
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("wire: flushing encoded record: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeMap(w *msgp.Writer, m *value.Map) error {
	keys := m.Keys()
	if err := w.WriteMapHeader(uint32(len(keys))); err != nil {
		return err
	}
	for _, k := range keys {
		if err := w.WriteString(k); err != nil {
			return err
		}
		v, _ := m.Get(k)
		if err := encodeValue(w, v); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
	}
	return nil
}

// encodeValue writes v using the narrowest MessagePack integer family
// consistent with its signedness: signed variants always go through
// WriteInt64, unsigned variants through WriteUint64. msgp picks the
// smallest wire representation that round-trips the value.
func encodeValue(w *msgp.Writer, v value.Value) error {
	switch v.Kind() {
	case value.KindBool:
		b, _ := v.AsBool()
		return w.WriteBool(b)
	case value.KindInt:
		i, _ := v.AsInt()
		return w.WriteInt64(i)
	case value.KindUint:
		u, _ := v.AsUint()
		return w.WriteUint64(u)
	case value.KindFloat:
		f, _ := v.AsFloat()
		return w.WriteFloat64(f)
	case value.KindString:
		s, _ := v.AsString()
		return w.WriteString(s)
	case value.KindArray:
		arr, _ := v.AsArray()
		if err := w.WriteArrayHeader(uint32(len(arr))); err != nil {
			return err
		}
		for i, e := range arr {
			if err := encodeValue(w, e); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	case value.KindObject:
		obj, _ := v.AsObject()
		return encodeMap(w, obj)
	default:
		return fmt.Errorf("wire: unknown value kind %v", v.Kind())
	}
}
