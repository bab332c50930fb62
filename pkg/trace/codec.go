// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/errors"
)

const eventIdentifier string = "SBEV"
const identifierLength = 4

// Event table layout (no generated schema):
//
//	table Event { name:string; prev_tid:long; next_tid:long; }
const (
	slotName flatbuffers.VOffsetT = iota
	slotPrevTid
	slotNextTid
	slotCount
)

func fieldOffset(slot flatbuffers.VOffsetT) flatbuffers.VOffsetT {
	// Skip the vtable size and table size fields.
	return flatbuffers.VOffsetT((2 + int(slot)) * flatbuffers.SizeVOffsetT)
}

// encodeEvent builds a size prefixed event flatbuffer. The returned slice
// references the builder and is only valid until the next call.
func encodeEvent(builder *flatbuffers.Builder, e Event) []byte {
	builder.Reset()
	name := builder.CreateString(e.Name())
	builder.StartObject(int(slotCount))
	builder.PrependUOffsetTSlot(int(slotName), name, 0)
	builder.PrependInt64Slot(int(slotPrevTid), int64(e.PrevTid()), 0)
	builder.PrependInt64Slot(int(slotNextTid), int64(e.NextTid()), 0)
	root := builder.EndObject()
	builder.FinishSizePrefixedWithFileIdentifier(root, []byte(eventIdentifier))
	return builder.FinishedBytes()
}

// decodeEvent decodes an event flatbuffer (without its size prefix).
func decodeEvent(buf []byte) (r Record, err error) {
	if len(buf) < flatbuffers.SizeUOffsetT+identifierLength {
		return Record{}, errors.ErrTraceDecode(fmt.Sprintf("buffer too short (%d bytes)", len(buf)))
	}
	if id := flatbuffers.GetBufferIdentifier(buf); id != eventIdentifier {
		return Record{}, errors.ErrTraceDecode(fmt.Sprintf("unsupported flatbuffer, file_identifier: %s", id))
	}
	pos := flatbuffers.GetUOffsetT(buf)
	if int(pos) >= len(buf) {
		return Record{}, errors.ErrTraceDecode(fmt.Sprintf("root offset out of range (%d)", pos))
	}
	defer func() {
		// Table access panics on corrupt offsets.
		if p := recover(); p != nil {
			r, err = Record{}, errors.ErrTraceDecode(fmt.Sprintf("corrupt event table: %v", p))
		}
	}()

	tab := flatbuffers.Table{Bytes: buf, Pos: pos}
	if o := flatbuffers.UOffsetT(tab.Offset(fieldOffset(slotName))); o != 0 {
		r.name = tab.String(o + tab.Pos)
	}
	if o := flatbuffers.UOffsetT(tab.Offset(fieldOffset(slotPrevTid))); o != 0 {
		r.prev = Tid(tab.GetInt64(o + tab.Pos))
	}
	if o := flatbuffers.UOffsetT(tab.Offset(fieldOffset(slotNextTid))); o != 0 {
		r.next = Tid(tab.GetInt64(o + tab.Pos))
	}
	return r, nil
}
