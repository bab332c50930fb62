// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/errors"
)

type MemoryTrace struct {
	events []Event
	cursor int
}

func NewMemoryTrace(events ...Event) *MemoryTrace {
	return &MemoryTrace{events: events}
}

// GenerateStubTrace returns a trace of length sched_switch events, each
// switching from task i to task i+1. A negative length gives an empty trace.
func GenerateStubTrace(length int) *MemoryTrace {
	length = max(length, 0)
	t := &MemoryTrace{events: make([]Event, 0, length)}
	for i := range length {
		t.Add(SchedSwitch{Prev: Tid(i), Next: Tid(i + 1)})
	}
	return t
}

func (t *MemoryTrace) Add(e Event) {
	t.events = append(t.events, e)
}

func (t *MemoryTrace) Len() int {
	return len(t.events)
}

func (t *MemoryTrace) Rewind() {
	t.cursor = 0
}

func (t *MemoryTrace) HasNext() bool {
	return t.cursor < len(t.events)
}

func (t *MemoryTrace) Next() (Event, error) {
	if !t.HasNext() {
		return nil, errors.ErrExhaustedTrace
	}
	e := t.events[t.cursor]
	t.cursor++
	return e, nil
}
