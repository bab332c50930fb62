// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/count"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

// Long collects per event name and per task statistics, reported in the
// order they were first seen in the trace.
type Long struct {
	Total    count.Accumulator
	Names    *orderedmap.OrderedMap[string, *count.Accumulator]
	SwitchIn *orderedmap.OrderedMap[trace.Tid, *count.Accumulator]
}

func NewLong() *Long {
	return &Long{
		Names:    orderedmap.NewOrderedMap[string, *count.Accumulator](),
		SwitchIn: orderedmap.NewOrderedMap[trace.Tid, *count.Accumulator](),
	}
}

func (l *Long) HandleEvent(e trace.Event) {
	l.Total.Increment()
	increment(l.Names, e.Name())
	if tid := e.NextTid(); tid != trace.NoTid {
		increment(l.SwitchIn, tid)
	}
}

func increment[K comparable](m *orderedmap.OrderedMap[K, *count.Accumulator], k K) {
	a, ok := m.Get(k)
	if !ok {
		a = &count.Accumulator{}
		m.Set(k, a)
	}
	a.Increment()
}

func (l *Long) Print() {
	fmt.Printf("Events: %d\n", l.Total.Count())
	for name, a := range l.Names.AllFromFront() {
		fmt.Printf("Event:%s=%d\n", name, a.Count())
	}
	for tid, a := range l.SwitchIn.AllFromFront() {
		fmt.Printf("Task:%s:switch_in=%d\n", tid, a.Count())
	}
}
