// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import "fmt"

// Tid identifies a task (thread). NoTid marks the absent side of a
// transition, e.g. the previous task of the first event in a trace.
type Tid int64

const NoTid Tid = -1

const SchedSwitchName = "sched_switch"

func (t Tid) String() string {
	if t == NoTid {
		return "-"
	}
	return fmt.Sprintf("%d", int64(t))
}

type Event interface {
	Name() string
	PrevTid() Tid
	NextTid() Tid
}

type Record struct {
	name string
	prev Tid
	next Tid
}

func NewEvent(name string, prev Tid, next Tid) Record {
	return Record{name: name, prev: prev, next: next}
}

func (r Record) Name() string { return r.name }
func (r Record) PrevTid() Tid { return r.prev }
func (r Record) NextTid() Tid { return r.next }

type SchedSwitch struct {
	Prev Tid
	Next Tid
}

func (s SchedSwitch) Name() string { return SchedSwitchName }
func (s SchedSwitch) PrevTid() Tid { return s.Prev }
func (s SchedSwitch) NextTid() Tid { return s.Next }

// Format renders an event as "<name> <prev> -> <next>".
func Format(e Event) string {
	return fmt.Sprintf("%s %s -> %s", e.Name(), e.PrevTid(), e.NextTid())
}
