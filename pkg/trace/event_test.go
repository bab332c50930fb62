// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventFormat(t *testing.T) {
	tests := map[string]struct {
		event  Event
		expect string
	}{
		"record":          {NewEvent("switch", 1, 2), "switch 1 -> 2"},
		"first event":     {NewEvent("start", NoTid, 1), "start - -> 1"},
		"last event":      {NewEvent("end", 2, NoTid), "end 2 -> -"},
		"sched_switch":    {SchedSwitch{Prev: 7, Next: 8}, "sched_switch 7 -> 8"},
		"zero tid is set": {SchedSwitch{}, "sched_switch 0 -> 0"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Format(tc.event))
		})
	}
}

func TestRecordAccessors(t *testing.T) {
	e := NewEvent("switch", 3, 4)
	assert.Equal(t, "switch", e.Name())
	assert.Equal(t, Tid(3), e.PrevTid())
	assert.Equal(t, Tid(4), e.NextTid())
}
