// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

// Trace is a forward only, finite sequence of events.
//
// HasNext has no side effects and never reports an event which Next can not
// then deliver. Next returns ErrExhaustedTrace (see pkg/errors) when called
// past the end of the trace.
type Trace interface {
	HasNext() bool
	Next() (Event, error)
}

// Rewinder is implemented by traces which can be restarted from the first
// event.
type Rewinder interface {
	Rewind()
}
