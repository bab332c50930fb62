// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package count

// Accumulator is an event counter. It is not safe for concurrent use; a
// parallel dispatcher must replace it with an atomic counter.
type Accumulator struct {
	count uint64
}

func (a *Accumulator) Increment() {
	a.count += 1
}

func (a *Accumulator) Count() uint64 {
	return a.count
}
