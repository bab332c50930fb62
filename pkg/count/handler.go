// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package count

import "github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"

type Handler interface {
	HandleEvent(trace.Event)
}

type HandlerFunc func(trace.Event)

func (f HandlerFunc) HandleEvent(e trace.Event) {
	f(e)
}

// CountHandler counts every event it is given, whatever its content.
type CountHandler struct {
	Result *Accumulator
}

func NewCountHandler(a *Accumulator) *CountHandler {
	return &CountHandler{Result: a}
}

func (h *CountHandler) HandleEvent(e trace.Event) {
	h.Result.Increment()
}
