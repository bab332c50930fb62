// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package count

import (
	"fmt"
	"log/slog"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

// Dispatcher pushes the events of a trace, one at a time and in order, to
// each registered handler.
type Dispatcher struct {
	Logger *slog.Logger

	handlers []Handler
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{Logger: logger}
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d *Dispatcher) Register(h Handler) {
	d.handlers = append(d.handlers, h)
}

func (d *Dispatcher) Dispatch(t trace.Trace) error {
	var n int
	for t.HasNext() {
		e, err := t.Next()
		if err != nil {
			d.logger().Debug(fmt.Sprintf("Dispatch: failed after %d events", n))
			return err
		}
		for _, h := range d.handlers {
			h.HandleEvent(e)
		}
		n++
	}
	d.logger().Debug(fmt.Sprintf("Dispatch: %d events to %d handlers", n, len(d.handlers)))
	return nil
}
