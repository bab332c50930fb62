// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package count

import (
	"fmt"
	"log/slog"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/errors"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

type State int

const (
	Idle State = iota
	Draining
	Done
)

var stateNames = [...]string{"Idle", "Draining", "Done"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Processor interface {
	Process(trace.Trace) error
}

// CountProcessor drains a trace, counting each event it pulls.
//
// A processor drains one trace: Idle -> Draining -> Done. If the trace fails
// the processor remains Draining with the count of the events pulled so far.
type CountProcessor struct {
	Result *Accumulator
	Logger *slog.Logger

	state State
}

func NewCountProcessor(a *Accumulator, logger *slog.Logger) *CountProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &CountProcessor{Result: a, Logger: logger}
}

func (p *CountProcessor) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *CountProcessor) State() State {
	return p.state
}

func (p *CountProcessor) Process(t trace.Trace) error {
	if p.state != Idle {
		return errors.ErrProcessorDone
	}
	p.state = Draining
	start := p.Result.Count()
	for t.HasNext() {
		if _, err := t.Next(); err != nil {
			p.logger().Debug(fmt.Sprintf("Process: failed after %d events", p.Result.Count()-start))
			return err
		}
		p.Result.Increment()
	}
	p.state = Done
	p.logger().Debug(fmt.Sprintf("Process: %d events", p.Result.Count()-start))
	return nil
}
