// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"log/slog"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/count"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/errors"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

const (
	HandlerExperimentName   = "handler"
	ProcessorExperimentName = "processor"
)

type Experiment interface {
	Name() string
	Before()
	Go() error
	Events() int
}

type experiment struct {
	trace  *trace.MemoryTrace
	result *count.Accumulator
	logger *slog.Logger
}

func (e *experiment) Before() {
	e.trace.Rewind()
}

func (e *experiment) Events() int {
	return e.trace.Len()
}

func (e *experiment) check(start uint64) error {
	expect := start + uint64(e.trace.Len())
	if got := e.result.Count(); got != expect {
		e.logger.Error("houston, got a problem")
		return errors.ErrCountMismatch(expect, got)
	}
	return nil
}

// HandlerExperiment pushes each event of the trace to a count handler.
type HandlerExperiment struct {
	experiment
	dispatcher *count.Dispatcher
}

func NewHandlerExperiment(t *trace.MemoryTrace, result *count.Accumulator, logger *slog.Logger) *HandlerExperiment {
	d := count.NewDispatcher(logger)
	d.Register(count.NewCountHandler(result))
	return &HandlerExperiment{
		experiment: experiment{trace: t, result: result, logger: d.Logger},
		dispatcher: d,
	}
}

func (e *HandlerExperiment) Name() string {
	return HandlerExperimentName
}

func (e *HandlerExperiment) Go() error {
	start := e.result.Count()
	if err := e.dispatcher.Dispatch(e.trace); err != nil {
		return err
	}
	return e.check(start)
}

// ProcessorExperiment hands the whole trace to a count processor.
type ProcessorExperiment struct {
	experiment
}

func NewProcessorExperiment(t *trace.MemoryTrace, result *count.Accumulator, logger *slog.Logger) *ProcessorExperiment {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProcessorExperiment{
		experiment: experiment{trace: t, result: result, logger: logger},
	}
}

func (e *ProcessorExperiment) Name() string {
	return ProcessorExperimentName
}

func (e *ProcessorExperiment) Go() error {
	start := e.result.Count()
	// A processor drains a single trace.
	p := count.NewCountProcessor(e.result, e.logger)
	if err := p.Process(e.trace); err != nil {
		return err
	}
	return e.check(start)
}
