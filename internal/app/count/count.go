// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package count

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/boschglobal/dse.clib/extra/go/command"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/pkg/logger"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/pkg/source"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/count"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

const (
	ModeHandler   = "handler"
	ModeProcessor = "processor"
)

type CountCommand struct {
	command.Command

	source   source.Config
	mode     string
	logLevel int
}

func NewCountCommand(name string) *CountCommand {
	c := &CountCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().StringVar(&c.mode, "mode", ModeProcessor, "count with the event handler or the trace processor (handler|processor)")
	c.FlagSet().StringVar(&c.source.RedisUrl, "redis", "", "redis server URL (default $"+source.RedisEnv+" or "+source.DefaultRedisUrl+")")
	c.FlagSet().StringVar(&c.source.Key, "key", "", "read the trace from this redis list")
	c.FlagSet().IntVar(&c.logLevel, "logger", logger.DefaultLevel, "log level (select between 0..4)")
	return c
}

func (c CountCommand) Name() string {
	return c.Command.Name
}

func (c CountCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *CountCommand) Parse(args []string) error {
	err := c.FlagSet().Parse(args)
	if err != nil {
		return err
	}
	if c.FlagSet().NArg() > 0 {
		c.source.File = c.FlagSet().Arg(0)
	}
	if c.mode != ModeHandler && c.mode != ModeProcessor {
		return fmt.Errorf("unknown count mode: %s", c.mode)
	}
	return c.source.Validate()
}

func (c *CountCommand) Run() error {
	log := logger.NewLogger(c.logLevel)
	t, release, err := source.Open(context.Background(), c.source, log)
	if err != nil {
		return err
	}
	defer release()

	result := count.Accumulator{}
	if err := Count(t, c.mode, &result, log); err != nil {
		return err
	}
	fmt.Printf("Event Count: %d\n", result.Count())
	return nil
}

// Count drains the trace into result, using either the handler (push) or the
// processor (pull) path.
func Count(t trace.Trace, mode string, result *count.Accumulator, log *slog.Logger) error {
	switch mode {
	case ModeHandler:
		d := count.NewDispatcher(log)
		d.Register(count.NewCountHandler(result))
		return d.Dispatch(t)
	case ModeProcessor:
		return count.NewCountProcessor(result, log).Process(t)
	default:
		return fmt.Errorf("unknown count mode: %s", mode)
	}
}
