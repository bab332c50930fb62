// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"context"
	"flag"
	"fmt"

	"github.com/boschglobal/dse.clib/extra/go/command"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/pkg/logger"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/pkg/source"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/count"
)

type SummaryCommand struct {
	command.Command

	source   source.Config
	short    bool
	long     bool
	logLevel int
}

func NewSummaryCommand(name string) *SummaryCommand {
	c := &SummaryCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().BoolVar(&c.short, "short", true, "generate a short summary")
	c.FlagSet().BoolVar(&c.long, "long", false, "generate a long summary")
	c.FlagSet().StringVar(&c.source.RedisUrl, "redis", "", "redis server URL (default $"+source.RedisEnv+" or "+source.DefaultRedisUrl+")")
	c.FlagSet().StringVar(&c.source.Key, "key", "", "read the trace from this redis list")
	c.FlagSet().IntVar(&c.logLevel, "logger", logger.DefaultLevel, "log level (select between 0..4)")
	return c
}

func (c SummaryCommand) Name() string {
	return c.Command.Name
}

func (c SummaryCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *SummaryCommand) Parse(args []string) error {
	err := c.FlagSet().Parse(args)
	if err != nil {
		return err
	}
	if c.FlagSet().NArg() > 0 {
		c.source.File = c.FlagSet().Arg(0)
	}
	return c.source.Validate()
}

func (c *SummaryCommand) Run() error {
	log := logger.NewLogger(c.logLevel)

	// Select and configure the specified handler.
	var h count.Handler
	var long *Long
	if c.long {
		long = NewLong()
		h = long
	} else if c.short {
		h = &Short{}
	} else {
		return fmt.Errorf("summary handler not specified")
	}

	t, release, err := source.Open(context.Background(), c.source, log)
	if err != nil {
		return err
	}
	defer release()

	// Process the trace.
	d := count.NewDispatcher(log)
	d.Register(h)
	if err := d.Dispatch(t); err != nil {
		return err
	}
	if long != nil {
		long.Print()
	}
	return nil
}
