// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"context"
	"flag"
	"fmt"

	"github.com/boschglobal/dse.clib/extra/go/command"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/pkg/logger"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/pkg/source"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

type GenerateCommand struct {
	command.Command

	outputFile string
	length     int
	redisUrl   string
	key        string
	logLevel   int
}

func NewGenerateCommand(name string) *GenerateCommand {
	c := &GenerateCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().StringVar(&c.outputFile, "output", "", "path to write generated trace file")
	c.FlagSet().IntVar(&c.length, "length", 1000, "number of sched_switch events to generate")
	c.FlagSet().StringVar(&c.redisUrl, "redis", "", "redis server URL (default $"+source.RedisEnv+" or "+source.DefaultRedisUrl+")")
	c.FlagSet().StringVar(&c.key, "key", "", "write the trace to this redis list (replacing it)")
	c.FlagSet().IntVar(&c.logLevel, "logger", logger.DefaultLevel, "log level (select between 0..4)")
	return c
}

func (c GenerateCommand) Name() string {
	return c.Command.Name
}

func (c GenerateCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *GenerateCommand) Parse(args []string) error {
	err := c.FlagSet().Parse(args)
	if err != nil {
		return err
	}
	if c.length < 0 {
		return fmt.Errorf("trace length must not be negative: %d", c.length)
	}
	if len(c.outputFile) == 0 && len(c.key) == 0 {
		return fmt.Errorf("output not specified (-output or -key)")
	}
	return nil
}

func (c *GenerateCommand) Run() error {
	log := logger.NewLogger(c.logLevel)
	if len(c.outputFile) > 0 {
		fmt.Fprintf(flag.CommandLine.Output(), "Writing file: %s\n", c.outputFile)
		n, err := trace.WriteStream(c.outputFile, trace.GenerateStubTrace(c.length))
		if err != nil {
			return err
		}
		log.Info(fmt.Sprintf("Wrote %d events", n))
	}
	if len(c.key) > 0 {
		cfg := source.Config{RedisUrl: c.redisUrl, Key: c.key}
		if err := Publish(context.Background(), cfg, c.length, log); err != nil {
			return err
		}
	}
	return nil
}
