// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/boschglobal/dse.clib/extra/go/command"
	"github.com/boschglobal/dse.clib/extra/go/command/util"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/pkg/logger"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/count"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

type BenchCommand struct {
	command.Command

	config      Config
	configFile  string
	experiments string
	outputFile  string
	logLevel    int
}

func NewBenchCommand(name string) *BenchCommand {
	c := &BenchCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
		config: DefaultConfig(),
	}
	c.FlagSet().StringVar(&c.configFile, "config", "", "path to bench config file (yaml)")
	c.FlagSet().IntVar(&c.config.Length, "length", DefaultLength, "number of events in the generated stub trace")
	c.FlagSet().IntVar(&c.config.Repeat, "repeat", DefaultMinRepeat, "minimum number of repeats per experiment")
	c.FlagSet().DurationVar(&c.config.Duration, "duration", DefaultMinDuration, "minimum run time per experiment")
	c.FlagSet().StringVar(&c.config.Trace, "trace", "", "benchmark with the events of this trace file (replaces the stub trace)")
	c.FlagSet().StringVar(&c.experiments, "experiments", strings.Join(c.config.Experiments, ","), "experiments to run")
	c.FlagSet().StringVar(&c.outputFile, "output", "", "path to write results (yaml)")
	c.FlagSet().IntVar(&c.logLevel, "logger", logger.DefaultLevel, "log level (select between 0..4)")
	return c
}

func (c BenchCommand) Name() string {
	return c.Command.Name
}

func (c BenchCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *BenchCommand) Parse(args []string) error {
	err := c.FlagSet().Parse(args)
	if err != nil {
		return err
	}
	c.config.Experiments = strings.Split(c.experiments, ",")
	if len(c.configFile) > 0 {
		// Explicit flags take precedence over the config file.
		fileConfig, err := LoadConfig(c.configFile)
		if err != nil {
			return err
		}
		c.FlagSet().Visit(func(f *flag.Flag) {
			switch f.Name {
			case "length":
				fileConfig.Length = c.config.Length
			case "repeat":
				fileConfig.Repeat = c.config.Repeat
			case "duration":
				fileConfig.Duration = c.config.Duration
			case "trace":
				fileConfig.Trace = c.config.Trace
			case "experiments":
				fileConfig.Experiments = c.config.Experiments
			}
		})
		c.config = fileConfig
	}
	return c.config.Validate()
}

func (c *BenchCommand) Run() error {
	log := logger.NewLogger(c.logLevel)
	report, err := Bench(c.config, log)
	if report == nil {
		return err
	}
	// Results of completed experiments are written even if another failed.
	if len(c.outputFile) > 0 {
		fmt.Fprintf(flag.CommandLine.Output(), "Writing file: %s\n", c.outputFile)
		if err := util.WriteYaml(report, c.outputFile, false); err != nil {
			return err
		}
	}
	return err
}

type Report struct {
	Kind    string   `yaml:"kind"`
	Config  Config   `yaml:"config"`
	Results []Result `yaml:"results"`
}

// Bench runs each configured experiment over the configured trace.
func Bench(cfg Config, log *slog.Logger) (*Report, error) {
	if log == nil {
		log = slog.Default()
	}
	t, err := loadTrace(cfg, log)
	if err != nil {
		return nil, err
	}
	experiments := []Experiment{}
	for _, name := range cfg.Experiments {
		result := &count.Accumulator{}
		switch name {
		case HandlerExperimentName:
			experiments = append(experiments, NewHandlerExperiment(t, result, log))
		case ProcessorExperimentName:
			experiments = append(experiments, NewProcessorExperiment(t, result, log))
		default:
			return nil, fmt.Errorf("unknown experiment: %s", name)
		}
	}
	runner := Runner{MinDuration: cfg.Duration, MinRepeat: cfg.Repeat, Logger: log}
	report := &Report{Kind: "BenchReport", Config: cfg}
	return report, runner.ExecuteAll(report, experiments)
}

// ExecuteAll runs each experiment in turn, appending its result to the
// report. A failed experiment is skipped and the remaining experiments still
// run; the failures are returned joined.
func (r Runner) ExecuteAll(report *Report, experiments []Experiment) error {
	var errs []error
	for _, ex := range experiments {
		fmt.Printf("running experiment: %s\n", ex.Name())
		result, err := r.Execute(ex)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Printf("repeat:%d elapsed:%.9f\n", result.Repeat, result.Seconds())
		report.Results = append(report.Results, result)
	}
	return errors.Join(errs...)
}

func loadTrace(cfg Config, log *slog.Logger) (*trace.MemoryTrace, error) {
	if len(cfg.Trace) == 0 {
		return trace.GenerateStubTrace(cfg.Length), nil
	}
	// Load the trace into memory so that file I/O is not measured.
	t := trace.NewMemoryTrace()
	s := trace.Stream{File: cfg.Trace, Logger: log}
	for e, err := range s.Events() {
		if err != nil {
			return nil, err
		}
		t.Add(e)
	}
	log.Info(fmt.Sprintf("Loaded %d events: %s", t.Len(), cfg.Trace))
	return t, nil
}
