// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/boschglobal/dse.clib/extra/go/command"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/app/bench"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/app/chart"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/app/count"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/app/generate"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/app/summary"
)

var cmds = []command.CommandRunner{
	command.NewHelpCommand("help"),
	generate.NewGenerateCommand("generate"),
	count.NewCountCommand("count"),
	summary.NewSummaryCommand("summary"),
	bench.NewBenchCommand("bench"),
	chart.NewChartCommand("chart"),
}

var usage = `
Trace tools for counting and benchmarking task switch traces.

Usage:

	tracebench <command> [option] [<trace file>]

	tracebench generate [-length N] -output <trace file>
	tracebench count [-mode handler|processor] <trace file>
	tracebench summary [--short, --long] <trace file>
	tracebench bench [-config <bench.yaml>] [-output <report.yaml>]
	tracebench chart [-output <chart.html>] <report.yaml> ...

`

func printUsage() {
	command.PrintUsage(usage[1:], cmds)
}

func main() {
	os.Exit(main_())
}

func main_() int {
	flag.Usage = printUsage
	if len(os.Args) == 1 {
		printUsage()
		return 1
	}
	if err := command.DispatchCommand(os.Args[1], cmds); err != nil {
		slog.Error(err.Error())
		return 2
	}

	return 0
}
