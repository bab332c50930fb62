// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package chart

import (
	"flag"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/boschglobal/dse.clib/extra/go/command"
	"github.com/elliotchance/orderedmap/v3"
	"gopkg.in/yaml.v3"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/snapshot-chromedp/render"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/app/bench"
)

type ChartCommand struct {
	command.Command

	title      string
	inputFiles []string
	outputFile string
}

func NewChartCommand(name string) *ChartCommand {
	c := &ChartCommand{
		Command: command.Command{
			Name:    name,
			FlagSet: flag.NewFlagSet(name, flag.ExitOnError),
		},
	}
	c.FlagSet().StringVar(&c.title, "title", "Trace Benchmark", "chart title")
	c.FlagSet().StringVar(&c.outputFile, "output", "", "path to write generated chart (.html or .png)")
	return c
}

func (c ChartCommand) Name() string {
	return c.Command.Name
}

func (c ChartCommand) FlagSet() *flag.FlagSet {
	return c.Command.FlagSet
}

func (c *ChartCommand) Parse(args []string) error {
	err := c.FlagSet().Parse(args)
	if err != nil {
		return err
	}
	c.inputFiles = c.FlagSet().Args()
	if len(c.inputFiles) == 0 {
		return fmt.Errorf("bench report not specified")
	}
	if len(c.outputFile) == 0 {
		c.outputFile = strings.TrimSuffix(c.inputFiles[0], path.Ext(c.inputFiles[0])) + ".html"
	}
	return nil
}

func (c *ChartCommand) Run() error {
	series, err := getSeries(c.inputFiles)
	if err != nil {
		return err
	}
	return c.generateChart(series)
}

// chartSeries holds ns/event per experiment (lines) for each report (axis).
type chartSeries struct {
	axis  []string
	lines *orderedmap.OrderedMap[string, []float64]
}

func loadReport(file string) (*bench.Report, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	report := bench.Report{}
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("Error decoding yaml: %v", err)
	}
	if report.Kind != "BenchReport" {
		return nil, fmt.Errorf("not a bench report: %s (kind=%q)", file, report.Kind)
	}
	return &report, nil
}

func getSeries(files []string) (*chartSeries, error) {
	series := chartSeries{
		lines: orderedmap.NewOrderedMap[string, []float64](),
	}
	for i, file := range files {
		report, err := loadReport(file)
		if err != nil {
			return nil, err
		}
		series.axis = append(series.axis, fmt.Sprintf("%s (%d events)", path.Base(file), report.Config.Length))
		for _, r := range report.Results {
			s, _ := series.lines.Get(r.Name)
			// Pad experiments missing from earlier reports.
			for len(s) < i {
				s = append(s, 0)
			}
			if len(s) == i {
				s = append(s, r.NsPerEvent)
			} else {
				s[i] = max(s[i], r.NsPerEvent)
			}
			series.lines.Set(r.Name, s)
		}
	}
	return &series, nil
}

func (c *ChartCommand) generateChart(series *chartSeries) error {
	genBarData := func(data []float64) []opts.BarData {
		items := make([]opts.BarData, 0)
		for i := 0; i < len(data); i++ {
			items = append(items, opts.BarData{Value: data[i]})
		}
		return items
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithAnimation(false),
		charts.WithTitleOpts(opts.Title{
			Title: c.title,
			Left:  "center",
		}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ns/event"}),
	)
	axis := bar.SetXAxis(slices.Clone(series.axis))
	for key, val := range series.lines.AllFromFront() {
		axis.AddSeries(key, genBarData(val)).SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		)
	}

	fmt.Printf("writing chart: %s\n", c.outputFile)
	if path.Ext(c.outputFile) == ".png" {
		config := render.NewSnapshotConfig(bar.RenderContent(), c.outputFile)
		config.KeepHtml = false
		return render.MakeSnapshot(config)
	}
	return os.WriteFile(c.outputFile, bar.RenderContent(), 0644)
}
