// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/count"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/errors"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

type failingExperiment struct {
	runs int
}

func (f *failingExperiment) Name() string { return "failing" }
func (f *failingExperiment) Before()      {}
func (f *failingExperiment) Events() int  { return 1 }

func (f *failingExperiment) Go() error {
	f.runs++
	return errors.ErrCountMismatch(1, 0)
}

func TestExperiments(t *testing.T) {
	stub := trace.GenerateStubTrace(100)
	tests := map[string]func(*count.Accumulator) Experiment{
		HandlerExperimentName: func(a *count.Accumulator) Experiment {
			return NewHandlerExperiment(stub, a, nil)
		},
		ProcessorExperimentName: func(a *count.Accumulator) Experiment {
			return NewProcessorExperiment(stub, a, nil)
		},
	}
	for name, newExperiment := range tests {
		t.Run(name, func(t *testing.T) {
			result := count.Accumulator{}
			ex := newExperiment(&result)
			assert.Equal(t, name, ex.Name())
			for range 3 {
				ex.Before()
				require.NoError(t, ex.Go())
			}
			assert.Equal(t, uint64(300), result.Count())
		})
	}
}

func TestExperimentWithoutRewind(t *testing.T) {
	result := count.Accumulator{}
	ex := NewProcessorExperiment(trace.GenerateStubTrace(5), &result, nil)
	ex.Before()
	require.NoError(t, ex.Go())

	// Trace not rewound, nothing is counted.
	err := ex.Go()
	var countErr *errors.CountError
	assert.ErrorAs(t, err, &countErr)
	assert.ErrorContains(t, err, "expected 10 got 5")
}

func TestRunner(t *testing.T) {
	tests := map[string]struct {
		runner    Runner
		minRepeat int
	}{
		"repeat bound":   {Runner{MinRepeat: 4}, 4},
		"duration bound": {Runner{MinRepeat: 1, MinDuration: 20 * time.Millisecond}, 1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			result := count.Accumulator{}
			ex := NewHandlerExperiment(trace.GenerateStubTrace(50), &result, nil)
			r, err := tc.runner.Execute(ex)
			require.NoError(t, err)
			assert.Equal(t, HandlerExperimentName, r.Name)
			assert.GreaterOrEqual(t, r.Repeat, tc.minRepeat)
			assert.True(t, r.Elapsed >= tc.runner.MinDuration)
			assert.Equal(t, 50, r.Events)
			assert.Equal(t, uint64(50*r.Repeat), result.Count())
			assert.Greater(t, r.NsPerEvent, 0.0)
		})
	}
}

func TestRunnerStopsOnError(t *testing.T) {
	ex := &failingExperiment{}
	r, err := Runner{MinRepeat: 10}.Execute(ex)
	assert.ErrorContains(t, err, "count mismatch")
	assert.Equal(t, 0, r.Repeat)
	assert.Equal(t, 1, ex.runs)
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("length: 500\nduration: 10ms\nexperiments: [processor]\n"), 0644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 500, c.Length)
	assert.Equal(t, 10*time.Millisecond, c.Duration)
	assert.Equal(t, DefaultMinRepeat, c.Repeat)
	assert.Equal(t, []string{ProcessorExperimentName}, c.Experiments)

	require.NoError(t, os.WriteFile(path, []byte("experiments: [visitor]\n"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "unknown experiment: visitor")
}

func TestBenchParseFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("length: 500\nrepeat: 3\n"), 0644))

	c := NewBenchCommand("bench")
	require.NoError(t, c.Parse([]string{"-config", path, "-repeat", "2", "-experiments", "handler"}))
	assert.Equal(t, 500, c.config.Length)
	assert.Equal(t, 2, c.config.Repeat)
	assert.Equal(t, []string{HandlerExperimentName}, c.config.Experiments)
}

func TestBench(t *testing.T) {
	cfg := Config{Length: 20, Repeat: 2, Experiments: []string{"handler", "processor"}}
	report, err := Bench(cfg, nil)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, HandlerExperimentName, report.Results[0].Name)
	assert.Equal(t, ProcessorExperimentName, report.Results[1].Name)

	out, err := yaml.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: BenchReport")
}

func TestBenchTraceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.bin")
	_, err := trace.WriteStream(path, trace.GenerateStubTrace(7))
	require.NoError(t, err)

	report, err := Bench(Config{Repeat: 1, Trace: path, Experiments: []string{"processor"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, report.Results[0].Events)
}

func TestExecuteAllKeepsCompletedResults(t *testing.T) {
	result := count.Accumulator{}
	failing := &failingExperiment{}
	experiments := []Experiment{
		NewHandlerExperiment(trace.GenerateStubTrace(10), &result, nil),
		failing,
		NewProcessorExperiment(trace.GenerateStubTrace(10), &count.Accumulator{}, nil),
	}
	report := &Report{Kind: "BenchReport"}
	err := Runner{MinRepeat: 2}.ExecuteAll(report, experiments)

	assert.ErrorContains(t, err, "experiment failing")
	assert.Equal(t, 1, failing.runs)
	require.Len(t, report.Results, 2)
	assert.Equal(t, HandlerExperimentName, report.Results[0].Name)
	assert.Equal(t, ProcessorExperimentName, report.Results[1].Name)
}
