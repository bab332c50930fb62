// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultMinDuration = time.Second
	DefaultMinRepeat   = 10
)

type Result struct {
	Name       string        `yaml:"name"`
	Repeat     int           `yaml:"repeat"`
	Events     int           `yaml:"events"`
	Elapsed    time.Duration `yaml:"elapsed"`
	NsPerEvent float64       `yaml:"ns_per_event"`
}

// Seconds is the mean elapsed time of one repeat.
func (r Result) Seconds() float64 {
	if r.Repeat == 0 {
		return 0
	}
	return r.Elapsed.Seconds() / float64(r.Repeat)
}

// Runner repeats an experiment until it has run for at least MinDuration and
// at least MinRepeat times.
type Runner struct {
	MinDuration time.Duration
	MinRepeat   int
	Logger      *slog.Logger
}

func (r Runner) Execute(ex Experiment) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(fmt.Sprintf("running experiment: %s", ex.Name()))

	result := Result{Name: ex.Name(), Events: ex.Events()}
	for result.Elapsed < r.MinDuration || result.Repeat < r.MinRepeat {
		ex.Before()
		t1 := time.Now()
		if err := ex.Go(); err != nil {
			return result, fmt.Errorf("experiment %s (repeat %d): %w", ex.Name(), result.Repeat, err)
		}
		result.Elapsed += time.Since(t1)
		result.Repeat++
	}
	if events := result.Repeat * result.Events; events > 0 {
		result.NsPerEvent = float64(result.Elapsed.Nanoseconds()) / float64(events)
	}
	logger.Debug(fmt.Sprintf("experiment %s: %d repeats, %v", ex.Name(), result.Repeat, result.Elapsed))
	return result, nil
}
