// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/pkg/source"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

var publishBatch = 4096

// Publish replaces the Redis list named by the config with a stub trace of
// length events.
func Publish(ctx context.Context, cfg source.Config, length int, log *slog.Logger) error {
	r := &trace.RedisTrace{Url: cfg.Url(), Key: cfg.Key, Logger: log}
	if err := r.Connect(ctx); err != nil {
		return err
	}
	defer r.Disconnect()
	if err := r.Clear(ctx); err != nil {
		return err
	}

	stub := trace.GenerateStubTrace(length)
	batch := make([]trace.Event, 0, publishBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := r.Publish(ctx, batch)
		batch = batch[:0]
		return err
	}
	for stub.HasNext() {
		e, err := stub.Next()
		if err != nil {
			return err
		}
		if batch = append(batch, e); len(batch) == publishBatch {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	fmt.Printf("Published %d events: %s\n", length, cfg.Key)
	return nil
}
