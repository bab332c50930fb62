// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

const (
	RedisEnv        = "TRACEBENCH_REDIS"
	DefaultRedisUrl = "redis://localhost:6379"
)

// Config selects a trace source: a Redis list when Key is set, otherwise a
// trace file.
type Config struct {
	File     string
	RedisUrl string
	Key      string
}

func (c Config) Redis() bool {
	return len(c.Key) > 0
}

// Url returns the Redis URL, falling back to TRACEBENCH_REDIS and then the
// default local server.
func (c Config) Url() string {
	if len(c.RedisUrl) > 0 {
		return c.RedisUrl
	}
	if url := os.Getenv(RedisEnv); len(url) > 0 {
		return url
	}
	return DefaultRedisUrl
}

func (c Config) Validate() error {
	if !c.Redis() && len(c.File) == 0 {
		return fmt.Errorf("trace file not specified")
	}
	return nil
}

// Open returns an opened trace and the function which releases it.
func Open(ctx context.Context, c Config, logger *slog.Logger) (trace.Trace, func(), error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	if c.Redis() {
		r := &trace.RedisTrace{Url: c.Url(), Key: c.Key, Logger: logger}
		if err := r.Open(ctx); err != nil {
			r.Disconnect()
			return nil, nil, err
		}
		return r, r.Disconnect, nil
	}
	s := &trace.Stream{File: c.File, Logger: logger}
	if err := s.Open(); err != nil {
		return nil, nil, err
	}
	return s, s.Close, nil
}
