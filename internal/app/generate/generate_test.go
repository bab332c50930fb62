// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/internal/pkg/source"
	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stub.bin")
	c := NewGenerateCommand("generate")
	require.NoError(t, c.Parse([]string{"-length", "12", "-output", path}))
	require.NoError(t, c.Run())

	s := trace.Stream{File: path}
	i := 0
	for e, err := range s.Events() {
		require.NoError(t, err)
		assert.Equal(t, trace.SchedSwitchName, e.Name())
		assert.Equal(t, trace.Tid(i), e.PrevTid())
		i++
	}
	assert.Equal(t, 12, i)
}

func TestGenerateParse(t *testing.T) {
	c := NewGenerateCommand("generate")
	assert.ErrorContains(t, c.Parse([]string{}), "output not specified")

	c = NewGenerateCommand("generate")
	assert.ErrorContains(t, c.Parse([]string{"-length", "-1", "-output", "x.bin"}), "must not be negative")

	c = NewGenerateCommand("generate")
	assert.NoError(t, c.Parse([]string{"-key", "dse.trace"}))
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	batch := publishBatch
	publishBatch = 3
	defer func() { publishBatch = batch }()

	cfg := source.Config{Key: "dse.trace.test.generate"}
	if err := Publish(ctx, cfg, 10, nil); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	tr, release, err := source.Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer release()
	n := 0
	for tr.HasNext() {
		_, err := tr.Next()
		require.NoError(t, err)
		n++
	}
	assert.Equal(t, 10, n)
	tr.(*trace.RedisTrace).Clear(ctx)
}
