// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/errors"
)

func redisUrl() string {
	if url := os.Getenv("TRACEBENCH_REDIS"); len(url) > 0 {
		return url
	}
	return "redis://localhost:6379"
}

func connectRedisTrace(t *testing.T, key string) *RedisTrace {
	t.Helper()
	r := &RedisTrace{Url: redisUrl(), Key: key}
	if err := r.Connect(context.Background()); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	require.NoError(t, r.Clear(context.Background()))
	t.Cleanup(func() {
		r.Clear(context.Background())
		r.Disconnect()
	})
	return r
}

func TestRedisEnvelope(t *testing.T) {
	b := flatbuffers.NewBuilder(64)
	d, err := encodeEnvelope(encodeEvent(b, NewEvent("switch", 1, 2)))
	require.NoError(t, err)
	e, err := decodeEnvelope(d)
	require.NoError(t, err)
	assert.Equal(t, "switch 1 -> 2", Format(e))

	_, err = decodeEnvelope([]byte{0xc0})
	assert.Error(t, err)
}

func TestRedisTraceNotOpen(t *testing.T) {
	r := RedisTrace{Key: "dse.trace.test"}
	assert.False(t, r.HasNext())
	_, err := r.Next()
	assert.ErrorIs(t, err, errors.ErrTraceNotOpen)
}

func TestRedisTracePublish(t *testing.T) {
	ctx := context.Background()
	r := connectRedisTrace(t, "dse.trace.test.publish")
	require.NoError(t, r.Publish(ctx, []Event{
		NewEvent("start", NoTid, 1),
		NewEvent("switch", 1, 2),
		NewEvent("end", 2, NoTid),
	}))

	require.NoError(t, r.Open(ctx))
	got := []string{}
	for r.HasNext() {
		e, err := r.Next()
		require.NoError(t, err)
		got = append(got, Format(e))
	}
	assert.Equal(t, []string{"start - -> 1", "switch 1 -> 2", "end 2 -> -"}, got)
	_, err := r.Next()
	assert.ErrorIs(t, err, errors.ErrExhaustedTrace)
}

func TestRedisTracePaging(t *testing.T) {
	ctx := context.Background()
	pageSize := redisPageSize
	redisPageSize = 4
	defer func() { redisPageSize = pageSize }()

	r := connectRedisTrace(t, "dse.trace.test.paging")
	stub := GenerateStubTrace(10)
	events := []Event{}
	for stub.HasNext() {
		e, _ := stub.Next()
		events = append(events, e)
	}
	require.NoError(t, r.Publish(ctx, events))
	require.NoError(t, r.Open(ctx))

	count := 0
	for r.HasNext() {
		e, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, Tid(count), e.PrevTid())
		count++
	}
	assert.Equal(t, 10, count)
}

func TestRedisTraceKeyNotConfigured(t *testing.T) {
	var buf bytes.Buffer
	r := RedisTrace{Url: redisUrl(), Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	err := r.Connect(context.Background())
	assert.ErrorIs(t, err, errors.ErrTraceKeyNotConfigured)
	assert.Empty(t, buf.String())
	assert.False(t, r.HasNext())
}
