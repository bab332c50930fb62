// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	flatbuffers "github.com/google/flatbuffers/go"
	red "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/errors"
)

var redisPageSize int64 = 1024

// RedisTrace is a trace held in a Redis list. Each list item is a msgpack
// envelope of the event identifier followed by the event flatbuffer.
//
// Open snapshots the list length; events pushed afterwards are not part of
// the trace until the next Open.
type RedisTrace struct {
	Url    string
	Key    string
	Logger *slog.Logger

	ctx     context.Context
	client  *red.Client
	builder *flatbuffers.Builder

	length int64
	cursor int64
	page   []string
	offset int64 // List index of page[0].
}

func (r *RedisTrace) Connect(ctx context.Context) error {
	if r.Logger == nil {
		r.Logger = slog.Default()
	}
	if len(r.Key) == 0 {
		return errors.ErrTraceKeyNotConfigured
	}
	r.Logger.Info(fmt.Sprintf("Redis: Connect: %s", r.Url))
	opt, err := red.ParseURL(r.Url)
	if err != nil {
		return errors.ErrTraceOpen(err)
	}
	client := red.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return errors.ErrTraceOpen(err)
	}
	r.ctx = ctx
	r.client = client
	r.builder = flatbuffers.NewBuilder(64)
	r.Logger.Debug(fmt.Sprintf("Redis: Key: %s", r.Key))
	return nil
}

func (r *RedisTrace) Disconnect() {
	if r.client == nil {
		return
	}
	r.Logger.Info("Redis: Disconnect:")
	r.client.Close()
	r.client = nil
	r.length, r.cursor, r.page = 0, 0, nil
}

// Open connects (when needed) and positions the trace at the head of the list.
func (r *RedisTrace) Open(ctx context.Context) error {
	if r.client == nil {
		if err := r.Connect(ctx); err != nil {
			return err
		}
	}
	length, err := r.client.LLen(ctx, r.Key).Result()
	if err != nil {
		return errors.ErrTraceOpen(err)
	}
	r.ctx = ctx
	r.length = length
	r.Rewind()
	r.Logger.Info(fmt.Sprintf("Redis: LLEN %s = %d", r.Key, r.length))
	return nil
}

func (r *RedisTrace) Rewind() {
	r.cursor, r.page, r.offset = 0, nil, 0
}

func (r *RedisTrace) HasNext() bool {
	return r.cursor < r.length
}

func (r *RedisTrace) Next() (Event, error) {
	if r.client == nil {
		return nil, errors.ErrTraceNotOpen
	}
	if !r.HasNext() {
		return nil, errors.ErrExhaustedTrace
	}
	if r.cursor >= r.offset+int64(len(r.page)) {
		stop := min(r.cursor+redisPageSize, r.length) - 1
		r.Logger.Debug(fmt.Sprintf("Redis: LRANGE %s %d %d", r.Key, r.cursor, stop))
		page, err := r.client.LRange(r.ctx, r.Key, r.cursor, stop).Result()
		if err != nil {
			return nil, errors.ErrTraceRead(err)
		}
		if len(page) == 0 {
			return nil, errors.ErrTraceRead(fmt.Errorf("list %s truncated at index %d", r.Key, r.cursor))
		}
		r.page, r.offset = page, r.cursor
	}
	e, err := decodeEnvelope([]byte(r.page[r.cursor-r.offset]))
	if err != nil {
		return nil, err
	}
	r.cursor++
	return e, nil
}

// Publish appends events to the trace list.
func (r *RedisTrace) Publish(ctx context.Context, events []Event) error {
	if r.client == nil {
		return errors.ErrTraceNotOpen
	}
	pipe := r.client.Pipeline()
	for _, e := range events {
		d, err := encodeEnvelope(encodeEvent(r.builder, e))
		if err != nil {
			return err
		}
		pipe.RPush(ctx, r.Key, d)
	}
	r.Logger.Debug(fmt.Sprintf("Redis: RPUSH -> %s (%d events)", r.Key, len(events)))
	_, err := pipe.Exec(ctx)
	return err
}

// Clear removes the trace list.
func (r *RedisTrace) Clear(ctx context.Context) error {
	if r.client == nil {
		return errors.ErrTraceNotOpen
	}
	return r.client.Del(ctx, r.Key).Err()
}

func encodeEnvelope(fb []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := msgpack.NewEncoder(buf)
	if err := enc.EncodeString(eventIdentifier); err != nil {
		return nil, err
	}
	// Strip the size prefix, the envelope carries the length.
	if err := enc.EncodeBytes(fb[flatbuffers.SizeUint32:]); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeEnvelope(d []byte) (Event, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(d))
	id, err := dec.DecodeString()
	if err != nil {
		return nil, errors.NewTraceError(err, "envelope identifier")
	}
	if id != eventIdentifier {
		return nil, errors.ErrTraceDecode(fmt.Sprintf("unexpected envelope identifier: %q", id))
	}
	fb, err := dec.DecodeBytes()
	if err != nil {
		return nil, errors.NewTraceError(err, "envelope payload")
	}
	return decodeEvent(fb)
}
