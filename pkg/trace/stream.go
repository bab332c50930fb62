// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package trace

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/errors"
)

// Stream is a trace file of size prefixed event flatbuffers.
//
// Events can be ranged over directly, or pulled through the Trace interface
// after calling Open.
type Stream struct {
	File   string
	Logger *slog.Logger
	stack  []Event // Supports unit tests.

	opened  bool
	next    func() (Event, error, bool)
	stop    func()
	pending *streamItem
}

type streamItem struct {
	event Event
	err   error
}

func (s *Stream) Events() iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		// Supports unit tests
		for _, e := range s.stack {
			if !yield(e, nil) {
				return
			}
		}

		// Read from the stream.
		if len(s.File) == 0 {
			// No trace file, no more events to yield.
			return
		}
		f, err := os.Open(s.File)
		if err != nil {
			yield(nil, errors.ErrTraceOpen(err))
			return
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			yield(nil, errors.ErrTraceOpen(err))
			return
		}
		remaining := info.Size()
		r := bufio.NewReader(f)
		for {
			// Get the size of the next flatbuffer.
			b := make([]byte, flatbuffers.SizeUint32)
			if _, err := io.ReadFull(r, b); err != nil {
				if err != io.EOF {
					yield(nil, errors.ErrTraceRead(err))
				}
				return
			}
			length := flatbuffers.GetSizePrefix(b, 0)
			remaining -= int64(flatbuffers.SizeUint32)

			// The size prefix must not claim more than the file holds.
			if int64(length) > remaining {
				yield(nil, errors.ErrTraceDecode(fmt.Sprintf("incomplete flatbuffer, length %d exceeds remaining %d bytes", length, remaining)))
				return
			}
			remaining -= int64(length)

			// Load the rest of the flatbuffer.
			buf := make([]byte, length)
			if n, err := io.ReadFull(r, buf); err != nil {
				yield(nil, errors.ErrTraceDecode(fmt.Sprintf("incomplete flatbuffer, read len %d (expected %d)", n, length)))
				return
			}

			// Create and yield the event.
			e, err := decodeEvent(buf)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

// Open prepares the stream for pulling with HasNext/Next. An open stream
// holds the trace file open until it is exhausted or Close is called.
func (s *Stream) Open() error {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if len(s.File) > 0 {
		if _, err := os.Stat(s.File); err != nil {
			return errors.ErrTraceOpen(err)
		}
	}
	s.Close()
	s.Logger.Debug(fmt.Sprintf("Stream: Open: %s", s.File))
	s.next, s.stop = iter.Pull2(s.Events())
	s.opened = true
	s.advance()
	return nil
}

func (s *Stream) Close() {
	if s.stop != nil {
		s.stop()
	}
	s.next, s.stop, s.pending = nil, nil, nil
}

func (s *Stream) advance() {
	s.pending = nil
	if s.next == nil {
		return
	}
	e, err, ok := s.next()
	if !ok {
		s.Close()
		return
	}
	s.pending = &streamItem{event: e, err: err}
}

// HasNext reports a pending read error as a further item, which Next then
// returns.
func (s *Stream) HasNext() bool {
	return s.pending != nil
}

func (s *Stream) Next() (Event, error) {
	if !s.opened {
		return nil, errors.ErrTraceNotOpen
	}
	if s.pending == nil {
		return nil, errors.ErrExhaustedTrace
	}
	item := s.pending
	if item.err != nil {
		// The underlying iterator stops after an error.
		s.Close()
		return nil, item.err
	}
	s.advance()
	return item.event, nil
}

type StreamWriter struct {
	w       io.Writer
	builder *flatbuffers.Builder
}

func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w, builder: flatbuffers.NewBuilder(64)}
}

func (sw *StreamWriter) Write(e Event) error {
	_, err := sw.w.Write(encodeEvent(sw.builder, e))
	return err
}

// WriteStream drains t into a new trace file at path, returning the number
// of events written.
func WriteStream(path string, t Trace) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	sw := NewStreamWriter(w)
	count := 0
	for t.HasNext() {
		e, err := t.Next()
		if err != nil {
			return count, err
		}
		if err := sw.Write(e); err != nil {
			return count, err
		}
		count++
	}
	if err := w.Flush(); err != nil {
		return count, err
	}
	return count, f.Close()
}
