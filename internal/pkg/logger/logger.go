// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
)

// Log levels selected with the -logger flag:
//
//	0 = slog.LevelDebug (-8)
//	1 = slog.LevelDebug (-4)
//	2 = slog.LevelInfo  (0)
//	3 = slog.LevelWarn  (4)
//	4 = slog.LevelError (8)
const DefaultLevel = 3

type PlainLogHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// PlainLogHandler writes "LEVEL: message" lines, without time or attributes.
type PlainLogHandler struct {
	slog.Handler
	l *log.Logger
}

func (h *PlainLogHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	h.l.Println(level, r.Message)
	return nil
}

func NewPlainLogHandler(out io.Writer, opts PlainLogHandlerOptions) *PlainLogHandler {
	h := &PlainLogHandler{
		Handler: slog.NewTextHandler(out, &opts.SlogOpts),
		l:       log.New(out, "", 0),
	}
	return h
}

func Level(level int) slog.Level {
	switch {
	case level == 0:
		return slog.LevelDebug - 4
	case level == 1:
		return slog.LevelDebug
	case level == 2:
		return slog.LevelInfo
	case level == 3:
		return slog.LevelWarn
	case level == 4:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func NewLogger(level int) *slog.Logger {
	return NewLoggerTo(os.Stderr, level)
}

func NewLoggerTo(out io.Writer, level int) *slog.Logger {
	logLevel := new(slog.LevelVar)
	logLevel.Set(Level(level))
	return slog.New(NewPlainLogHandler(out, PlainLogHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: logLevel,
		},
	}))
}
