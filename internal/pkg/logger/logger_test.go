// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Level(1))
	assert.Equal(t, slog.LevelInfo, Level(2))
	assert.Equal(t, slog.LevelError, Level(4))
	assert.Equal(t, slog.LevelWarn, Level(42))
}

func TestPlainLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, 2)
	l.Debug("hidden")
	l.Info("shown", "attr", 1)
	l.Error("failed")
	assert.Equal(t, "INFO: shown\nERROR: failed\n", buf.String())
}
