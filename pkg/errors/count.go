// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrProcessorDone = fmt.Errorf("processor already drained a trace")
	ErrCountMismatch = func(expect, got uint64) error {
		return NewCountError(nil, fmt.Sprintf("count mismatch, expected %d got %d", expect, got))
	}
)

type CountError struct {
	msg string
	err error
}

func NewCountError(e error, msg string) *CountError {
	return &CountError{msg: msg, err: e}
}

func (e *CountError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("count: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("count: %q", e.msg)
	}
}

func (e *CountError) Unwrap() error {
	return e.err
}
