// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import "fmt"

var (
	ErrExhaustedTrace        = fmt.Errorf("trace exhausted")
	ErrTraceNotOpen          = fmt.Errorf("trace not open")
	ErrTraceKeyNotConfigured = fmt.Errorf("trace key not configured")
	ErrTraceDecode           = func(m string) error { return NewTraceError(nil, m) }
	ErrTraceOpen             = func(e error) error { return NewTraceError(e, "open failed") }
	ErrTraceRead             = func(e error) error { return NewTraceError(e, "read failed") }
)

type TraceError struct {
	msg string
	err error
}

func NewTraceError(e error, msg string) *TraceError {
	return &TraceError{msg: msg, err: e}
}

func (e *TraceError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("trace: %q - %v", e.msg, e.err)
	} else {
		return fmt.Sprintf("trace: %q", e.msg)
	}
}

func (e *TraceError) Unwrap() error {
	return e.err
}
