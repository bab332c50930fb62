// Copyright 2025 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package summary

import (
	"fmt"

	"github.com/boschglobal/dse.modelc/extra/tools/tracebench/pkg/trace"
)

type Short struct {
}

func (s *Short) HandleEvent(e trace.Event) {
	fmt.Println(trace.Format(e))
}
