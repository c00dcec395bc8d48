// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package exec

import (
	"context"
	"fmt"

	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

// SequentialProcesses runs a fixed list of steps, such as the objcopy and
// size invocations after linking or a chain of ISP actions, one after the
// other. The first failing step ends the run.
type SequentialProcesses struct {
	steps []*Process
}

// NewSequential prepares steps to run in order. Nil steps are rejected.
func NewSequential(steps ...*Process) (*SequentialProcesses, error) {
	for i, step := range steps {
		if step == nil {
			return nil, fmt.Errorf("step %d of %d has no process", i+1, len(steps))
		}
	}

	return &SequentialProcesses{steps: steps}, nil
}

// Len is the number of steps.
func (sq *SequentialProcesses) Len() int {
	return len(sq.steps)
}

// StartAndWait runs every step to completion. A cancelled ctx stops the
// run before the next step starts.
func (sq *SequentialProcesses) StartAndWait(ctx context.Context) error {
	for i, step := range sq.steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		log.G(ctx).
			WithField("step", fmt.Sprintf("%d/%d", i+1, len(sq.steps))).
			Debug(step.Cmdline())

		if err := step.StartAndWait(ctx); err != nil {
			return fmt.Errorf("%s: %w", step.executable.bin, err)
		}
	}

	return nil
}
