// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package exec

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

// Process is a single prepared invocation of an executable.
type Process struct {
	executable *Executable
	opts       *ExecOptions
	cmd        *exec.Cmd
}

func NewProcess(bin string, args []string, eopts ...ExecOption) (*Process, error) {
	executable, err := NewExecutable(bin, args...)
	if err != nil {
		return nil, err
	}

	return NewProcessFromExecutable(executable, eopts...)
}

func NewProcessFromExecutable(executable *Executable, eopts ...ExecOption) (*Process, error) {
	if executable == nil {
		return nil, fmt.Errorf("cannot prepare process without executable")
	}

	opts, err := NewExecOptions(eopts...)
	if err != nil {
		return nil, err
	}

	return &Process{
		executable: executable,
		opts:       opts,
	}, nil
}

func (e *Process) Cmdline() string {
	return strings.Join(
		append(
			[]string{e.executable.bin},
			e.executable.Args()...,
		),
		" ",
	)
}

func multi(primary io.Writer, cbs []io.Writer) io.Writer {
	switch {
	case primary != nil && len(cbs) == 0:
		return primary
	case primary != nil:
		return io.MultiWriter(append([]io.Writer{primary}, cbs...)...)
	case len(cbs) > 0:
		return io.MultiWriter(cbs...)
	}
	return nil
}

// Start launches the process. It is killed when ctx is cancelled.
func (e *Process) Start(ctx context.Context) error {
	bin, err := e.executable.LookPath(e.opts.searchIn...)
	if err != nil {
		return err
	}

	e.cmd = exec.CommandContext(ctx, bin, e.executable.Args()...)
	e.cmd.Stdout = multi(e.opts.stdout, e.opts.stdoutcbs)

	// Without an explicit stderr, errors go wherever stdout goes.
	if e.opts.stderr != nil {
		e.cmd.Stderr = multi(e.opts.stderr, e.opts.stderrcbs)
	} else {
		e.cmd.Stderr = multi(e.opts.stdout, e.opts.stderrcbs)
	}

	if e.opts.stdin != nil {
		e.cmd.Stdin = e.opts.stdin
	}

	e.cmd.Dir = e.opts.dir

	// Add any set environmental variables including the host's
	e.cmd.Env = append(os.Environ(), e.opts.env...)

	log.G(ctx).Debug(e.Cmdline())

	return e.cmd.Start()
}

func (e *Process) Wait() error {
	if e.cmd == nil {
		return fmt.Errorf("process has not yet started cannot wait")
	}

	err := e.cmd.Wait()
	for _, cb := range e.opts.callbacks {
		cb(e.cmd.ProcessState.ExitCode())
	}

	return err
}

func (e *Process) StartAndWait(ctx context.Context) error {
	if err := e.Start(ctx); err != nil {
		return err
	}

	return e.Wait()
}
