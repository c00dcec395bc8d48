// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package exec

import (
	"fmt"
	"io"
)

type ExecOptions struct {
	stderr    io.Writer
	stdout    io.Writer
	stderrcbs []io.Writer
	stdoutcbs []io.Writer
	stdin     io.Reader
	env       []string
	dir       string
	searchIn  []string
	callbacks []func(int)
}

type ExecOption func(eo *ExecOptions) error

func NewExecOptions(eopts ...ExecOption) (*ExecOptions, error) {
	eo := &ExecOptions{}

	for _, o := range eopts {
		if err := o(eo); err != nil {
			return nil, fmt.Errorf("could not apply option: %v", err)
		}
	}

	return eo, nil
}

func WithEnvKey(key, val string) ExecOption {
	return func(eo *ExecOptions) error {
		eo.env = append(eo.env, fmt.Sprintf("%s=%s", key, val))
		return nil
	}
}

// WithDir sets the working directory of the process.
func WithDir(dir string) ExecOption {
	return func(eo *ExecOptions) error {
		eo.dir = dir
		return nil
	}
}

// WithSearchPath adds directories searched for the binary before $PATH, for
// example the bin/ folder of an installed tool package.
func WithSearchPath(dirs ...string) ExecOption {
	return func(eo *ExecOptions) error {
		eo.searchIn = append(eo.searchIn, dirs...)
		return nil
	}
}

func WithOnExitCallback(callback func(int)) ExecOption {
	return func(eo *ExecOptions) error {
		eo.callbacks = append(eo.callbacks, callback)
		return nil
	}
}

func WithStdout(stdout io.Writer) ExecOption {
	return func(eo *ExecOptions) error {
		eo.stdout = stdout
		return nil
	}
}

func WithStderr(stderr io.Writer) ExecOption {
	return func(eo *ExecOptions) error {
		eo.stderr = stderr
		return nil
	}
}

func WithStdin(stdin io.Reader) ExecOption {
	return func(eo *ExecOptions) error {
		eo.stdin = stdin
		return nil
	}
}

func WithStdoutCallback(stdoutcb io.Writer) ExecOption {
	return func(eo *ExecOptions) error {
		eo.stdoutcbs = append(eo.stdoutcbs, stdoutcb)
		return nil
	}
}

func WithStderrCallback(stderrcb io.Writer) ExecOption {
	return func(eo *ExecOptions) error {
		eo.stderrcbs = append(eo.stderrcbs, stderrcb)
		return nil
	}
}
