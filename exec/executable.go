// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package exec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cli/safeexec"
)

// Executable is a program and the arguments it is invoked with.
type Executable struct {
	bin  string
	args []string
}

// NewExecutable prepares bin with args. A bin containing spaces is split
// into the program and leading arguments.
func NewExecutable(bin string, args ...string) (*Executable, error) {
	if len(bin) == 0 {
		return nil, fmt.Errorf("binary argument cannot be empty")
	}

	e := &Executable{}

	if strings.Contains(bin, " ") {
		fields := strings.Fields(bin)
		bin = fields[0]
		e.args = fields[1:]
	}

	e.args = append(e.args, args...)
	e.bin = bin

	return e, nil
}

func (e *Executable) Bin() string {
	return e.bin
}

func (e *Executable) Args() []string {
	return e.args
}

// LookPath resolves the executable against the given directories first and
// then $PATH. Binaries given with a path are returned unchanged.
func (e *Executable) LookPath(dirs ...string) (string, error) {
	if strings.ContainsRune(e.bin, filepath.Separator) || strings.ContainsRune(e.bin, '/') {
		return e.bin, nil
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if p, err := safeexec.LookPath(filepath.Join(dir, e.bin)); err == nil {
			return p, nil
		}
	}

	p, err := safeexec.LookPath(e.bin)
	if err != nil {
		return "", fmt.Errorf("could not find %s: %w", e.bin, err)
	}

	return p, nil
}
