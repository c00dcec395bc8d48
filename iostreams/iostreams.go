// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package iostreams

import (
	"bytes"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is assumed when the size of the terminal cannot be read.
const DefaultWidth = 80

// IOStreams groups the input and output streams a command writes to.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	colorEnabled bool
	stdoutTTY    bool
}

// System returns the IOStreams attached to the process' standard streams.
func System() *IOStreams {
	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	return &IOStreams{
		In:           os.Stdin,
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
		stdoutTTY:    stdoutTTY,
		colorEnabled: EnvColorForced() || (!EnvColorDisabled() && stdoutTTY),
	}
}

// Test returns IOStreams backed by in-memory buffers.
func Test() (*IOStreams, *bytes.Buffer, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	return &IOStreams{
		In:     in,
		Out:    out,
		ErrOut: errOut,
	}, in, out, errOut
}

func (s *IOStreams) SetColorEnabled(enabled bool) {
	s.colorEnabled = enabled
}

func (s *IOStreams) ColorScheme() *ColorScheme {
	return NewColorScheme(s.colorEnabled)
}

// TerminalWidth returns the column count of the terminal attached to stdout,
// or 0 when output is redirected so that nothing gets truncated.
func (s *IOStreams) TerminalWidth() int {
	f, ok := s.Out.(*os.File)
	if !ok || !s.stdoutTTY {
		return 0
	}

	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
		return w
	}

	return DefaultWidth
}
