// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package ldscript renders the per-chip linker script from a template.
//
// Placeholders use '#' rather than '$' since linker scripts contain '$' in
// symbol names (e.g. __global_pointer$). Supported forms are #name, #{name}
// and ## for a literal '#'.
package ldscript

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// RAMOrigin is where SRAM is mapped on every supported part.
const RAMOrigin = 0x20000000

const (
	StackSize      = 2048
	SmallStackSize = 256
)

// DefaultFile is the name of the rendered script inside the build directory.
const DefaultFile = "Link.ld"

//go:embed Link.tpl
var defaultTemplate string

// DefaultTemplate returns the built-in template.
func DefaultTemplate() string {
	return defaultTemplate
}

// Params are the memory layout values substituted into the template. All
// sizes are in bytes.
type Params struct {
	RAM        int
	Flash      int
	FlashStart int
	StackSize  int
}

// Values returns the rendered form of every placeholder.
func (p Params) Values() map[string]string {
	return map[string]string{
		// Stack grows down from the top of RAM.
		"stack":       fmt.Sprintf("%#x", RAMOrigin+p.RAM),
		"ram":         strconv.Itoa(p.RAM/1024) + "K",
		"flash":       strconv.Itoa(p.Flash/1024) + "K",
		"flash_start": fmt.Sprintf("%#x", p.FlashStart),
		"stack_size":  strconv.Itoa(p.StackSize),
	}
}

// DefaultStackSize returns the stack size for chip when the project does not
// override it. The V00x parts only have 2-8 KiB of RAM.
func DefaultStackSize(chip string) int {
	if strings.HasPrefix(strings.ToLower(chip), "ch32v00") {
		return SmallStackSize
	}
	return StackSize
}

// ParseAddress parses an address such as 0x08000000. The empty string is 0.
func ParseAddress(s string) (int, error) {
	if s == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}

	return int(v), nil
}

var placeholder = regexp.MustCompile(`#(?:(#)|([_a-zA-Z][_a-zA-Z0-9]*)|\{([_a-zA-Z][_a-zA-Z0-9]*)\}|())`)

// Render substitutes every placeholder in tpl. Unknown names and a '#' not
// followed by a name are errors.
func Render(tpl string, p Params) (string, error) {
	values := p.Values()

	var b strings.Builder
	last := 0

	for _, m := range placeholder.FindAllStringSubmatchIndex(tpl, -1) {
		b.WriteString(tpl[last:m[0]])
		last = m[1]

		switch {
		case m[2] >= 0:
			b.WriteByte('#')

		case m[4] >= 0, m[6] >= 0:
			name := ""
			if m[4] >= 0 {
				name = tpl[m[4]:m[5]]
			} else {
				name = tpl[m[6]:m[7]]
			}

			v, ok := values[name]
			if !ok {
				return "", fmt.Errorf("unknown placeholder #%s at %s", name, position(tpl, m[0]))
			}
			b.WriteString(v)

		default:
			return "", fmt.Errorf("invalid placeholder at %s", position(tpl, m[0]))
		}
	}

	b.WriteString(tpl[last:])

	return b.String(), nil
}

func position(s string, offset int) string {
	line := strings.Count(s[:offset], "\n") + 1
	col := offset - strings.LastIndex(s[:offset], "\n")
	return fmt.Sprintf("line %d, col %d", line, col)
}

// Generate renders the template at templatePath, or the built-in template
// when templatePath is empty or absent, and writes the result to outPath,
// replacing any previous file.
func Generate(fs afero.Fs, templatePath, outPath string, p Params) (string, error) {
	tpl := defaultTemplate

	if templatePath != "" {
		exists, err := afero.Exists(fs, templatePath)
		if err != nil {
			return "", err
		}

		if exists {
			raw, err := afero.ReadFile(fs, templatePath)
			if err != nil {
				return "", fmt.Errorf("could not read linker script template: %w", err)
			}
			tpl = string(raw)
		}
	}

	content, err := Render(tpl, p)
	if err != nil {
		return "", fmt.Errorf("could not render %s: %w", templateName(templatePath), err)
	}

	if err := fs.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}

	if err := afero.WriteFile(fs, outPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("could not write linker script: %w", err)
	}

	return outPath, nil
}

func templateName(path string) string {
	if path == "" {
		return "built-in template"
	}
	return path
}
