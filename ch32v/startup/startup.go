// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package startup selects the assembly startup file compiled into a
// NoneOS SDK build. Exactly one file is built; every sibling is filtered out.
package startup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

// UnmappedStartupFileError is returned when no rule yields a startup file.
// Building with a guessed file would produce a non-booting image.
type UnmappedStartupFileError struct {
	Board string
	Chip  string
	Macro string

	// Dir is set when the file was selected but the installed package does
	// not provide it.
	Dir string
}

func (e *UnmappedStartupFileError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("no startup file for board %s (chip %s) in %s", e.Board, e.Chip, e.Dir)
	}
	if e.Macro != "" {
		return fmt.Sprintf("no startup file for board %s (chip %s, classification %s)", e.Board, e.Chip, e.Macro)
	}
	return fmt.Sprintf("no startup file for board %s (chip %s)", e.Board, e.Chip)
}

func (e *UnmappedStartupFileError) Unwrap() error {
	return errs.ErrUnmappedStartupFile
}

var byMacro = map[string]string{
	"CH32V20x_D6":  "startup_ch32v20x_D6.S",
	"CH32V20x_D8":  "startup_ch32v20x_D8.S",
	"CH32V20x_D8W": "startup_ch32v20x_D8W.S",
	"CH32V30x_D8":  "startup_ch32v30x_D8.S",
	"CH32V30x_D8C": "startup_ch32v30x_D8C.S",
}

// Fallback for families without a documented sub-classification. First
// match wins.
var byPrefix = []struct {
	prefix string
	file   string
}{
	{"ch32v00", "startup_ch32v00x.S"},
	{"ch32v10", "startup_ch32v10x.S"},
	{"ch32x035", "startup_ch32x035.S"},
	{"ch32l103", "startup_ch32l103.S"},
	{"ch56", "startup_ch56x.S"},
	{"ch57", "startup_ch57x.S"},
	{"ch58", "startup_ch58x.S"},
	{"ch59", "startup_ch59x.S"},
}

// Files returns every startup file that Select can return, sorted.
func Files() []string {
	seen := map[string]bool{}
	for _, f := range byMacro {
		seen[f] = true
	}
	for _, r := range byPrefix {
		seen[r.file] = true
	}

	ret := make([]string, 0, len(seen))
	for f := range seen {
		ret = append(ret, f)
	}
	sort.Strings(ret)

	return ret
}

// Select returns the startup file for board. The classification macro is
// consulted first, then the chip name prefix.
func Select(board, macro, chip string) (string, error) {
	if macro != "" {
		if file, ok := byMacro[macro]; ok {
			return file, nil
		}
	}

	name := strings.ToLower(chip)
	for _, r := range byPrefix {
		if strings.HasPrefix(name, r.prefix) {
			return r.file, nil
		}
	}

	return "", &UnmappedStartupFileError{Board: board, Chip: chip, Macro: macro}
}

// Filter returns the PlatformIO source filter which builds file alone.
func Filter(file string) string {
	return fmt.Sprintf("-<*> +<%s>", file)
}
