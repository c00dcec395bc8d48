// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package toolchain

import (
	"path/filepath"
	"strings"
)

// Prefix is the target triple prefix of every binary in toolchain-riscv.
const Prefix = "riscv-none-embed-"

// Tools names the binaries of the cross toolchain and the program outputs.
type Tools struct {
	AR       string
	AS       string
	CC       string
	CXX      string
	GDB      string
	OBJCOPY  string
	RANLIB   string
	SIZETOOL string

	ARFlags []string

	ProgName   string
	ProgSuffix string
}

// DefaultTools returns the toolchain-riscv binaries building firmware.elf.
func DefaultTools() Tools {
	return Tools{
		AR:         Prefix + "gcc-ar",
		AS:         Prefix + "as",
		CC:         Prefix + "gcc",
		CXX:        Prefix + "g++",
		GDB:        Prefix + "gdb",
		OBJCOPY:    Prefix + "objcopy",
		RANLIB:     Prefix + "ranlib",
		SIZETOOL:   Prefix + "size",
		ARFlags:    []string{"rc"},
		ProgName:   "firmware",
		ProgSuffix: ".elf",
	}
}

// Program returns the path of the linked program in buildDir.
func (t Tools) Program(buildDir string) string {
	return filepath.Join(buildDir, t.ProgName+t.ProgSuffix)
}

// Output returns the path of a converted image, ext being .bin or .hex.
func (t Tools) Output(buildDir, ext string) string {
	return filepath.Join(buildDir, t.ProgName+ext)
}

// ElfToBin converts elf to a raw binary.
func (t Tools) ElfToBin(elf, bin string) *Command {
	return &Command{Tool: t.OBJCOPY, Args: []string{"-O", "binary", elf, bin}}
}

// ElfToHex converts elf to Intel HEX.
func (t Tools) ElfToHex(elf, hex string) *Command {
	return &Command{Tool: t.OBJCOPY, Args: []string{"-O", "ihex", elf, hex}}
}

// Size prints the section sizes of the given files.
func (t Tools) Size(files ...string) *Command {
	return &Command{Tool: t.SIZETOOL, Args: append([]string{"--format=berkeley"}, files...)}
}

// Command is a single tool invocation.
type Command struct {
	Tool string
	Args []string

	// SearchPath lists directories searched for Tool before $PATH.
	SearchPath []string
}

func (c *Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Tool)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\"'{}") {
			a = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
