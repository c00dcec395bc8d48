// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package arch resolves the RISC-V instruction set, ABI and vendor
// classification macro of a chip.
package arch

import (
	"fmt"
	"strings"

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

// Pair is an instruction set (-march) and ABI (-mabi) combination.
type Pair struct {
	March string
	Mabi  string
}

func (p Pair) String() string {
	return p.March + "/" + p.Mabi
}

var (
	// QingKe V4 cores (V20x, V30x, X035, L103). V30x can do F but the SDK
	// builds without it.
	PairV4 = Pair{"rv32imacxw", "ilp32"}

	// QingKe V3A (V10x) and the CH5xx cores.
	PairV3 = Pair{"rv32imac", "ilp32"}

	// QingKe V2 (V00x), reduced register file.
	PairV2 = Pair{"rv32ecxw", "ilp32e"}
)

// ValidPairs returns the fixed set of instruction set and ABI combinations
// used by the flag tables.
func ValidPairs() []Pair {
	return []Pair{PairV4, PairV3, PairV2}
}

// Valid reports whether p is one of ValidPairs.
func Valid(p Pair) bool {
	for _, v := range ValidPairs() {
		if v == p {
			return true
		}
	}
	return false
}

// UnknownChipError is returned when a chip matches none of the rule tables.
type UnknownChipError struct {
	Chip string
	What string
}

func (e *UnknownChipError) Error() string {
	return fmt.Sprintf("unknown chip %s: no %s rule", e.Chip, e.What)
}

func (e *UnknownChipError) Unwrap() error {
	return errs.ErrUnknownChip
}

type rule struct {
	prefix string
	pair   Pair
}

var rules = []rule{
	{"ch32v3", PairV4},
	{"ch32v2", PairV4},
	{"ch32x0", PairV4},
	{"ch32l1", PairV4},
	{"ch32v1", PairV3},
	{"ch32v0", PairV2},
	{"ch5", PairV3},
}

// Resolve returns the instruction set and ABI of chip. The longest matching
// prefix wins.
func Resolve(chip string) (Pair, error) {
	name := strings.ToLower(chip)

	best := -1
	for i, r := range rules {
		if !strings.HasPrefix(name, r.prefix) {
			continue
		}
		if best < 0 || len(r.prefix) > len(rules[best].prefix) {
			best = i
		}
	}

	if best < 0 {
		return Pair{}, &UnknownChipError{Chip: chip, What: "architecture/ABI"}
	}

	return rules[best].pair, nil
}
