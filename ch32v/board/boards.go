// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package board generates and reads PlatformIO board descriptors.
package board

import (
	"strings"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/chip"
)

// Framework identifiers as they appear in a descriptor.
const (
	FrameworkNoneOS        = "noneos-sdk"
	FrameworkFreeRTOS      = "freertos"
	FrameworkHarmonyLiteOS = "harmony-liteos"
	FrameworkRTThread      = "rt-thread"
	FrameworkTencentOS     = "tencent-os"
	FrameworkArduino       = "arduino"
	FrameworkZephyr        = "zephyr"
)

// Upload protocols.
const (
	ProtocolWCHLink    = "wch-link"
	ProtocolMinichlink = "minichlink"
	ProtocolISP        = "isp"
	ProtocolCustom     = "custom"
)

// Board is a buildable target: either a generic chip or a named board
// carrying one.
type Board struct {
	// ID is the descriptor file name without extension.
	ID   string
	Name string
	Chip chip.Info

	// ExtraFlags are appended to the generated macros.
	ExtraFlags []string

	Patches []Patch
}

// Generic returns the board describing a bare chip.
func Generic(info chip.Info) Board {
	name := strings.ToUpper(info.Name)
	return Board{
		ID:   "generic" + name,
		Name: "Generic " + name,
		Chip: info,
	}
}

// GenericBoards returns one board per chip in the database.
func GenericBoards() []Board {
	db := chip.Database()

	boards := make([]Board, 0, len(db))
	for _, info := range db {
		boards = append(boards, Generic(info))
	}

	return boards
}

func mustChip(name string) chip.Info {
	info, err := chip.Lookup(name)
	if err != nil {
		panic(err)
	}
	return info
}

// KnownBoards returns the evaluation boards with their own descriptor.
func KnownBoards() []Board {
	return []Board{
		{
			ID:   "ch32v003f4p6_evt_r0",
			Name: "CH32V003F4P6-EVT-R0",
			Chip: mustChip("CH32V003F4P6"),
			Patches: []Patch{
				PatchURL("https://www.aliexpress.com/item/1005004895791296.html"),
				PatchVendor("W.CH"),
				PatchFramework(FrameworkZephyr),
				PatchZephyrVariant("ch32v003evt"),
			},
		},
		{
			ID:   "ch32v203c8t6_evt_r0",
			Name: "CH32V203C8T6-EVT-R0",
			Chip: mustChip("CH32V203C8T6"),
			Patches: []Patch{
				PatchURL("https://www.aliexpress.com/item/1005004895791296.html"),
				PatchVendor("W.CH"),
			},
		},
		{
			ID:   "ch32v307_evt",
			Name: "CH32V307 EVT",
			Chip: mustChip("CH32V307VCT6"),
			Patches: []Patch{
				PatchURL("https://www.aliexpress.com/item/1005004511264952.html"),
				PatchVendor("SCDZ"),
			},
		},
	}
}

// AllBoards returns the generic boards followed by the known boards.
func AllBoards() []Board {
	return append(GenericBoards(), KnownBoards()...)
}

// Find returns the board with the given identifier.
func Find(boards []Board, id string) (Board, bool) {
	for _, b := range boards {
		if strings.EqualFold(b.ID, id) {
			return b, true
		}
	}
	return Board{}, false
}

// rtosFrameworks is the scheduler set offered on parts with enough RAM.
var rtosFrameworks = []string{
	FrameworkFreeRTOS,
	FrameworkHarmonyLiteOS,
	FrameworkRTThread,
	FrameworkTencentOS,
}

// frameworkRules are evaluated in order. Every matching rule contributes.
var frameworkRules = []struct {
	match      func(mcu string) bool
	frameworks []string
}{
	{
		match:      func(string) bool { return true },
		frameworks: []string{FrameworkNoneOS},
	},
	{
		// The V00x parts have 2-8 KiB of RAM, too little for a scheduler.
		match: func(mcu string) bool {
			return !strings.HasPrefix(mcu, "ch32v00") && !strings.HasPrefix(mcu, "ch5")
		},
		frameworks: rtosFrameworks,
	},
	{
		match: func(mcu string) bool {
			return strings.HasPrefix(mcu, "ch58") || strings.HasPrefix(mcu, "ch59")
		},
		frameworks: []string{FrameworkFreeRTOS, FrameworkRTThread},
	},
}

// Frameworks returns the frameworks available on info, excluding Arduino.
func Frameworks(info chip.Info) []string {
	mcu := info.Lower()

	var ret []string
	for _, rule := range frameworkRules {
		if !rule.match(mcu) {
			continue
		}
		for _, f := range rule.frameworks {
			if !contains(ret, f) {
				ret = append(ret, f)
			}
		}
	}

	return ret
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
