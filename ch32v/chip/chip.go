// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package chip holds the physical attributes of every supported WCH
// microcontroller.
package chip

import (
	"fmt"
	"strings"

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

// Info describes a single orderable part.
type Info struct {
	// Name is the full part number including the two-character package code,
	// e.g. CH32V307VCT6.
	Name string

	// FlashKB is the usable code flash in KiB. For CH5xx parts this includes
	// the 32 KiB data flash.
	FlashKB int

	// SRAMKB is the SRAM in KiB.
	SRAMKB int

	// FreqMHz is the maximum system clock.
	FreqMHz int

	// Package is the physical package, e.g. LQFP100.
	Package string
}

// Lower returns the part number in lower case, as used for `build.mcu`.
func (i Info) Lower() string {
	return strings.ToLower(i.Name)
}

// IsCH5 reports whether the part belongs to the CH56x-CH59x BLE/USB lines.
func (i Info) IsCH5() bool {
	return strings.HasPrefix(i.Lower(), "ch5")
}

// WithoutPackage strips the two-character package code.
func (i Info) WithoutPackage() string {
	if len(i.Name) <= 2 {
		return i.Name
	}
	return i.Name[:len(i.Name)-2]
}

// Series returns the exact series of the part in lower case, e.g. ch32v307
// or ch58x.
func (i Info) Series() string {
	if i.IsCH5() {
		return strings.ToLower(i.Name[0:len("ch58")]) + "x"
	}
	return strings.ToLower(i.Name[0:len("ch32vxxx")])
}

// FlashBytes returns the flash size in bytes.
func (i Info) FlashBytes() int {
	return i.FlashKB * 1024
}

// SRAMBytes returns the SRAM size in bytes.
func (i Info) SRAMBytes() int {
	return i.SRAMKB * 1024
}

// FreqHz returns the maximum system clock in Hz.
func (i Info) FreqHz() int {
	return i.FreqMHz * 1_000_000
}

// Lookup finds a part by name, ignoring case.
func Lookup(name string) (Info, error) {
	for _, info := range database {
		if strings.EqualFold(info.Name, name) {
			return info, nil
		}
	}

	return Info{}, fmt.Errorf("%w: %s", errs.ErrUnknownChip, name)
}

// Database returns a copy of every known part, in table order.
func Database() []Info {
	return append([]Info(nil), database...)
}

// familyRule maps a series prefix onto the directory name used by the vendor
// SDK and every RTOS port for that family.
type familyRule struct {
	prefix string
	family func(series string) string
}

var familyRules = []familyRule{
	{"ch32x035", func(string) string { return "ch32x035" }},
	{"ch32l103", func(string) string { return "ch32l103" }},
	{"ch5", func(series string) string { return series }},
	{"ch32", func(series string) string { return series[0:len("ch32vxx")] + "x" }},
}

// Family maps a series (see Info.Series) to the directory naming convention
// shared by all framework packages, e.g. ch32v307 to ch32v30x.
func Family(series string) string {
	series = strings.ToLower(series)

	for _, rule := range familyRules {
		if strings.HasPrefix(series, rule.prefix) && len(series) >= len("ch58x") {
			return rule.family(series)
		}
	}

	return series
}
