// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/shlex"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/arch"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/chip"
)

// Fields of every struct below are declared in lexical order of their JSON
// keys so that the encoded document has sorted keys.

// Descriptor is the PlatformIO board manifest of a single board.
type Descriptor struct {
	Build      Build    `json:"build"`
	Debug      Debug    `json:"debug"`
	Frameworks []string `json:"frameworks"`
	Name       string   `json:"name"`
	Upload     Upload   `json:"upload"`
	URL        string   `json:"url"`
	Vendor     string   `json:"vendor"`
}

type Build struct {
	Arduino    *Arduino   `json:"arduino,omitempty"`
	Core       string     `json:"core,omitempty"`
	ExtraFlags string     `json:"extra_flags"`
	FCPU       string     `json:"f_cpu"`
	HWIDs      [][]string `json:"hwids"`
	Mabi       string     `json:"mabi"`
	March      string     `json:"march"`
	MCU        string     `json:"mcu"`
	Series     string     `json:"series"`
	Variant    string     `json:"variant,omitempty"`
	Zephyr     *Zephyr    `json:"zephyr,omitempty"`
}

// Arduino holds per-core Arduino settings.
type Arduino struct {
	OpenWCH *ArduinoCore `json:"openwch,omitempty"`
}

type ArduinoCore struct {
	Variant string `json:"variant"`
}

type Zephyr struct {
	Variant string `json:"variant"`
}

type Debug struct {
	OnboardTools  []string `json:"onboard_tools"`
	OpenOCDConfig string   `json:"openocd_config,omitempty"`
	OpenOCDTarget string   `json:"openocd_target,omitempty"`
	SVDPath       string   `json:"svd_path"`
}

type Upload struct {
	// ImageOffset is added by OpenOCD to the addresses of the loaded ELF.
	// It is independent of OffsetAddress, which places the flash region.
	ImageOffset    string   `json:"image_offset,omitempty"`
	MaximumRAMSize int      `json:"maximum_ram_size"`
	MaximumSize    int      `json:"maximum_size"`
	OffsetAddress  string   `json:"offset_address,omitempty"`
	Protocol       string   `json:"protocol"`
	Protocols      []string `json:"protocols"`
}

// Encode returns the indented JSON document terminated by a newline.
func (d *Descriptor) Encode() ([]byte, error) {
	var b bytes.Buffer

	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(d); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// Pair returns the instruction set and ABI of the board.
func (d *Descriptor) Pair() arch.Pair {
	return arch.Pair{March: d.Build.March, Mabi: d.Build.Mabi}
}

// Chip looks up the board's MCU in the chip database.
func (d *Descriptor) Chip() (chip.Info, error) {
	return chip.Lookup(d.Build.MCU)
}

// HasFramework reports whether the board lists framework.
func (d *Descriptor) HasFramework(framework string) bool {
	for _, f := range d.Frameworks {
		if f == framework {
			return true
		}
	}
	return false
}

// Macros returns the names (and values) of every -D flag in extra_flags,
// without the -D prefix.
func (d *Descriptor) Macros() ([]string, error) {
	args, err := shlex.Split(d.Build.ExtraFlags)
	if err != nil {
		return nil, err
	}

	var macros []string
	for _, arg := range args {
		if m, ok := strings.CutPrefix(arg, "-D"); ok && m != "" {
			macros = append(macros, m)
		}
	}

	return macros, nil
}

// ClassificationMacro returns the sub-family macro carried in extra_flags,
// if any.
func (d *Descriptor) ClassificationMacro() (string, error) {
	macros, err := d.Macros()
	if err != nil {
		return "", err
	}

	known := arch.Macros()
	for _, m := range macros {
		for _, k := range known {
			if m == k {
				return m, nil
			}
		}
	}

	return "", nil
}
