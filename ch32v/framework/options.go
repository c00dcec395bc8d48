// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package framework

import (
	"runtime"
	"strings"
)

// Options are the per-project settings, usually taken from board_build.*
// entries of platformio.ini. Nil pointers select the family default.
type Options struct {
	UseBuiltinStartup *bool
	UseBuiltinSystem  *bool
	UseBuiltinDebug   *bool
	UseCppSupport     *bool
	UseLTO            *bool

	// StackSize in bytes, 0 for the family default.
	StackSize int

	// SmallDataLimit overrides the -msmall-data-limit policy.
	SmallDataLimit *int

	// LDScript is a project-supplied linker script which disables generation.
	LDScript string

	// Host is the GOOS of the machine running the toolchain.
	Host string

	BuildDir      string
	ProjectDir    string
	ProjectSrcDir string
	ProgName      string
}

// Bool returns a pointer to v, for filling Options.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer to v, for filling Options.
func Int(v int) *int {
	return &v
}

func (o Options) withDefaults() Options {
	if o.Host == "" {
		o.Host = runtime.GOOS
	}
	if o.BuildDir == "" {
		o.BuildDir = ".pio/build"
	}
	if o.ProjectSrcDir == "" {
		o.ProjectSrcDir = "src"
	}
	if o.ProgName == "" {
		o.ProgName = "firmware"
	}
	return o
}

func resolve(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Subsystems are the optional parts of the vendor SDK compiled into a build.
type Subsystems struct {
	Startup    bool
	System     bool
	Debug      bool
	CppSupport bool
	LTO        bool
}

// ResolveSubsystems applies the family defaults of mcu to o. Debug helpers
// are on by default only on the V00x parts, whose SDK examples all use them.
func (o Options) ResolveSubsystems(mcu string) Subsystems {
	mcu = strings.ToLower(mcu)

	return Subsystems{
		Startup:    resolve(o.UseBuiltinStartup, true),
		System:     resolve(o.UseBuiltinSystem, true),
		Debug:      resolve(o.UseBuiltinDebug, strings.HasPrefix(mcu, "ch32v00")),
		CppSupport: resolve(o.UseCppSupport, false),
		LTO:        resolve(o.UseLTO, false),
	}
}

// SmallDataLimit returns the -msmall-data-limit value for mcu. The linker
// for the V002/V004/V006/V007 parts places no .sdata, so the limit is 0
// there. An override always wins.
func SmallDataLimit(mcu string, override *int) int {
	if override != nil {
		return *override
	}

	mcu = strings.ToLower(mcu)
	if strings.HasPrefix(mcu, "ch32v00") && !strings.HasPrefix(mcu, "ch32v003") {
		return 0
	}

	return 8
}

// SaveRestore reports whether -msave-restore is supported on mcu.
func SaveRestore(mcu string) bool {
	return !strings.HasPrefix(strings.ToLower(mcu), "ch5")
}

// CXXBaseline are the C++ flags applied to every build.
func CXXBaseline() []string {
	return []string{
		"-fno-exceptions",
		"-fno-rtti",
		"-fno-threadsafe-statics",
		"-fno-use-cxa-atexit",
	}
}
