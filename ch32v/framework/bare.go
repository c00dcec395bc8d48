// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package framework

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/plan"
)

// bare holds the toolchain flags shared by every framework.
type bare struct{}

func (bare) Name() string { return Bare }

func (bare) Apply(_ context.Context, b *Build) error {
	mcu := b.MCU()
	march := "-march=" + b.Board.Build.March
	mabi := "-mabi=" + b.Board.Build.Mabi

	b.Plan.Append(plan.ASFLAGS, march, mabi)
	b.Plan.Append(plan.ASPPFLAGS, "-x", "assembler-with-cpp")
	b.Plan.Append(plan.CFLAGS, "-std=gnu99")

	ccflags := []string{
		"-Os",
		"-g",
		"-Wall",
		fmt.Sprintf("-msmall-data-limit=%d", SmallDataLimit(mcu, b.Options.SmallDataLimit)),
	}
	if SaveRestore(mcu) {
		ccflags = append(ccflags, "-msave-restore")
	}
	ccflags = append(ccflags,
		"-fmessage-length=0",
		"-fsigned-char",
		"-ffunction-sections",
		"-fdata-sections",
		"-fno-common",
		"-Wunused",
		"-Wuninitialized",
		"-Wno-comment",
		march,
		mabi,
	)
	b.Plan.Append(plan.CCFLAGS, ccflags...)

	b.Plan.Append(plan.CXXFLAGS, CXXBaseline()...)

	b.Plan.AddLibs("m")

	b.Plan.Append(plan.LINKFLAGS,
		"-Os",
		march,
		mabi,
		"-Wl,-gc-sections",
		"--specs=nano.specs",
		"--specs=nosys.specs",
		"-nostartfiles",
		fmt.Sprintf(`-Wl,-Map="%s"`, filepath.Join(b.Options.BuildDir, mapName(b.Options))),
	)

	// The preprocessed assembler shares the C flags, minus the trailing
	// -march/-mabi already in ASFLAGS.
	b.Plan.Append(plan.ASPPFLAGS, ccflags[:len(ccflags)-2]...)

	return nil
}

func mapName(o Options) string {
	if o.ProjectDir != "" {
		return filepath.Base(o.ProjectDir) + ".map"
	}
	return o.ProgName + ".map"
}
