// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package framework

import (
	"context"
	"path/filepath"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/plan"
)

// rtos is a scheduler port layered on the NoneOS SDK. Each package holds one
// directory per family named <prefix><family>, e.g. FreeRTOS_ch32v30x.
type rtos struct {
	name     string
	pkg      string
	prefix   string
	includes []string
	define   string
	buildDir string
	excludes []string
}

var rtosLayers = []rtos{
	{
		name:   board.FrameworkFreeRTOS,
		pkg:    "framework-wch-freertos",
		prefix: "FreeRTOS_",
		includes: []string{
			"include",
			"portable/Common",
			"portable/GCC/RISC-V",
			"portable/GCC/RISC-V/chip_specific_extensions/RV32I_PFIC_no_extensions",
			"portable/MemMang",
			"",
		},
		define:   "__PIO_BUILD_FREERTOS__",
		buildDir: "FrameworkFreeRTOSCore",
		excludes: []string{"portable/Common/mpu_wrappers.c"},
	},
	{
		name:   board.FrameworkHarmonyLiteOS,
		pkg:    "framework-wch-harmony-liteos",
		prefix: "LiteOS_",
		includes: []string{
			"components/backtrace",
			"components/cpup",
			"components/power",
			"kernel/arch/include",
			"kernel/arch/risc-v/V4A/gcc",
			"kernel/include",
			"kernel/src",
			"kernel/src/mm",
			"utils/internal",
			"utils",
			"third_party/bounds_checking_function/include",
			"third_party/bounds_checking_function/src",
		},
		define:   "__PIO_BUILD_HARMONY_LITEOS__",
		buildDir: "FrameworkHarmonyLiteOSCore",
		excludes: []string{
			"components/cppsupport",
			"components/exchook",
			"components/fs",
			"components/net",
			"third_party/cmsis",
			"kal",
			"testsuits",
		},
	},
	{
		name:   board.FrameworkRTThread,
		pkg:    "framework-wch-rtthread",
		prefix: "rtthread_",
		includes: []string{
			"drivers",
			"include",
			"include/libc",
			"libcpu/risc-v",
			"libcpu/risc-v/common",
			"src",
			"",
			"components/drivers/include",
			"components/drivers/misc",
			"components/drivers/serial",
			"components/finsh",
		},
		define:   "__PIO_BUILD_RT_THREAD__",
		buildDir: "FrameworkRTThreadCore",
	},
	{
		name:   board.FrameworkTencentOS,
		pkg:    "framework-wch-tencentos",
		prefix: "TencentOS_Tiny_",
		includes: []string{
			"arch/risc-v/common/include",
			"arch/risc-v/common",
			"arch/risc-v/rv32/gcc",
			"kernel/core/include",
			"kernel/core",
			"kernel/hal/include",
			"kernel/hal",
			"kernel/pm/include",
			"kernel/pm",
			"TOS_CONFIG",
		},
		define:   "__PIO_BUILD_TENCENT_OS__",
		buildDir: "FrameworkTencentCore",
	},
}

func (r rtos) Name() string { return r.name }

func (r rtos) Packages(*board.Descriptor) []string {
	return []string{PackageNoneOS, r.pkg}
}

func (r rtos) Apply(ctx context.Context, b *Build) error {
	if err := (noneOS{}).Apply(ctx, b); err != nil {
		return err
	}

	dir, err := b.Packages.Dir(r.pkg)
	if err != nil {
		return err
	}

	root := filepath.Join(dir, r.prefix+b.Family)

	for _, inc := range r.includes {
		b.Plan.AddInclude(filepath.Join(root, filepath.FromSlash(inc)))
	}

	// Kernel configuration headers live with the application.
	b.Plan.AddInclude(b.Options.ProjectSrcDir)

	// The startup code sets up mstatus differently under a scheduler.
	b.Plan.AddDefine(r.define)

	b.Plan.BuildSources(
		filepath.Join(b.Options.BuildDir, r.buildDir),
		root,
		plan.Include("*").Exclude(r.excludes...),
	)

	return nil
}
