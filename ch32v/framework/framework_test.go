// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package framework

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/chip"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/packages"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/plan"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/startup"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

const pkgDir = "/pio/packages"

func descriptor(t *testing.T, name string) *board.Descriptor {
	t.Helper()

	info, err := chip.Lookup(name)
	require.NoError(t, err)

	g, err := board.NewGenerator()
	require.NoError(t, err)

	d, err := g.Describe(context.Background(), board.Generic(info))
	require.NoError(t, err)

	return d
}

func newComposer(t *testing.T, installed ...string) (*Composer, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	for _, pkg := range installed {
		require.NoError(t, fs.MkdirAll(pkgDir+"/"+pkg, 0o755))
	}

	if slices.Contains(installed, PackageNoneOS) {
		for _, f := range startup.Files() {
			require.NoError(t, afero.WriteFile(fs, pkgDir+"/"+PackageNoneOS+"/Startup/"+f, nil, 0o644))
		}
	}

	c, err := NewComposer(
		WithFs(fs),
		WithPackages(&packages.Resolver{Fs: fs, Root: pkgDir}),
	)
	require.NoError(t, err)

	return c, fs
}

func compose(t *testing.T, c *Composer, d *board.Descriptor, framework string, opts Options) *plan.Plan {
	t.Helper()

	if opts.Host == "" {
		opts.Host = "linux"
	}
	if opts.BuildDir == "" {
		opts.BuildDir = "/build"
	}

	p, err := c.Compose(context.Background(), "test", d, framework, opts)
	require.NoError(t, err)

	return p
}

func TestBareFlags(t *testing.T) {
	c, _ := newComposer(t)
	p := compose(t, c, descriptor(t, "CH32V307VCT6"), Bare, Options{ProjectDir: "/home/dev/blinky"})

	wantCC := []string{
		"-Os", "-g", "-Wall",
		"-msmall-data-limit=8",
		"-msave-restore",
		"-fmessage-length=0", "-fsigned-char",
		"-ffunction-sections", "-fdata-sections", "-fno-common",
		"-Wunused", "-Wuninitialized", "-Wno-comment",
		"-march=rv32imacxw", "-mabi=ilp32",
	}
	if diff := cmp.Diff(wantCC, p.Flags(plan.CCFLAGS)); diff != "" {
		t.Errorf("CCFLAGS mismatch (-want +got):\n%s", diff)
	}

	wantASPP := append([]string{"-x", "assembler-with-cpp"}, wantCC[:len(wantCC)-2]...)
	if diff := cmp.Diff(wantASPP, p.Flags(plan.ASPPFLAGS)); diff != "" {
		t.Errorf("ASPPFLAGS mismatch (-want +got):\n%s", diff)
	}

	wantLink := []string{
		"-Os", "-march=rv32imacxw", "-mabi=ilp32",
		"-Wl,-gc-sections", "--specs=nano.specs", "--specs=nosys.specs",
		"-nostartfiles",
		`-Wl,-Map="/build/blinky.map"`,
	}
	if diff := cmp.Diff(wantLink, p.Flags(plan.LINKFLAGS)); diff != "" {
		t.Errorf("LINKFLAGS mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(CXXBaseline(), p.Flags(plan.CXXFLAGS)); diff != "" {
		t.Errorf("CXXFLAGS mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"m"}, p.Libs)
	assert.True(t, p.HasDefine("F_CPU"))
	assert.True(t, p.HasDefine("CH32V30x_D8C"))
	assert.Empty(t, p.Sources)
}

func TestSmallDataAndSaveRestore(t *testing.T) {
	c, _ := newComposer(t)

	tests := []struct {
		chip        string
		override    *int
		wantLimit   string
		saveRestore bool
	}{
		{"CH32V003F4P6", nil, "-msmall-data-limit=8", true},
		{"CH32V006K8U6", nil, "-msmall-data-limit=0", true},
		{"CH32V002F4P6", Int(4), "-msmall-data-limit=4", true},
		{"CH32V003J4M6", Int(0), "-msmall-data-limit=0", true},
		{"CH582F", nil, "-msmall-data-limit=8", false},
		{"CH569W", nil, "-msmall-data-limit=8", false},
	}

	for _, tt := range tests {
		t.Run(tt.chip, func(t *testing.T) {
			p := compose(t, c, descriptor(t, tt.chip), Bare, Options{SmallDataLimit: tt.override})
			flags := p.Flags(plan.CCFLAGS)

			assert.Contains(t, flags, tt.wantLimit)
			if tt.saveRestore {
				assert.Contains(t, flags, "-msave-restore")
			} else {
				assert.NotContains(t, flags, "-msave-restore")
			}
		})
	}
}

func TestHostNarrowingLeavesDescriptor(t *testing.T) {
	c, _ := newComposer(t)
	d := descriptor(t, "CH32V203C8T6")

	p := compose(t, c, d, Bare, Options{Host: "darwin"})

	assert.Contains(t, p.Flags(plan.CCFLAGS), "-march=rv32imac")
	assert.Contains(t, p.Flags(plan.ASFLAGS), "-march=rv32imac")
	assert.Equal(t, "rv32imacxw", d.Build.March)

	p = compose(t, c, d, Bare, Options{Host: "linux"})
	assert.Contains(t, p.Flags(plan.CCFLAGS), "-march=rv32imacxw")
}

func TestNoneOS(t *testing.T) {
	c, fs := newComposer(t, PackageNoneOS)
	sdk := pkgDir + "/" + PackageNoneOS

	p := compose(t, c, descriptor(t, "CH32V307VCT6"), board.FrameworkNoneOS, Options{})

	wantInc := []string{
		sdk + "/Core",
		sdk + "/Peripheral/ch32v30x/inc",
		sdk + "/Peripheral/ch32v30x/src",
		sdk + "/Startup",
		sdk + "/System/ch32v30x",
	}
	if diff := cmp.Diff(wantInc, p.CPPPath); diff != "" {
		t.Errorf("CPPPATH mismatch (-want +got):\n%s", diff)
	}

	wantSources := []plan.SourceSet{
		{BuildDir: "/build/FrameworkNoneOSCore", SourceDir: sdk + "/Core", Filter: plan.Include("*")},
		{BuildDir: "/build/FrameworkNoneOSStartup", SourceDir: sdk + "/Startup", Filter: plan.Filter{}.Exclude("*").Include("startup_ch32v30x_D8C.S")},
		{BuildDir: "/build/FrameworkNoneOSSystem", SourceDir: sdk + "/System/ch32v30x", Filter: plan.Include("*")},
	}
	if diff := cmp.Diff(wantSources, p.Sources); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, p.Libraries, 1)
	assert.Equal(t, "/build/FrameworkNoneOSVariant", p.Libraries[0].BuildDir)

	assert.Equal(t, "/build/Link.ld", p.LDScript)
	raw, err := afero.ReadFile(fs, "/build/Link.ld")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "LENGTH = 256K")
	assert.Contains(t, string(raw), "PROVIDE( _eusrstack = 0x20010000 );")
	assert.Contains(t, string(raw), "__stack_size = 2048;")

	assert.NotContains(t, p.Flags(plan.CCFLAGS), "-flto")
}

func TestNoneOSMissingStartupFile(t *testing.T) {
	c, fs := newComposer(t, PackageNoneOS)
	sdk := pkgDir + "/" + PackageNoneOS

	require.NoError(t, fs.Remove(sdk+"/Startup/startup_ch32v30x_D8C.S"))

	_, err := c.Compose(context.Background(), "ch32v307_evt", descriptor(t, "CH32V307VCT6"), board.FrameworkNoneOS, Options{BuildDir: "/build"})
	require.Error(t, err)
	assert.True(t, errs.IsUnmappedStartupFileError(err))

	var serr *startup.UnmappedStartupFileError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "ch32v307_evt", serr.Board)
	assert.Equal(t, sdk+"/Startup", serr.Dir)

	// Without the built-in startup nothing is checked.
	p := compose(t, c, descriptor(t, "CH32V307VCT6"), board.FrameworkNoneOS, Options{UseBuiltinStartup: Bool(false)})
	assert.NotContains(t, p.CPPPath, sdk+"/Startup")
}

func TestNoneOSFamilyDefaults(t *testing.T) {
	c, fs := newComposer(t, PackageNoneOS)
	sdk := pkgDir + "/" + PackageNoneOS

	require.NoError(t, afero.WriteFile(fs, sdk+"/platformio/ldscripts/Link.tpl", []byte("#ram #stack_size\n"), 0o644))

	p := compose(t, c, descriptor(t, "CH32V003F4P6"), board.FrameworkNoneOS, Options{})

	assert.Contains(t, p.CPPPath, sdk+"/Debug/ch32v00x")

	raw, err := afero.ReadFile(fs, "/build/Link.ld")
	require.NoError(t, err)
	assert.Equal(t, "2K 256\n", string(raw))
}

func TestNoneOSOptions(t *testing.T) {
	c, fs := newComposer(t, PackageNoneOS)

	p := compose(t, c, descriptor(t, "CH32V103C8T6"), board.FrameworkNoneOS, Options{
		UseBuiltinStartup: Bool(false),
		UseBuiltinSystem:  Bool(false),
		UseBuiltinDebug:   Bool(true),
		UseCppSupport:     Bool(true),
		UseLTO:            Bool(true),
		LDScript:          "/project/custom.ld",
	})

	assert.Contains(t, p.Flags(plan.CCFLAGS), "-flto")
	assert.Contains(t, p.Flags(plan.LINKFLAGS), "-flto")
	assert.True(t, p.HasDefine("__PIO_CPP_SUPPORT__"))
	assert.Contains(t, p.Libs, "stdc++")
	assert.Equal(t, "/project/custom.ld", p.LDScript)

	var dirs []string
	for _, s := range p.Sources {
		dirs = append(dirs, s.BuildDir)
	}
	assert.Equal(t, []string{"/build/FrameworkNoneOSCore", "/build/FrameworkNoneOSDebug"}, dirs)

	exists, err := afero.Exists(fs, "/build/Link.ld")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestNoneOSMissingPackage(t *testing.T) {
	c, _ := newComposer(t)

	_, err := c.Compose(context.Background(), "test", descriptor(t, "CH32V307VCT6"), board.FrameworkNoneOS, Options{BuildDir: "/build"})
	require.Error(t, err)

	var merr *packages.MissingPackageError
	assert.True(t, errors.As(err, &merr))
	assert.True(t, errs.IsFatal(err))
}

func TestRTOSLayers(t *testing.T) {
	c, _ := newComposer(t,
		PackageNoneOS,
		"framework-wch-freertos",
		"framework-wch-harmony-liteos",
		"framework-wch-rtthread",
		"framework-wch-tencentos",
	)
	d := descriptor(t, "CH32V307VCT6")

	tests := []struct {
		framework string
		include   string
		define    string
		buildDir  string
		filter    string
	}{
		{
			board.FrameworkFreeRTOS,
			pkgDir + "/framework-wch-freertos/FreeRTOS_ch32v30x/portable/MemMang",
			"__PIO_BUILD_FREERTOS__",
			"/build/FrameworkFreeRTOSCore",
			"+<*> -<portable/Common/mpu_wrappers.c>",
		},
		{
			board.FrameworkHarmonyLiteOS,
			pkgDir + "/framework-wch-harmony-liteos/LiteOS_ch32v30x/kernel/arch/risc-v/V4A/gcc",
			"__PIO_BUILD_HARMONY_LITEOS__",
			"/build/FrameworkHarmonyLiteOSCore",
			"+<*> -<components/cppsupport> -<components/exchook> -<components/fs> -<components/net> -<third_party/cmsis> -<kal> -<testsuits>",
		},
		{
			board.FrameworkRTThread,
			pkgDir + "/framework-wch-rtthread/rtthread_ch32v30x/components/finsh",
			"__PIO_BUILD_RT_THREAD__",
			"/build/FrameworkRTThreadCore",
			"+<*>",
		},
		{
			board.FrameworkTencentOS,
			pkgDir + "/framework-wch-tencentos/TencentOS_Tiny_ch32v30x/TOS_CONFIG",
			"__PIO_BUILD_TENCENT_OS__",
			"/build/FrameworkTencentCore",
			"+<*>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.framework, func(t *testing.T) {
			p := compose(t, c, d, tt.framework, Options{ProjectSrcDir: "/project/src"})

			assert.Contains(t, p.CPPPath, tt.include)
			assert.Contains(t, p.CPPPath, "/project/src")
			assert.True(t, p.HasDefine(tt.define))

			// NoneOS comes first.
			require.NotEmpty(t, p.Sources)
			assert.Equal(t, "/build/FrameworkNoneOSCore", p.Sources[0].BuildDir)

			last := p.Sources[len(p.Sources)-1]
			assert.Equal(t, tt.buildDir, last.BuildDir)
			assert.Equal(t, tt.filter, last.Filter.String())
		})
	}
}

func TestRTOSMissingPackage(t *testing.T) {
	c, _ := newComposer(t, PackageNoneOS)

	_, err := c.Compose(context.Background(), "test", descriptor(t, "CH32V307VCT6"), board.FrameworkFreeRTOS, Options{BuildDir: "/build"})
	assert.True(t, errs.IsMissingFrameworkPackageError(err))
	assert.ErrorContains(t, err, "framework-wch-freertos")
}

func TestArduino(t *testing.T) {
	c, fs := newComposer(t, "framework-arduino-openwch-ch32")
	d := descriptor(t, "CH32V203C8T6")

	_, err := c.Compose(context.Background(), "test", d, board.FrameworkArduino, Options{})
	assert.ErrorContains(t, err, "missing PlatformIO build script")

	script := pkgDir + "/framework-arduino-openwch-ch32/tools/platformio-build.py"
	require.NoError(t, afero.WriteFile(fs, script, []byte("# build"), 0o644))

	p := compose(t, c, d, board.FrameworkArduino, Options{})
	assert.Equal(t, []string{script}, p.Scripts)
	assert.Empty(t, p.Flags(plan.CCFLAGS))
}

func TestArduinoUnknownCore(t *testing.T) {
	c, _ := newComposer(t)
	d := descriptor(t, "CH32V208WBU6")

	_, err := c.Compose(context.Background(), "test", d, board.FrameworkArduino, Options{})
	assert.ErrorIs(t, err, errs.ErrUnknownFramework)
}

func TestZephyr(t *testing.T) {
	c, fs := newComposer(t, PackageZephyr)
	script := pkgDir + "/" + PackageZephyr + "/scripts/platformio/platformio-build.py"
	require.NoError(t, afero.WriteFile(fs, script, []byte("# build"), 0o644))

	g, err := board.NewGenerator(board.WithBoards(board.KnownBoards()...))
	require.NoError(t, err)
	results, err := g.Plan(context.Background())
	require.NoError(t, err)

	p := compose(t, c, results[0].Descriptor, board.FrameworkZephyr, Options{})
	assert.Equal(t, []string{script}, p.Scripts)

	_, err = c.Compose(context.Background(), "generic", descriptor(t, "CH32V003F4P6"), board.FrameworkZephyr, Options{})
	assert.ErrorContains(t, err, "no zephyr variant")
}

func TestLookup(t *testing.T) {
	f, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, Bare, f.Name())

	_, err = Lookup("mbed")
	assert.ErrorIs(t, err, errs.ErrUnknownFramework)

	assert.Equal(t, []string{
		"_bare",
		"arduino",
		"freertos",
		"harmony-liteos",
		"noneos-sdk",
		"rt-thread",
		"tencent-os",
		"zephyr",
	}, Names())
}

func TestRequiredPackages(t *testing.T) {
	d := descriptor(t, "CH32V307VCT6")

	tests := []struct {
		framework string
		want      []string
	}{
		{Bare, nil},
		{board.FrameworkNoneOS, []string{PackageNoneOS}},
		{board.FrameworkRTThread, []string{PackageNoneOS, "framework-wch-rtthread"}},
		{board.FrameworkArduino, []string{"framework-arduino-openwch-ch32"}},
		{board.FrameworkZephyr, []string{PackageZephyr}},
	}

	for _, tt := range tests {
		got, err := RequiredPackages(d, tt.framework)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.framework)
	}
}
