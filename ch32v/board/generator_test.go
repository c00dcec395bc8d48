// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package board

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/chip"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

func testContext() (context.Context, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	return log.WithLogger(context.Background(), logrus.NewEntry(logger)), hook
}

func generic(t *testing.T, name string) Board {
	t.Helper()

	info, err := chip.Lookup(name)
	require.NoError(t, err)

	return Generic(info)
}

func TestDescribeGolden(t *testing.T) {
	ctx, _ := testContext()

	g, err := NewGenerator()
	require.NoError(t, err)

	d, err := g.Describe(ctx, generic(t, "CH32V307VCT6"))
	require.NoError(t, err)

	got, err := d.Encode()
	require.NoError(t, err)

	want, err := os.ReadFile("testdata/genericCH32V307VCT6.json")
	require.NoError(t, err)

	assert.Equal(t, string(want), string(got))
}

func TestDescribeCH5(t *testing.T) {
	ctx, _ := testContext()

	g, err := NewGenerator()
	require.NoError(t, err)

	d, err := g.Describe(ctx, generic(t, "CH582F"))
	require.NoError(t, err)

	assert.Equal(t, "ch58x", d.Build.Series)
	assert.Equal(t, "20000000L", d.Build.FCPU)
	assert.Equal(t, "-DCH58 -DCH58X -DCH582", d.Build.ExtraFlags)
	assert.Equal(t, "CH58Xxx.svd", d.Debug.SVDPath)
	assert.Equal(t, []string{FrameworkNoneOS, FrameworkFreeRTOS, FrameworkRTThread}, d.Frameworks)
	assert.Empty(t, d.Build.Core)
	assert.Equal(t, (480)*1024, d.Upload.MaximumSize)
}

func TestFrameworkAvailability(t *testing.T) {
	for _, info := range chip.Database() {
		frameworks := Frameworks(info)
		mcu := info.Lower()

		assert.Equal(t, FrameworkNoneOS, frameworks[0], mcu)

		if strings.HasPrefix(mcu, "ch32v00") {
			for _, rtos := range rtosFrameworks {
				assert.NotContains(t, frameworks, rtos, mcu)
			}
		}

		if strings.HasPrefix(mcu, "ch32v30") {
			assert.Subset(t, frameworks, rtosFrameworks, mcu)
		}
	}
}

func TestKnownBoardPatches(t *testing.T) {
	ctx, _ := testContext()

	g, err := NewGenerator(WithBoards(KnownBoards()...))
	require.NoError(t, err)

	results, err := g.Plan(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)

	evt := results[0].Descriptor
	assert.Equal(t, "CH32V003F4P6-EVT-R0", evt.Name)
	assert.Equal(t, "https://www.aliexpress.com/item/1005004895791296.html", evt.URL)
	assert.True(t, evt.HasFramework(FrameworkZephyr))
	assert.True(t, evt.HasFramework(FrameworkArduino))
	require.NotNil(t, evt.Build.Zephyr)
	assert.Equal(t, "ch32v003evt", evt.Build.Zephyr.Variant)
	assert.Equal(t, "CH32V00x/CH32V003F4", evt.Build.Variant)

	assert.Equal(t, "SCDZ", results[2].Descriptor.Vendor)
	assert.Equal(t, "boards/ch32v307_evt.json", results[2].Path)
}

func TestPatchesApplyLast(t *testing.T) {
	ctx, _ := testContext()

	b := generic(t, "CH32V203C8T6")
	b.Patches = []Patch{
		PatchExtraFlags("-DOVERRIDDEN"),
		PatchUploadProtocol(ProtocolCustom),
		PatchOffsetAddress("0x08000000"),
		PatchImageOffset("0x1000"),
		PatchName("Custom"),
		PatchOpenOCDTarget("wch_riscv"),
	}

	g, err := NewGenerator()
	require.NoError(t, err)

	d, err := g.Describe(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, "-DOVERRIDDEN", d.Build.ExtraFlags)
	assert.Equal(t, ProtocolCustom, d.Upload.Protocol)
	assert.Contains(t, d.Upload.Protocols, ProtocolCustom)
	assert.Equal(t, "0x08000000", d.Upload.OffsetAddress)
	assert.Equal(t, "0x1000", d.Upload.ImageOffset)
	assert.Equal(t, "Custom", d.Name)
	assert.Equal(t, "wch_riscv", d.Debug.OpenOCDTarget)
	assert.Empty(t, d.Debug.OpenOCDConfig)
}

func TestAmbiguousArduinoVariant(t *testing.T) {
	ctx, hook := testContext()

	g, err := NewGenerator(WithArduinoVariants(
		"CH32V20x/CH32V203C8",
		"CH32V20x_alt/CH32V203C8T6",
	))
	require.NoError(t, err)

	d, err := g.Describe(ctx, generic(t, "CH32V203C8T6"))
	require.NoError(t, err)

	assert.True(t, d.HasFramework(FrameworkArduino))
	assert.Empty(t, d.Build.Variant)
	assert.Nil(t, d.Build.Arduino)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.Contains(e.Message, errs.ErrMultipleVariantMatches.Error()) {
			warned = true
		}
	}
	assert.True(t, warned, "expected a multiple variant warning")
}

func TestWriteIsIdempotent(t *testing.T) {
	ctx, _ := testContext()
	fs := afero.NewMemMapFs()

	g, err := NewGenerator(WithFs(fs), WithOutputDir("/boards"))
	require.NoError(t, err)

	first, err := g.Write(ctx)
	require.NoError(t, err)
	require.Len(t, first, len(chip.Database())+len(KnownBoards()))

	snapshot := map[string][]byte{}
	for _, p := range first {
		snapshot[p], err = afero.ReadFile(fs, p)
		require.NoError(t, err)
	}

	_, err = g.Write(ctx)
	require.NoError(t, err)

	for p, want := range snapshot {
		got, err := afero.ReadFile(fs, p)
		require.NoError(t, err)
		assert.Equal(t, want, got, p)
	}

	drifts, err := g.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestWriteUnknownChipWritesNothing(t *testing.T) {
	ctx, _ := testContext()
	fs := afero.NewMemMapFs()

	boards := append(GenericBoards()[:3], Board{
		ID:   "mystery",
		Name: "Mystery",
		Chip: chip.Info{Name: "CH99X", FlashKB: 1, SRAMKB: 1, FreqMHz: 1},
	})

	g, err := NewGenerator(WithFs(fs), WithOutputDir("/boards"), WithBoards(boards...))
	require.NoError(t, err)

	_, err = g.Write(ctx)
	require.Error(t, err)
	assert.True(t, errs.IsUnknownChipError(err))
	assert.True(t, errs.IsFatal(err))
	assert.Contains(t, err.Error(), "mystery")

	exists, err := afero.DirExists(fs, "/boards")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCheckReportsDrift(t *testing.T) {
	ctx, _ := testContext()
	fs := afero.NewMemMapFs()

	g, err := NewGenerator(WithFs(fs), WithOutputDir("/boards"), WithBoards(KnownBoards()[2]))
	require.NoError(t, err)

	_, err = g.Write(ctx)
	require.NoError(t, err)

	raw, err := afero.ReadFile(fs, "/boards/ch32v307_evt.json")
	require.NoError(t, err)
	edited := strings.Replace(string(raw), `"vendor": "SCDZ"`, `"vendor": "Someone"`, 1)
	require.NoError(t, afero.WriteFile(fs, "/boards/ch32v307_evt.json", []byte(edited), 0o644))

	drifts, err := g.Check(ctx)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Contains(t, drifts[0].Diff, `-  "vendor": "Someone"`)
	assert.Contains(t, drifts[0].Diff, `+  "vendor": "SCDZ"`)
}

func TestMacros(t *testing.T) {
	d := &Descriptor{Build: Build{ExtraFlags: "-DCH32V203C8 -DCH32V20X -DCH32V203 -DCH32V20x_D6 -Os -DF_CPU=1"}}

	macros, err := d.Macros()
	require.NoError(t, err)
	assert.Equal(t, []string{"CH32V203C8", "CH32V20X", "CH32V203", "CH32V20x_D6", "F_CPU=1"}, macros)

	macro, err := d.ClassificationMacro()
	require.NoError(t, err)
	assert.Equal(t, "CH32V20x_D6", macro)
}
