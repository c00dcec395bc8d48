// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package framework

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/ldscript"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/plan"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/startup"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

// PackageNoneOS is the vendor SDK package every non-Arduino framework
// builds on.
const PackageNoneOS = "framework-wch-noneos-sdk"

type noneOS struct{}

func (noneOS) Name() string { return board.FrameworkNoneOS }

func (noneOS) Packages(*board.Descriptor) []string {
	return []string{PackageNoneOS}
}

func (noneOS) Apply(ctx context.Context, b *Build) error {
	if err := (bare{}).Apply(ctx, b); err != nil {
		return err
	}

	dir, err := b.Packages.Dir(PackageNoneOS)
	if err != nil {
		return err
	}

	sub := b.Subsystems
	all := plan.Include("*")

	if sub.LTO {
		b.Plan.Append(plan.LINKFLAGS, "-flto")
		b.Plan.Append(plan.CCFLAGS, "-flto")
	}

	b.Plan.AddInclude(
		filepath.Join(dir, "Core"),
		filepath.Join(dir, "Peripheral", b.Family, "inc"),
		filepath.Join(dir, "Peripheral", b.Family, "src"),
	)

	if b.Options.LDScript != "" {
		b.Plan.ReplaceLDScript(b.Options.LDScript)
	} else {
		path, err := generateLDScript(b, dir)
		if err != nil {
			return err
		}
		b.Plan.ReplaceLDScript(path)
	}

	b.Plan.BuildSources(filepath.Join(b.Options.BuildDir, "FrameworkNoneOSCore"), filepath.Join(dir, "Core"), all)

	if sub.Startup {
		macro, err := b.Board.ClassificationMacro()
		if err != nil {
			return err
		}

		file, err := startup.Select(b.BoardID, macro, b.MCU())
		if err != nil {
			return err
		}

		filter, err := plan.ParseFilter(startup.Filter(file))
		if err != nil {
			return err
		}

		src := filepath.Join(dir, "Startup")
		if err := checkStartupFile(b, src, macro, filter); err != nil {
			return err
		}

		b.Plan.AddInclude(src)
		b.Plan.BuildSources(filepath.Join(b.Options.BuildDir, "FrameworkNoneOSStartup"), src, filter)
	}

	// Clock init.
	if sub.System {
		src := filepath.Join(dir, "System", b.Family)
		b.Plan.AddInclude(src)
		b.Plan.BuildSources(filepath.Join(b.Options.BuildDir, "FrameworkNoneOSSystem"), src, all)
	}

	if sub.Debug {
		src := filepath.Join(dir, "Debug", b.Family)
		b.Plan.AddInclude(src)
		b.Plan.BuildSources(filepath.Join(b.Options.BuildDir, "FrameworkNoneOSDebug"), src, all)
	}

	if sub.CppSupport {
		// The startup files call __libc_init_array only when this is set.
		b.Plan.AddDefine("__PIO_CPP_SUPPORT__")
		b.Plan.AddLibs("stdc++")
	}

	b.Plan.BuildLibrary(
		filepath.Join(b.Options.BuildDir, "FrameworkNoneOSVariant"),
		filepath.Join(dir, "Peripheral", b.Family, "src"),
		all,
	)

	log.G(ctx).
		WithField("board", b.BoardID).
		WithField("family", b.Family).
		Debug("composed noneos-sdk")

	return nil
}

// checkStartupFile verifies that filter selects exactly one file of the
// installed SDK's startup directory.
func checkStartupFile(b *Build, dir, macro string, filter plan.Filter) error {
	entries, err := afero.ReadDir(b.Fs, dir)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	selected := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ok, err := filter.Match(e.Name())
		if err != nil {
			return err
		}
		if ok {
			selected++
		}
	}

	if selected != 1 {
		return &startup.UnmappedStartupFileError{
			Board: b.BoardID,
			Chip:  b.MCU(),
			Macro: macro,
			Dir:   dir,
		}
	}

	return nil
}

func generateLDScript(b *Build, pkgDir string) (string, error) {
	start, err := ldscript.ParseAddress(b.Board.Upload.OffsetAddress)
	if err != nil {
		return "", err
	}

	stack := b.Options.StackSize
	if stack == 0 {
		stack = ldscript.DefaultStackSize(b.MCU())
	}

	return ldscript.Generate(
		b.Fs,
		filepath.Join(pkgDir, "platformio", "ldscripts", "Link.tpl"),
		filepath.Join(b.Options.BuildDir, ldscript.DefaultFile),
		ldscript.Params{
			RAM:        b.Board.Upload.MaximumRAMSize,
			Flash:      b.Board.Upload.MaximumSize,
			FlashStart: start,
			StackSize:  stack,
		},
	)
}
