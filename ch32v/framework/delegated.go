// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package framework

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

// arduinoCores maps build.core to the package providing it.
var arduinoCores = map[string]string{
	"ch32v003":               "framework-arduinoch32v003",
	"ch32v":                  "framework-arduinoch32v",
	board.ArduinoCoreOpenWCH: "framework-arduino-openwch-ch32",
}

// ArduinoPackage returns the package of an Arduino core.
func ArduinoPackage(core string) (string, bool) {
	pkg, ok := arduinoCores[core]
	return pkg, ok
}

// arduino hands the build over to the core's own PlatformIO script.
type arduino struct{}

func (arduino) Name() string { return board.FrameworkArduino }

func (arduino) Packages(d *board.Descriptor) []string {
	if pkg, ok := ArduinoPackage(d.Build.Core); ok {
		return []string{pkg}
	}
	return nil
}

func (arduino) Apply(_ context.Context, b *Build) error {
	pkg, ok := ArduinoPackage(b.Board.Build.Core)
	if !ok {
		return fmt.Errorf("%w: no arduino core for %s", errs.ErrUnknownFramework, b.MCU())
	}

	return delegate(b, pkg, "tools", "platformio-build.py")
}

// PackageZephyr holds the Zephyr RTOS and its PlatformIO integration.
const PackageZephyr = "framework-zephyr"

// zephyr hands the build over to the Zephyr package.
type zephyr struct{}

func (zephyr) Name() string { return board.FrameworkZephyr }

func (zephyr) Packages(*board.Descriptor) []string {
	return []string{PackageZephyr}
}

func (zephyr) Apply(_ context.Context, b *Build) error {
	if b.Board.Build.Zephyr == nil || b.Board.Build.Zephyr.Variant == "" {
		return fmt.Errorf("board %s has no zephyr variant", b.BoardID)
	}

	return delegate(b, PackageZephyr, "scripts", "platformio", "platformio-build.py")
}

func delegate(b *Build, pkg string, script ...string) error {
	dir, err := b.Packages.Dir(pkg)
	if err != nil {
		return err
	}

	path := filepath.Join(append([]string{dir}, script...)...)

	ok, err := afero.Exists(b.Fs, path)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("missing PlatformIO build script %s", path)
	}

	b.Plan.AddScript(path)

	return nil
}
