// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package toolchain selects the packages, tool names and upload and debug
// invocations used for a board.
package toolchain

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
)

// Package is a PlatformIO package requirement. Version is either a semver
// constraint or a repository URL.
type Package struct {
	Name     string
	Version  string
	Optional bool
}

// IsURL reports whether the version pins a repository rather than a range.
func (p Package) IsURL() bool {
	return strings.Contains(p.Version, "://")
}

// Check verifies that an installed version satisfies the requirement. URL
// requirements always pass.
func (p Package) Check(version string) error {
	if p.IsURL() || p.Version == "" {
		return nil
	}

	c, err := semver.NewConstraint(p.Version)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q for %s: %w", p.Version, p.Name, err)
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid version %q of %s: %w", version, p.Name, err)
	}

	if !c.Check(v) {
		return fmt.Errorf("%s %s does not satisfy %s", p.Name, version, p.Version)
	}

	return nil
}

const (
	PackageToolchain  = "toolchain-riscv"
	PackageOpenOCD    = "tool-openocd-riscv-wch"
	PackageNoneOS     = "framework-wch-noneos-sdk"
	PackageWCHISP     = "tool-wchisp"
	PackageMinichlink = "tool-minichlink"
)

// toolchainURLs pin hosts whose toolchain is not yet in the registry.
var toolchainURLs = map[string]string{
	"linux":  "https://github.com/Community-PIO-CH32V/toolchain-riscv-linux.git",
	"darwin": "https://github.com/Community-PIO-CH32V/toolchain-riscv-mac.git",
}

// noneOSBased are the frameworks that build on the vendor SDK.
var noneOSBased = []string{
	board.FrameworkNoneOS,
	board.FrameworkFreeRTOS,
	board.FrameworkHarmonyLiteOS,
	board.FrameworkRTThread,
	board.FrameworkTencentOS,
}

// frameworkPackages are the packages only needed when their framework is
// selected.
var frameworkPackages = []struct {
	framework string
	pkg       Package
}{
	{board.FrameworkFreeRTOS, Package{Name: "framework-wch-freertos", Version: "~1.10000.0"}},
	{board.FrameworkHarmonyLiteOS, Package{Name: "framework-wch-harmony-liteos", Version: "~1.10000.0"}},
	{board.FrameworkRTThread, Package{Name: "framework-wch-rtthread", Version: "~1.10000.0"}},
	{board.FrameworkTencentOS, Package{Name: "framework-wch-tencentos", Version: "~1.10000.0"}},
	{board.FrameworkArduino, Package{Name: "framework-arduino-openwch-ch32", Version: "~1.0.4"}},
	{board.FrameworkZephyr, Package{Name: "framework-zephyr", Version: "~2.30500.0"}},
}

// SelectPackages returns the packages of the platform for host (a GOOS),
// marking as required those the selected frameworks and upload protocol
// need.
func SelectPackages(host string, frameworks []string, protocol string) []Package {
	toolchain := Package{Name: PackageToolchain, Version: "~1.80200.0"}
	if url, ok := toolchainURLs[host]; ok {
		toolchain.Version = url
	}

	// The Windows build of the newer OpenOCD was withdrawn.
	openocd := Package{Name: PackageOpenOCD, Version: "~2.1000.0", Optional: true}
	if host != "windows" {
		openocd.Version = "~2.1100.0"
	}

	noneOS := Package{Name: PackageNoneOS, Version: "~2.10000.0", Optional: true}
	for _, f := range frameworks {
		if contains(noneOSBased, f) {
			noneOS.Optional = false
		}
	}

	pkgs := []Package{toolchain, noneOS}

	for _, fp := range frameworkPackages {
		p := fp.pkg
		p.Optional = !contains(frameworks, fp.framework)
		pkgs = append(pkgs, p)
	}

	pkgs = append(pkgs,
		openocd,
		Package{Name: PackageWCHISP, Version: "~0.22.0", Optional: protocol != board.ProtocolISP},
		Package{Name: PackageMinichlink, Version: "~1.0.0", Optional: protocol != board.ProtocolMinichlink},
	)

	return pkgs
}

// Required filters pkgs down to the non-optional ones.
func Required(pkgs []Package) []Package {
	var ret []Package
	for _, p := range pkgs {
		if !p.Optional {
			ret = append(ret, p)
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
