// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package version reports the build of the ch32v binary. The values are
// injected by the release build with
//
//	-ldflags "-X github.com/Community-PIO-CH32V/platform-ch32v/internal/version.version=..."
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	version   = ""
	commit    = ""
	buildTime = ""
)

// Version is the release of the binary, or the module version recorded by
// `go install` when no release was injected.
func Version() string {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "(devel)"
}

// Commit is the VCS revision the binary was built from, if known.
func Commit() string {
	if commit != "" {
		return commit
	}

	return setting("vcs.revision", "unknown")
}

// BuildTime is the time the binary was built, or committed when only VCS
// information is available.
func BuildTime() string {
	if buildTime != "" {
		return buildTime
	}

	return setting("vcs.time", "unknown")
}

// String is a one line summary of the build, ending in a newline.
func String() string {
	return fmt.Sprintf("%s (%s) %s %s/%s %s\n",
		Version(),
		Commit(),
		runtime.Version(),
		runtime.GOOS,
		runtime.GOARCH,
		BuildTime(),
	)
}

func setting(key, fallback string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fallback
	}

	for _, s := range info.Settings {
		if s.Key == key && s.Value != "" {
			return s.Value
		}
	}

	return fallback
}
