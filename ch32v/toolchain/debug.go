// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package toolchain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
)

// DebugServer is the GDB server started for a debug session.
type DebugServer struct {
	Package    string
	Executable string
	Arguments  []string
}

// DebugTool is a PlatformIO debug tool definition.
type DebugTool struct {
	InitCmds []string
	Server   DebugServer
	Onboard  bool
}

// debugProbes are the probes given a default definition.
var debugProbes = []string{board.ProtocolWCHLink}

func resetCmds() []string {
	return []string{
		"define pio_reset_halt_target",
		"   load",
		"   monitor reset halt",
		"end",
		"define pio_reset_run_target",
		"   load",
		"   monitor reset",
		"end",
	}
}

// DefaultDebugTools returns the debug tools of a board. openocdDir is the
// tool-openocd-riscv-wch package directory and may be empty.
func DefaultDebugTools(boardID string, d *board.Descriptor, openocdDir string) (map[string]DebugTool, error) {
	tools := map[string]DebugTool{}

	for _, probe := range debugProbes {
		var args []string

		// Without the package, openocd falls back to its own search paths.
		if openocdDir != "" {
			args = append(args,
				"-s", filepath.Join(openocdDir, "bin"),
				"-s", filepath.Join(openocdDir, "scripts"),
			)
		}

		switch {
		case d.Debug.OpenOCDConfig != "":
			args = append(args, "-f", d.Debug.OpenOCDConfig)
		case d.Debug.OpenOCDTarget != "":
			// Probes without a board config are FTDI based.
			args = append(args,
				"-f", fmt.Sprintf("interface/ftdi/%s.cfg", probe),
				"-f", fmt.Sprintf("target/%s.cfg", d.Debug.OpenOCDTarget),
			)
		default:
			return nil, fmt.Errorf("missing openocd target configuration for %s", boardID)
		}

		tools[probe] = DebugTool{
			InitCmds: append(resetCmds(),
				"set mem inaccessible-by-default off",
				"set arch riscv:rv32",
				"set remotetimeout unlimited",
				"target extended-remote $DEBUG_PORT",
				"$INIT_BREAK",
				"$LOAD_CMDS",
			),
			Server: DebugServer{
				Package:    PackageOpenOCD,
				Executable: "bin/openocd",
				Arguments:  args,
			},
			Onboard: contains(d.Debug.OnboardTools, probe),
		}
	}

	return tools, nil
}

// DebugSpeedArgs returns server with the adapter speed set, when the server
// is OpenOCD and speed is not empty.
func DebugSpeedArgs(server DebugServer, speed string) DebugServer {
	if speed == "" || !strings.Contains(server.Executable, "openocd") {
		return server
	}

	server.Arguments = append(append([]string{}, server.Arguments...), "-c", "adapter speed "+speed)
	return server
}
