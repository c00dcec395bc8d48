// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package toolchain

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

// UploadOptions tune the upload command.
type UploadOptions struct {
	// Verbose raises the OpenOCD debug level.
	Verbose bool

	// OpenOCDDir is the tool-openocd-riscv-wch package directory.
	OpenOCDDir string

	// ToolDir is the package directory of wchisp or minichlink.
	ToolDir string

	// Command is the caller-supplied command of the custom protocol. The
	// token $SOURCE is replaced by the firmware path.
	Command string
}

// UploadCommand returns the command flashing firmware onto boardID. An
// unrecognized protocol is logged and yields a nil command, since the build
// itself is still usable.
func UploadCommand(ctx context.Context, boardID string, d *board.Descriptor, protocol, firmware string, opts UploadOptions) (*Command, error) {
	if protocol == "" {
		protocol = d.Upload.Protocol
	}

	switch protocol {
	case board.ProtocolWCHLink:
		tools, err := DefaultDebugTools(boardID, d, opts.OpenOCDDir)
		if err != nil {
			return nil, err
		}

		level := 1
		if opts.Verbose {
			level = 2
		}

		// The ELF already carries its link addresses, so only the extra
		// image offset is passed on.
		offset := d.Upload.ImageOffset
		if offset == "" {
			offset = "0x0"
		}

		server := tools[protocol].Server

		args := []string{"-c", fmt.Sprintf("debug_level %d", level)}
		args = append(args, server.Arguments...)
		args = append(args,
			"-c", "init",
			"-c", "halt",
			"-c", fmt.Sprintf("load_image {%s} %s elf", firmware, offset),
			"-c", "reset",
			"-c", "shutdown",
		)

		return &Command{
			Tool:       "openocd",
			Args:       args,
			SearchPath: searchPath(opts.OpenOCDDir),
		}, nil

	case board.ProtocolISP:
		return &Command{
			Tool:       "wchisp",
			Args:       []string{"flash", firmware},
			SearchPath: searchPath(opts.ToolDir),
		}, nil

	case board.ProtocolMinichlink:
		// Write, then boot from halt.
		return &Command{
			Tool:       "minichlink",
			Args:       []string{"-w", firmware, "flash", "-b"},
			SearchPath: searchPath(opts.ToolDir),
		}, nil

	case board.ProtocolCustom:
		if strings.TrimSpace(opts.Command) == "" {
			return nil, fmt.Errorf("custom upload protocol requires a command")
		}

		args, err := shellwords.Parse(opts.Command)
		if err != nil {
			return nil, fmt.Errorf("could not parse custom upload command: %w", err)
		}

		for i, a := range args {
			args[i] = strings.ReplaceAll(a, "$SOURCE", firmware)
		}

		return &Command{Tool: args[0], Args: args[1:]}, nil
	}

	log.G(ctx).
		WithField("board", boardID).
		Warnf("%s: %s, skipping upload", errs.ErrUnsupportedUploadProtocol, protocol)

	return nil, nil
}

func searchPath(dir string) []string {
	if dir == "" {
		return nil
	}
	return []string{filepath.Join(dir, "bin"), dir}
}

// ISPAction is a maintenance subcommand of wchisp.
type ISPAction string

const (
	ISPInfo            ISPAction = "info"
	ISPConfigUnprotect ISPAction = "config unprotect"
	ISPConfigReset     ISPAction = "config reset"
	ISPErase           ISPAction = "erase"
	ISPReset           ISPAction = "reset"
)

// ISPActions lists every maintenance subcommand.
func ISPActions() []ISPAction {
	return []ISPAction{ISPInfo, ISPConfigUnprotect, ISPConfigReset, ISPErase, ISPReset}
}

// ISPCommand returns the wchisp invocation for action.
func ISPCommand(action ISPAction, toolDir string) (*Command, error) {
	for _, a := range ISPActions() {
		if a == action {
			return &Command{
				Tool:       "wchisp",
				Args:       strings.Fields(string(action)),
				SearchPath: searchPath(toolDir),
			}, nil
		}
	}

	return nil, fmt.Errorf("unknown isp action %q", action)
}
