// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package debug

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/toolchain"
	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/utils"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

type DebugOptions struct {
	Speed string `local:"true" long:"speed" short:"s" usage:"Adapter speed in kHz"`
	Tool  string `local:"true" long:"tool" short:"t" usage:"Debug tool" default:"wch-link"`
}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&DebugOptions{}, cobra.Command{
		Short: "Show the debug server and GDB setup of a board",
		Use:   "debug [FLAGS] BOARD",
		Args:  cmdfactory.ExactArgs(1, "board identifier not specified"),
		Long: heredoc.Doc(`
			Show the GDB server invocation and the GDB initialisation commands used to
			debug a board.
		`),
		Example: heredoc.Doc(`
			# Show the OpenOCD setup of the CH32V307 evaluation board
			$ ch32v debug ch32v307_evt

			# Slow the adapter down
			$ ch32v debug --speed 1000 ch32v003f4p6_evt_r0
		`),
		Annotations: map[string]string{
			cmdfactory.AnnotationHelpGroup: "flash",
		},
	})
	if err != nil {
		panic(err)
	}

	return cmd
}

func (opts *DebugOptions) Run(ctx context.Context, args []string) error {
	fs := afero.NewOsFs()
	boardID := args[0]

	d, err := utils.Descriptor(ctx, fs, boardID)
	if err != nil {
		return err
	}

	openocdDir := utils.PackageDir(ctx, utils.Resolver(ctx, fs), toolchain.PackageOpenOCD)

	tools, err := toolchain.DefaultDebugTools(boardID, d, openocdDir)
	if err != nil {
		return err
	}

	tool, ok := tools[opts.Tool]
	if !ok {
		names := make([]string, 0, len(tools))
		for name := range tools {
			names = append(names, name)
		}
		sort.Strings(names)

		return cmdfactory.FlagErrorf("unknown debug tool %q, expected one of: %s", opts.Tool, strings.Join(names, ", "))
	}

	server := toolchain.DebugSpeedArgs(tool.Server, opts.Speed)

	Print(ctx, d, opts.Tool, tool, server, openocdDir)

	return nil
}

// Print writes the debug setup of a board.
func Print(ctx context.Context, d *board.Descriptor, name string, tool toolchain.DebugTool, server toolchain.DebugServer, pkgDir string) {
	out := iostreams.G(ctx).Out
	cs := iostreams.G(ctx).ColorScheme()

	onboard := ""
	if tool.Onboard {
		onboard = " (onboard)"
	}

	fmt.Fprintf(out, "%s %s%s\n", cs.Cyan("tool:"), name, onboard)
	fmt.Fprintf(out, "%s %s\n", cs.Cyan("svd:"), d.Debug.SVDPath)
	cmd := &toolchain.Command{
		Tool: filepath.Join(pkgDir, server.Executable),
		Args: server.Arguments,
	}
	fmt.Fprintf(out, "%s %s\n", cs.Cyan("server:"), cmd.String())

	fmt.Fprintln(out, cs.Cyan("init:"))
	for _, c := range tool.InitCmds {
		fmt.Fprintf(out, "  %s\n", c)
	}
}
