// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package firmware

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/toolchain"
	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/exec"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/upload"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/utils"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

type FirmwareOptions struct {
	DryRun   bool   `local:"true" long:"dry-run" usage:"Print the toolchain commands without running them"`
	ProgName string `local:"true" long:"prog-name" usage:"Name of the linked program" default:"firmware"`
}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&FirmwareOptions{}, cobra.Command{
		Short:   "Convert the linked program into flashable images",
		Use:     "firmware [FLAGS]",
		Aliases: []string{"fw"},
		Args:    cmdfactory.NoArgsQuoteReminder,
		Long: heredoc.Doc(`
			Convert the linked program of the build directory into raw binary and
			Intel HEX images, then print its section sizes.
		`),
		Example: heredoc.Doc(`
			# Produce .pio/build/firmware.bin and .pio/build/firmware.hex
			$ ch32v firmware
		`),
		Annotations: map[string]string{
			cmdfactory.AnnotationHelpGroup: "build",
		},
	})
	if err != nil {
		panic(err)
	}

	return cmd
}

// Commands returns the conversion and size commands of the program in
// buildDir, searching the toolchain package first.
func Commands(tools toolchain.Tools, buildDir, toolchainDir string) []*toolchain.Command {
	elf := tools.Program(buildDir)

	cmds := []*toolchain.Command{
		tools.ElfToBin(elf, tools.Output(buildDir, ".bin")),
		tools.ElfToHex(elf, tools.Output(buildDir, ".hex")),
		tools.Size(elf),
	}

	if toolchainDir != "" {
		for _, cmd := range cmds {
			cmd.SearchPath = []string{filepath.Join(toolchainDir, "bin")}
		}
	}

	return cmds
}

func (opts *FirmwareOptions) Run(ctx context.Context, _ []string) error {
	tools := toolchain.DefaultTools()
	tools.ProgName = opts.ProgName

	toolchainDir := utils.PackageDir(ctx, utils.Resolver(ctx, afero.NewOsFs()), toolchain.PackageToolchain)
	cmds := Commands(tools, config.G(ctx).Paths.Build, toolchainDir)

	if opts.DryRun {
		for _, cmd := range cmds {
			fmt.Fprintln(iostreams.G(ctx).Out, cmd.String())
		}
		return nil
	}

	processes := make([]*exec.Process, 0, len(cmds))
	for _, cmd := range cmds {
		p, err := upload.Process(ctx, cmd)
		if err != nil {
			return err
		}
		processes = append(processes, p)
	}

	seq, err := exec.NewSequential(processes...)
	if err != nil {
		return err
	}

	return seq.StartAndWait(ctx)
}
