// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package upload

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/toolchain"
	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/exec"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/utils"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

type UploadOptions struct {
	Command  string `local:"true" long:"command" short:"c" usage:"Upload command of the custom protocol, $SOURCE is the firmware path"`
	DryRun   bool   `local:"true" long:"dry-run" usage:"Print the upload command without running it"`
	Protocol string `local:"true" long:"protocol" short:"p" usage:"Upload protocol. Options: wch-link,isp,minichlink,custom"`
	Verbose  bool   `local:"true" long:"verbose" short:"v" usage:"Raise the verbosity of the upload tool"`
}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&UploadOptions{}, cobra.Command{
		Short: "Flash firmware onto a board",
		Use:   "upload [FLAGS] BOARD [FIRMWARE]",
		Args:  cobra.RangeArgs(1, 2),
		Long: heredoc.Doc(`
			Flash firmware onto a board with the board's upload protocol, or the one
			given with --protocol. The firmware defaults to the linked program of the
			build directory.
		`),
		Example: heredoc.Doc(`
			# Flash through a WCH-LinkE probe
			$ ch32v upload ch32v307_evt .pio/build/firmware.elf

			# Flash over the USB bootloader
			$ ch32v upload -p isp genericCH32V203C8T6 firmware.bin

			# Show the minichlink invocation only
			$ ch32v upload --dry-run -p minichlink ch32v003f4p6_evt_r0
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

// protocol picks the flag, then the configured default when the board
// offers it, then the board's own protocol.
func (opts *UploadOptions) protocol(ctx context.Context, d *board.Descriptor) string {
	if opts.Protocol != "" {
		return opts.Protocol
	}

	if p := config.G(ctx).UploadProtocol; p != "" {
		for _, offered := range d.Upload.Protocols {
			if offered == p {
				return p
			}
		}
	}

	return d.Upload.Protocol
}

func (opts *UploadOptions) Run(ctx context.Context, args []string) error {
	fs := afero.NewOsFs()
	boardID := args[0]
	ctx = log.WithBoard(ctx, boardID)

	d, err := utils.Descriptor(ctx, fs, boardID)
	if err != nil {
		return err
	}

	firmware := toolchain.DefaultTools().Program(config.G(ctx).Paths.Build)
	if len(args) > 1 {
		firmware = args[1]
	}

	protocol := opts.protocol(ctx, d)
	resolver := utils.Resolver(ctx, fs)

	uopts := toolchain.UploadOptions{
		Verbose: opts.Verbose,
		Command: opts.Command,
	}

	switch protocol {
	case board.ProtocolWCHLink:
		uopts.OpenOCDDir = utils.PackageDir(ctx, resolver, toolchain.PackageOpenOCD)
	case board.ProtocolISP:
		uopts.ToolDir = utils.PackageDir(ctx, resolver, toolchain.PackageWCHISP)
	case board.ProtocolMinichlink:
		uopts.ToolDir = utils.PackageDir(ctx, resolver, toolchain.PackageMinichlink)
	}

	cmd, err := toolchain.UploadCommand(ctx, boardID, d, protocol, firmware, uopts)
	if err != nil {
		return err
	}
	if cmd == nil {
		return nil
	}

	if opts.DryRun {
		fmt.Fprintln(iostreams.G(ctx).Out, cmd.String())
		return nil
	}

	log.G(ctx).
		WithField("protocol", protocol).
		Infof("uploading %s", firmware)

	process, err := Process(ctx, cmd)
	if err != nil {
		return err
	}

	return process.StartAndWait(ctx)
}

// Process prepares cmd to run attached to the command's IO streams.
func Process(ctx context.Context, cmd *toolchain.Command) (*exec.Process, error) {
	e, err := exec.NewExecutable(cmd.Tool, cmd.Args...)
	if err != nil {
		return nil, err
	}

	return exec.NewProcessFromExecutable(e,
		exec.WithStdin(iostreams.G(ctx).In),
		exec.WithStdout(iostreams.G(ctx).Out),
		exec.WithStderr(iostreams.G(ctx).ErrOut),
		exec.WithSearchPath(cmd.SearchPath...),
	)
}
