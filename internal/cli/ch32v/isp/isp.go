// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package isp

import (
	"context"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/toolchain"
	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/exec"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/upload"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/utils"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

type IspOptions struct {
	DryRun bool `local:"true" long:"dry-run" usage:"Print the wchisp commands without running them"`
}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&IspOptions{}, cobra.Command{
		Short: "Run maintenance actions over the USB bootloader",
		Use:   "isp [FLAGS] ACTION [ACTION...]",
		Args:  cmdfactory.MinimumArgs(1, "no isp action specified"),
		Long: heredoc.Docf(`
			Run wchisp maintenance actions in order, stopping at the first failure.

			Actions: %s
		`, strings.Join(actionNames(), ", ")),
		Example: heredoc.Doc(`
			# Remove the read protection, then reset the chip
			$ ch32v isp config-unprotect reset
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

func actionNames() []string {
	var names []string
	for _, a := range toolchain.ISPActions() {
		names = append(names, strings.ReplaceAll(string(a), " ", "-"))
	}
	return names
}

// Commands maps action names, spelled with dashes on the command line, to
// wchisp invocations.
func Commands(actions []string, toolDir string) ([]*toolchain.Command, error) {
	cmds := make([]*toolchain.Command, 0, len(actions))

	for _, name := range actions {
		cmd, err := toolchain.ISPCommand(toolchain.ISPAction(strings.ReplaceAll(name, "-", " ")), toolDir)
		if err != nil {
			return nil, cmdfactory.FlagErrorWrap(err)
		}
		cmds = append(cmds, cmd)
	}

	return cmds, nil
}

func (opts *IspOptions) Run(ctx context.Context, args []string) error {
	toolDir := utils.PackageDir(ctx, utils.Resolver(ctx, afero.NewOsFs()), toolchain.PackageWCHISP)

	cmds, err := Commands(args, toolDir)
	if err != nil {
		return err
	}

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
