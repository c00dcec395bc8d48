// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package ldscript

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/ldscript"
	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/utils"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

type LdscriptOptions struct {
	Output    string `local:"true" long:"output" short:"o" usage:"Path of the generated script (default is Link.ld in the build directory)"`
	Print     bool   `local:"true" long:"print" short:"p" usage:"Print the script instead of writing it"`
	StackSize int    `local:"true" long:"stack-size" usage:"Stack size in bytes (default depends on the family)"`
	Template  string `local:"true" long:"template" short:"t" usage:"Linker script template (default is the built-in template)"`
}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&LdscriptOptions{}, cobra.Command{
		Short:   "Generate the linker script of a board",
		Use:     "ldscript [FLAGS] BOARD",
		Aliases: []string{"ld"},
		Args:    cmdfactory.ExactArgs(1, "board identifier not specified"),
		Long: heredoc.Doc(`
			Render a linker script template with the memory layout of a board.

			Templates name their parameters with a leading '#': #ram, #flash,
			#flash_start, #stack and #stack_size. '##' is a literal '#'.
		`),
		Example: heredoc.Doc(`
			# Write .pio/build/Link.ld for the CH32V003 evaluation board
			$ ch32v ldscript ch32v003f4p6_evt_r0

			# Print the script rendered from a vendor template
			$ ch32v ldscript --print -t Link.tpl genericCH32V203C8T6
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

// Params derives the template parameters of d.
func Params(d *board.Descriptor, stackSize int) (ldscript.Params, error) {
	start, err := ldscript.ParseAddress(d.Upload.OffsetAddress)
	if err != nil {
		return ldscript.Params{}, err
	}

	if stackSize == 0 {
		stackSize = ldscript.DefaultStackSize(d.Build.MCU)
	}

	return ldscript.Params{
		RAM:        d.Upload.MaximumRAMSize,
		Flash:      d.Upload.MaximumSize,
		FlashStart: start,
		StackSize:  stackSize,
	}, nil
}

func (opts *LdscriptOptions) Pre(_ *cobra.Command, _ []string) error {
	return cmdfactory.MutuallyExclusive(map[string]bool{
		"print":  opts.Print,
		"output": opts.Output != "",
	})
}

func (opts *LdscriptOptions) Run(ctx context.Context, args []string) error {
	fs := afero.NewOsFs()
	ctx = log.WithBoard(ctx, args[0])

	d, err := utils.Descriptor(ctx, fs, args[0])
	if err != nil {
		return err
	}

	p, err := Params(d, opts.StackSize)
	if err != nil {
		return err
	}

	if opts.Print {
		tpl := ldscript.DefaultTemplate()
		if opts.Template != "" {
			raw, err := afero.ReadFile(fs, opts.Template)
			if err != nil {
				return err
			}
			tpl = string(raw)
		}

		script, err := ldscript.Render(tpl, p)
		if err != nil {
			return err
		}

		fmt.Fprint(iostreams.G(ctx).Out, script)

		return nil
	}

	if opts.Output == "" {
		opts.Output = filepath.Join(config.G(ctx).Paths.Build, ldscript.DefaultFile)
	}

	path, err := ldscript.Generate(fs, opts.Template, opts.Output, p)
	if err != nil {
		return err
	}

	log.G(ctx).Infof("wrote %s", path)

	return nil
}
