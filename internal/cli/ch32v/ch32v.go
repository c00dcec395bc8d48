// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package ch32v

import (
	"context"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/rancher/wrangler/pkg/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli"
	kitversion "github.com/Community-PIO-CH32V/platform-ch32v/internal/version"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/boards"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/debug"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/firmware"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/isp"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/ldscript"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/packages"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/plan"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/upload"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/version"
)

type Ch32vOptions struct{}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&Ch32vOptions{}, cobra.Command{
		Short: "Board, linker script and build flag generator for WCH CH32V and CH5xx parts",
		Use:   "ch32v [FLAGS] SUBCOMMAND",
		Long: heredoc.Docf(`
			Board, linker script and build flag generator for WCH CH32V and CH5xx parts.

			Version:          %s
			Issues & support: https://github.com/Community-PIO-CH32V/platform-ch32v/issues`, kitversion.Version()),
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	})
	if err != nil {
		panic(err)
	}

	cmd.AddGroup(&cobra.Group{ID: "board", Title: "BOARD COMMANDS"})
	cmd.AddCommand(boards.NewCmd())

	cmd.AddGroup(&cobra.Group{ID: "build", Title: "BUILD COMMANDS"})
	cmd.AddCommand(plan.NewCmd())
	cmd.AddCommand(ldscript.NewCmd())
	cmd.AddCommand(firmware.NewCmd())
	cmd.AddCommand(packages.NewCmd())

	cmd.AddGroup(&cobra.Group{ID: "flash", Title: "FLASHING AND DEBUG COMMANDS"})
	cmd.AddCommand(upload.NewCmd())
	cmd.AddCommand(isp.NewCmd())
	cmd.AddCommand(debug.NewCmd())

	cmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISCELLANEOUS COMMANDS"})
	cmd.AddCommand(version.NewCmd())

	return cmd
}

// PersistentPre applies the log level once flags have been parsed, since the
// logger is built before --log-level is known.
func (*Ch32vOptions) PersistentPre(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if _, err := log.ParseType(config.G(ctx).Log.Type); err != nil {
		return cmdfactory.FlagErrorWrap(err)
	}

	level, err := log.ParseLevel(config.G(ctx).Log.Level)
	if err != nil {
		return cmdfactory.FlagErrorWrap(err)
	}

	log.G(ctx).Logger.SetLevel(level)

	if config.G(ctx).NoColor {
		iostreams.G(ctx).SetColorEnabled(false)
	}

	return nil
}

func (*Ch32vOptions) Run(_ context.Context, _ []string) error {
	return pflag.ErrHelp
}

// Prepare attaches the CLI options to ctx.
func Prepare(ctx context.Context, copts *cli.CliOptions) context.Context {
	if copts.ConfigManager != nil {
		ctx = config.WithConfigManager(ctx, copts.ConfigManager)
	}

	if copts.Logger != nil {
		ctx = log.WithLogger(ctx, copts.Logger)
	}

	if copts.IOStreams != nil {
		ctx = iostreams.WithIOStreams(ctx, copts.IOStreams)
	}

	return ctx
}

func Main(args []string) int {
	cmd := NewCmd()
	ctx := signals.SetupSignalContext()
	copts := &cli.CliOptions{}

	for _, o := range []cli.CliOption{
		cli.WithDefaultConfigManager(cmd),
		cli.WithDefaultIOStreams(),
		cli.WithDefaultLogger(),
	} {
		if err := o(copts); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	}

	ctx = Prepare(ctx, copts)

	log.G(ctx).Debugf("ch32v %s", kitversion.Version())

	cmd.SetArgs(args)

	return cmdfactory.Main(ctx, cmd)
}
