// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package generate

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

type GenerateOptions struct {
	Check  bool   `local:"true" long:"check" usage:"Only report descriptors that differ from the generated content"`
	Output string `local:"true" long:"output" short:"o" usage:"Directory receiving the descriptors (default is the configured boards directory)"`
}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&GenerateOptions{}, cobra.Command{
		Short:   "Generate the board descriptors of every known chip",
		Use:     "generate [FLAGS]",
		Aliases: []string{"gen"},
		Args:    cmdfactory.NoArgsQuoteReminder,
		Long: heredoc.Doc(`
			Generate one PlatformIO board descriptor per chip of the database and per
			evaluation board. No file is written unless every board resolves.
		`),
		Example: heredoc.Doc(`
			# Write descriptors into the configured boards directory
			$ ch32v boards generate

			# Fail when a committed descriptor is stale
			$ ch32v boards generate --check -o boards/
		`),
	})
	if err != nil {
		panic(err)
	}

	return cmd
}

func (opts *GenerateOptions) Run(ctx context.Context, _ []string) error {
	return Generate(ctx, afero.NewOsFs(), opts)
}

// Generate writes or checks the descriptors on fs.
func Generate(ctx context.Context, fs afero.Fs, opts *GenerateOptions) error {
	if opts.Output == "" {
		opts.Output = config.G(ctx).Paths.Boards
	}

	gen, err := board.NewGenerator(
		board.WithFs(fs),
		board.WithOutputDir(opts.Output),
	)
	if err != nil {
		return err
	}

	if opts.Check {
		drifts, err := gen.Check(ctx)
		if err != nil {
			return err
		}

		out := iostreams.G(ctx).Out
		cs := iostreams.G(ctx).ColorScheme()

		for _, d := range drifts {
			fmt.Fprintf(out, "%s %s\n", cs.FailureIcon(), cs.Bold(d.Path))
			fmt.Fprint(out, d.Diff)
		}

		if len(drifts) > 0 {
			return fmt.Errorf("%d board descriptors in %s are out of date", len(drifts), opts.Output)
		}

		log.G(ctx).Infof("%d board descriptors are up to date", len(gen.Boards()))

		return nil
	}

	paths, err := gen.Write(ctx)
	if err != nil {
		return err
	}

	log.G(ctx).Infof("wrote %d board descriptors to %s", len(paths), opts.Output)

	return nil
}
