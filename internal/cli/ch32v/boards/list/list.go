// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package list

import (
	"context"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/tableprinter"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

type ListOptions struct {
	Framework string `local:"true" long:"framework" short:"f" usage:"Only show boards supporting the framework"`
	Installed bool   `local:"true" long:"installed" usage:"List the descriptors of the boards directory instead of the built-in boards"`
	Output    string `local:"true" long:"output" short:"o" usage:"Set output format. Options: table,yaml,json,list" default:"table"`
	Series    string `local:"true" long:"series" short:"s" usage:"Only show boards of the series, e.g. ch32v307"`
}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&ListOptions{}, cobra.Command{
		Short:   "List boards",
		Use:     "list [FLAGS]",
		Aliases: []string{"ls"},
		Args:    cmdfactory.NoArgsQuoteReminder,
		Long:    "List the known boards with their memory and framework support.",
		Example: heredoc.Doc(`
			# List every board
			$ ch32v boards list

			# List the boards able to run FreeRTOS, as JSON
			$ ch32v boards list --framework freertos -o json
		`),
	})
	if err != nil {
		panic(err)
	}

	return cmd
}

type entry struct {
	id string
	d  *board.Descriptor
}

func (opts *ListOptions) Run(ctx context.Context, _ []string) error {
	return List(ctx, afero.NewOsFs(), opts)
}

// List prints the boards matching opts.
func List(ctx context.Context, fs afero.Fs, opts *ListOptions) error {
	entries, err := opts.entries(ctx, fs)
	if err != nil {
		return err
	}

	cs := iostreams.G(ctx).ColorScheme()

	table, err := tableprinter.NewTablePrinter(ctx,
		tableprinter.WithMaxWidth(iostreams.G(ctx).TerminalWidth()),
		tableprinter.WithOutputFormatFromString(opts.Output),
	)
	if err != nil {
		return err
	}

	table.AddField("ID", cs.Bold)
	table.AddField("NAME", cs.Bold)
	table.AddField("MCU", cs.Bold)
	table.AddField("FREQUENCY", cs.Bold)
	table.AddField("RAM", cs.Bold)
	table.AddField("FLASH", cs.Bold)
	table.AddField("FRAMEWORKS", cs.Bold)
	table.EndRow()

	for _, e := range entries {
		if opts.Framework != "" && !e.d.HasFramework(opts.Framework) {
			continue
		}
		if opts.Series != "" && !strings.EqualFold(e.d.Build.Series, opts.Series) {
			continue
		}

		table.AddField(e.id, nil)
		table.AddField(e.d.Name, nil)
		table.AddField(e.d.Build.MCU, nil)
		table.AddField(frequency(e.d.Build.FCPU), nil)
		table.AddField(humanize.IBytes(uint64(e.d.Upload.MaximumRAMSize)), nil)
		table.AddField(humanize.IBytes(uint64(e.d.Upload.MaximumSize)), nil)
		table.AddField(strings.Join(e.d.Frameworks, ","), nil)
		table.EndRow()
	}

	return table.Render(iostreams.G(ctx).Out)
}

func (opts *ListOptions) entries(ctx context.Context, fs afero.Fs) ([]entry, error) {
	if opts.Installed {
		dir := config.G(ctx).Paths.Boards

		ids, err := board.List(fs, dir)
		if err != nil {
			return nil, err
		}

		entries := make([]entry, 0, len(ids))
		for _, id := range ids {
			d, err := board.LoadByID(fs, dir, id)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry{id: id, d: d})
		}

		return entries, nil
	}

	gen, err := board.NewGenerator(board.WithFs(fs))
	if err != nil {
		return nil, err
	}

	results, err := gen.Plan(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, entry{id: r.Board.ID, d: r.Descriptor})
	}

	return entries, nil
}

// frequency renders an f_cpu value such as "144000000L".
func frequency(fcpu string) string {
	hz, err := strconv.ParseUint(strings.TrimSuffix(fcpu, "L"), 10, 64)
	if err != nil {
		return fcpu
	}

	return humanize.SI(float64(hz), "Hz")
}
