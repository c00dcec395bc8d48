// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package packages

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/packages"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/toolchain"
	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/utils"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/tableprinter"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

type PackagesOptions struct {
	All       bool   `local:"true" long:"all" short:"a" usage:"Also show optional packages"`
	Check     bool   `local:"true" long:"check" usage:"Fail when a required package is missing or out of range"`
	Framework string `local:"true" long:"framework" short:"f" usage:"Framework to build with (default is every framework of the board)"`
	Output    string `local:"true" long:"output" short:"o" usage:"Set output format. Options: table,yaml,json,list" default:"table"`
	Protocol  string `local:"true" long:"protocol" short:"p" usage:"Upload protocol (default is the board's)"`
}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&PackagesOptions{}, cobra.Command{
		Short:   "Show the packages a board build needs",
		Use:     "packages [FLAGS] BOARD",
		Aliases: []string{"pkgs"},
		Args:    cmdfactory.ExactArgs(1, "board identifier not specified"),
		Long: heredoc.Doc(`
			Show the toolchain, framework and tool packages of a board build and
			whether the installed versions satisfy them.
		`),
		Example: heredoc.Doc(`
			# Check that a FreeRTOS build of the CH32V307 evaluation board can run
			$ ch32v packages --check -f freertos ch32v307_evt
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

// Status describes an installed package against its requirement.
type Status struct {
	Package   toolchain.Package
	Installed string
	Err       error
}

// Resolve inspects every package against the resolver.
func Resolve(r *packages.Resolver, pkgs []toolchain.Package) []Status {
	statuses := make([]Status, 0, len(pkgs))

	for _, p := range pkgs {
		s := Status{Package: p}

		if !r.Has(p.Name) {
			_, s.Err = r.Dir(p.Name)
		} else if v, err := r.Version(p.Name); err != nil {
			s.Err = err
		} else {
			s.Installed = v
			s.Err = p.Check(v)
		}

		statuses = append(statuses, s)
	}

	return statuses
}

func (opts *PackagesOptions) Run(ctx context.Context, args []string) error {
	fs := afero.NewOsFs()

	d, err := utils.Descriptor(ctx, fs, args[0])
	if err != nil {
		return err
	}

	frameworks := d.Frameworks
	if opts.Framework != "" {
		frameworks = []string{opts.Framework}
	}

	protocol := opts.Protocol
	if protocol == "" {
		protocol = d.Upload.Protocol
	}

	pkgs := toolchain.SelectPackages(config.G(ctx).Host, frameworks, protocol)
	if !opts.All {
		pkgs = toolchain.Required(pkgs)
	}

	statuses := Resolve(utils.Resolver(ctx, fs), pkgs)

	cs := iostreams.G(ctx).ColorScheme()

	table, err := tableprinter.NewTablePrinter(ctx,
		tableprinter.WithMaxWidth(iostreams.G(ctx).TerminalWidth()),
		tableprinter.WithOutputFormatFromString(opts.Output),
	)
	if err != nil {
		return err
	}

	table.AddField("NAME", cs.Bold)
	table.AddField("REQUIREMENT", cs.Bold)
	table.AddField("INSTALLED", cs.Bold)
	table.AddField("STATUS", cs.Bold)
	table.EndRow()

	failed := 0

	for _, s := range statuses {
		status, color := "ok", cs.Green
		switch {
		case s.Err != nil && s.Package.Optional:
			status, color = "optional", cs.Gray
		case s.Err != nil:
			status, color = s.Err.Error(), cs.Red
			failed++
		}

		table.AddField(s.Package.Name, nil)
		table.AddField(s.Package.Version, nil)
		table.AddField(s.Installed, nil)
		table.AddField(status, color)
		table.EndRow()
	}

	if err := table.Render(iostreams.G(ctx).Out); err != nil {
		return err
	}

	if opts.Check && failed > 0 {
		return fmt.Errorf("%d required packages are missing or out of range", failed)
	}

	return nil
}
