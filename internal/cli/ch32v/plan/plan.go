// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package plan

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/framework"
	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/utils"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/set"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

type PlanOptions struct {
	Framework         string `local:"true" long:"framework" short:"f" usage:"Framework to compose (default is the bare toolchain flags)"`
	LDScript          string `local:"true" long:"ldscript" usage:"Use a project linker script instead of generating one"`
	Output            string `local:"true" long:"output" short:"o" usage:"Set output format. Options: tree,env" default:"tree"`
	ProgName          string `local:"true" long:"prog-name" usage:"Name of the linked program" default:"firmware"`
	ProjectDir        string `local:"true" long:"project-dir" short:"d" usage:"Project directory (default is cwd)"`
	SmallDataLimit    *int   `local:"true" long:"small-data-limit" usage:"Override the -msmall-data-limit value"`
	StackSize         int    `local:"true" long:"stack-size" usage:"Stack size in bytes (default depends on the family)"`
	UseBuiltinDebug   *bool  `local:"true" long:"use-builtin-debug" usage:"Build the vendor debug UART helpers"`
	UseBuiltinStartup *bool  `local:"true" long:"use-builtin-startup" usage:"Build the vendor startup file"`
	UseBuiltinSystem  *bool  `local:"true" long:"use-builtin-system" usage:"Build the vendor clock initialisation"`
	UseCppSupport     *bool  `local:"true" long:"use-cpp-support" usage:"Link the C++ runtime and run static constructors"`
	UseLTO            *bool  `local:"true" long:"use-lto" usage:"Enable link-time optimisation"`
}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&PlanOptions{}, cobra.Command{
		Short: "Compose the build flags of a board and framework",
		Use:   "plan [FLAGS] BOARD",
		Args:  cmdfactory.ExactArgs(1, "board identifier not specified"),
		Long: heredoc.Docf(`
			Compose the compiler and linker flags, include paths, defines and source
			sets of a board built with a framework.

			Frameworks: %s
		`, strings.Join(framework.Names(), ", ")),
		Example: heredoc.Doc(`
			# Show the bare toolchain flags of a CH32V003 board
			$ ch32v plan genericCH32V003F4P6

			# Show the FreeRTOS build as construction variables
			$ ch32v plan --framework freertos -o env ch32v307_evt
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

func (opts *PlanOptions) Pre(_ *cobra.Command, _ []string) error {
	if !set.NewStringSet("tree", "env").Contains(opts.Output) {
		return cmdfactory.FlagErrorf("unsupported output format: %s", opts.Output)
	}

	return nil
}

// Options converts the flags into composition options.
func (opts *PlanOptions) Options(ctx context.Context) framework.Options {
	return framework.Options{
		UseBuiltinStartup: opts.UseBuiltinStartup,
		UseBuiltinSystem:  opts.UseBuiltinSystem,
		UseBuiltinDebug:   opts.UseBuiltinDebug,
		UseCppSupport:     opts.UseCppSupport,
		UseLTO:            opts.UseLTO,
		StackSize:         opts.StackSize,
		SmallDataLimit:    opts.SmallDataLimit,
		LDScript:          opts.LDScript,
		Host:              config.G(ctx).Host,
		BuildDir:          config.G(ctx).Paths.Build,
		ProjectDir:        opts.ProjectDir,
		ProgName:          opts.ProgName,
	}
}

func (opts *PlanOptions) Run(ctx context.Context, args []string) error {
	fs := afero.NewOsFs()
	boardID := args[0]

	if opts.ProjectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		opts.ProjectDir = wd
	}

	d, err := utils.Descriptor(ctx, fs, boardID)
	if err != nil {
		return err
	}

	composer, err := framework.NewComposer(
		framework.WithFs(fs),
		framework.WithPackages(utils.Resolver(ctx, fs)),
	)
	if err != nil {
		return err
	}

	p, err := composer.Compose(ctx, boardID, d, opts.Framework, opts.Options(ctx))
	if err != nil {
		return err
	}

	out := iostreams.G(ctx).Out

	if opts.Output == "env" {
		env := p.Env()

		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(out, "%s=%s\n", k, env[k])
		}

		return nil
	}

	name := boardID
	if opts.Framework != "" {
		name += " (" + opts.Framework + ")"
	}

	fmt.Fprint(out, p.PrintInfo(name))

	return nil
}
