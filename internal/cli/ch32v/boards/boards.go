// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package boards

import (
	"context"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/boards/generate"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/boards/list"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/boards/show"
)

type BoardsOptions struct{}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&BoardsOptions{}, cobra.Command{
		Short:   "Generate and inspect board descriptors",
		Use:     "boards SUBCOMMAND",
		Aliases: []string{"board", "b"},
		Long:    "Generate and inspect PlatformIO board descriptors.",
		Example: heredoc.Doc(`
			# Regenerate every board descriptor
			$ ch32v boards generate

			# List the known boards
			$ ch32v boards list
		`),
		Annotations: map[string]string{
			cmdfactory.AnnotationHelpGroup: "board",
		},
	})
	if err != nil {
		panic(err)
	}

	cmd.AddCommand(generate.NewCmd())
	cmd.AddCommand(list.NewCmd())
	cmd.AddCommand(show.NewCmd())

	return cmd
}

func (opts *BoardsOptions) Run(_ context.Context, _ []string) error {
	return pflag.ErrHelp
}
