// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package show

import (
	"context"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v/utils"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

type ShowOptions struct{}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&ShowOptions{}, cobra.Command{
		Short:   "Print the descriptor of a board",
		Use:     "show BOARD",
		Aliases: []string{"info"},
		Args:    cmdfactory.ExactArgs(1, "board identifier not specified"),
		Long:    "Print the PlatformIO board descriptor of a board as JSON.",
		Example: heredoc.Doc(`
			# Show the descriptor of the CH32V307 evaluation board
			$ ch32v boards show ch32v307_evt
		`),
	})
	if err != nil {
		panic(err)
	}

	return cmd
}

func (opts *ShowOptions) Run(ctx context.Context, args []string) error {
	d, err := utils.Descriptor(ctx, afero.NewOsFs(), args[0])
	if err != nil {
		return err
	}

	data, err := d.Encode()
	if err != nil {
		return err
	}

	_, err = iostreams.G(ctx).Out.Write(data)
	return err
}
