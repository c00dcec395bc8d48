// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package version

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/version"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

type VersionOptions struct{}

func NewCmd() *cobra.Command {
	cmd, err := cmdfactory.New(&VersionOptions{}, cobra.Command{
		Short:   "Show ch32v version information",
		Use:     "version",
		Aliases: []string{"v"},
		Args:    cmdfactory.NoArgsQuoteReminder,
		Long:    "Show ch32v version information.",
		Example: heredoc.Doc(`
			# Show ch32v version information
			$ ch32v version
		`),
		Annotations: map[string]string{
			cmdfactory.AnnotationHelpGroup: "misc",
		},
	})
	if err != nil {
		panic(err)
	}

	return cmd
}

func (opts *VersionOptions) Run(ctx context.Context, _ []string) error {
	fmt.Fprintf(iostreams.G(ctx).Out, "ch32v %s", version.String())
	return nil
}
