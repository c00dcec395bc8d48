// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package utils

import (
	"context"
	"errors"

	"github.com/spf13/afero"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/packages"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

// Descriptor returns the descriptor of boardID. A generated file in the
// configured boards directory wins over the built-in board table, so that
// hand edited descriptors are honoured.
func Descriptor(ctx context.Context, fs afero.Fs, boardID string) (*board.Descriptor, error) {
	dir := config.G(ctx).Paths.Boards

	d, err := board.LoadByID(fs, dir, boardID)
	if err == nil {
		return d, nil
	} else if !errors.Is(err, errs.ErrUnknownBoard) {
		return nil, err
	}

	b, ok := board.Find(board.AllBoards(), boardID)
	if !ok {
		return nil, err
	}

	ctx = log.WithBoard(ctx, boardID)
	log.G(ctx).Debugf("no descriptor in %s, describing built-in board", dir)

	gen, gerr := board.NewGenerator(board.WithFs(fs))
	if gerr != nil {
		return nil, gerr
	}

	return gen.Describe(ctx, b)
}

// Resolver returns a package resolver rooted at the configured packages
// directory.
func Resolver(ctx context.Context, fs afero.Fs) *packages.Resolver {
	return &packages.Resolver{
		Fs:   fs,
		Root: config.G(ctx).Paths.Packages,
	}
}

// PackageDir returns the directory of an installed package, or the empty
// string when it is not installed. Tools missing from the packages
// directory are then looked up on $PATH.
func PackageDir(ctx context.Context, r *packages.Resolver, name string) string {
	dir, err := r.Dir(name)
	if err != nil {
		log.G(ctx).Debugf("%v, falling back to $PATH", err)
		return ""
	}

	return dir
}
