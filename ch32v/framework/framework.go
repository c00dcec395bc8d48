// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package framework composes the build plan of a board for each supported
// framework. Layers build on each other: every RTOS starts from the NoneOS
// SDK, which starts from the bare toolchain flags.
package framework

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/LastPossum/kamino"
	"github.com/spf13/afero"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/arch"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/board"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/chip"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/packages"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/plan"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

// Bare is the name used when a project selects no framework.
const Bare = "_bare"

// Build is the state threaded through every layer of a single composition.
type Build struct {
	// BoardID names the board in errors.
	BoardID string

	// Board is a private copy of the descriptor, narrowed for the host.
	Board *board.Descriptor

	// Family is the directory name used by the SDK packages, e.g. ch32v30x.
	Family string

	Options    Options
	Subsystems Subsystems
	Packages   *packages.Resolver
	Fs         afero.Fs
	Plan       *plan.Plan
}

// MCU is the lower-case part number.
func (b *Build) MCU() string {
	return strings.ToLower(b.Board.Build.MCU)
}

// Framework contributes to a build plan.
type Framework interface {
	Name() string
	Apply(ctx context.Context, b *Build) error
}

// packageUser is implemented by frameworks that need installed packages.
type packageUser interface {
	Packages(d *board.Descriptor) []string
}

// RequiredPackages returns the packages the named framework needs to build
// d, in layering order.
func RequiredPackages(d *board.Descriptor, framework string) ([]string, error) {
	f, err := Lookup(framework)
	if err != nil {
		return nil, err
	}

	if u, ok := f.(packageUser); ok {
		return u.Packages(d), nil
	}

	return nil, nil
}

var registry = map[string]Framework{}

// Register makes f available to Lookup, replacing any framework with the
// same name.
func Register(f Framework) {
	registry[f.Name()] = f
}

// Lookup returns the framework called name. The empty name is Bare.
func Lookup(name string) (Framework, error) {
	if name == "" {
		name = Bare
	}

	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnknownFramework, name)
	}

	return f, nil
}

// Names returns every registered framework, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(bare{})
	Register(noneOS{})
	for _, r := range rtosLayers {
		Register(r)
	}
	Register(arduino{})
	Register(zephyr{})
}

// Composer builds plans against a set of installed packages.
type Composer struct {
	packages *packages.Resolver
	fs       afero.Fs
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer) error

// WithPackages sets the package resolver.
func WithPackages(r *packages.Resolver) ComposerOption {
	return func(c *Composer) error {
		c.packages = r
		return nil
	}
}

// WithFs sets the filesystem used for package contents and generated files.
func WithFs(fs afero.Fs) ComposerOption {
	return func(c *Composer) error {
		c.fs = fs
		return nil
	}
}

// NewComposer returns a Composer. Without options it uses the OS
// filesystem and ~/.platformio/packages.
func NewComposer(opts ...ComposerOption) (*Composer, error) {
	c := &Composer{}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.packages == nil {
		c.packages = &packages.Resolver{Fs: c.fs}
	}

	return c, nil
}

// Compose returns a fresh plan for boardID using the named framework. The
// descriptor d is never modified.
func (c *Composer) Compose(ctx context.Context, boardID string, d *board.Descriptor, framework string, opts Options) (*plan.Plan, error) {
	f, err := Lookup(framework)
	if err != nil {
		return nil, err
	}

	if f.Name() != Bare && !d.HasFramework(f.Name()) {
		log.G(ctx).
			WithField("board", boardID).
			Warnf("board does not list framework %s", f.Name())
	}

	opts = opts.withDefaults()

	clone, err := kamino.Clone(d)
	if err != nil {
		return nil, fmt.Errorf("could not copy board descriptor: %w", err)
	}

	if narrowed := arch.NarrowForHost(clone.Build.March, opts.Host); narrowed != clone.Build.March {
		log.G(ctx).
			WithField("host", opts.Host).
			Debugf("narrowing %s to %s", clone.Build.March, narrowed)
		clone.Build.March = narrowed
	}

	b := &Build{
		BoardID:    boardID,
		Board:      clone,
		Family:     chip.Family(clone.Build.Series),
		Options:    opts,
		Subsystems: opts.ResolveSubsystems(clone.Build.MCU),
		Packages:   c.packages,
		Fs:         c.fs,
		Plan:       plan.New(),
	}

	if err := addBoardDefines(b); err != nil {
		return nil, err
	}

	if err := f.Apply(ctx, b); err != nil {
		return nil, err
	}

	return b.Plan, nil
}

// addBoardDefines carries F_CPU and the extra_flags macros of the board into
// the plan.
func addBoardDefines(b *Build) error {
	if b.Board.Build.FCPU != "" {
		b.Plan.AddDefine("F_CPU", b.Board.Build.FCPU)
	}

	macros, err := b.Board.Macros()
	if err != nil {
		return fmt.Errorf("could not parse extra_flags of %s: %w", b.BoardID, err)
	}

	for _, m := range macros {
		b.Plan.AddDefine(m)
	}

	return nil
}
