// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/afero"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/arch"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/chip"
	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/startup"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

// Generator produces one descriptor per board.
type Generator struct {
	fs       afero.Fs
	outDir   string
	boards   []Board
	variants []string
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator) error

// WithFs sets the filesystem descriptors are written to and checked against.
func WithFs(fs afero.Fs) GeneratorOption {
	return func(g *Generator) error {
		g.fs = fs
		return nil
	}
}

// WithOutputDir sets the boards directory.
func WithOutputDir(dir string) GeneratorOption {
	return func(g *Generator) error {
		g.outDir = dir
		return nil
	}
}

// WithBoards replaces the default board list.
func WithBoards(boards ...Board) GeneratorOption {
	return func(g *Generator) error {
		g.boards = boards
		return nil
	}
}

// WithArduinoVariants replaces the openwch variant table.
func WithArduinoVariants(variants ...string) GeneratorOption {
	return func(g *Generator) error {
		g.variants = variants
		return nil
	}
}

// NewGenerator returns a generator over AllBoards writing to ./boards.
func NewGenerator(opts ...GeneratorOption) (*Generator, error) {
	g := &Generator{
		fs:       afero.NewOsFs(),
		outDir:   "boards",
		boards:   AllBoards(),
		variants: ArduinoVariants(),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Boards returns the boards the generator covers.
func (g *Generator) Boards() []Board {
	return g.boards
}

// Result is a resolved, not yet persisted, descriptor.
type Result struct {
	Board      Board
	Descriptor *Descriptor
	Path       string
	Data       []byte
}

// Describe resolves the descriptor of a single board.
func (g *Generator) Describe(ctx context.Context, b Board) (*Descriptor, error) {
	info := b.Chip

	pair, err := arch.Resolve(info.Name)
	if err != nil {
		return nil, err
	}

	macro, classified, err := arch.Classify(info.Name)
	if err != nil {
		return nil, err
	}

	// Fail here rather than at build time.
	if _, err := startup.Select(b.ID, macro, info.Name); err != nil {
		return nil, err
	}

	series := info.Series()

	d := &Descriptor{
		Build: Build{
			FCPU:   strconv.Itoa(info.FreqHz()) + "L",
			HWIDs:  [][]string{{"0x1A86", "0x8010"}},
			Mabi:   pair.Mabi,
			March:  pair.March,
			MCU:    info.Lower(),
			Series: series,
		},
		Debug: Debug{
			OnboardTools:  []string{ProtocolWCHLink},
			OpenOCDConfig: "wch-riscv.cfg",
			SVDPath:       strings.ToUpper(series) + "xx.svd",
		},
		Frameworks: Frameworks(info),
		Name:       b.Name,
		Upload: Upload{
			MaximumRAMSize: info.SRAMBytes(),
			MaximumSize:    info.FlashBytes(),
			Protocol:       ProtocolWCHLink,
			Protocols:      []string{ProtocolWCHLink, ProtocolMinichlink, ProtocolISP},
		},
		URL:    fmt.Sprintf("http://www.wch-ic.com/products/%s.html", strings.ToUpper(series)),
		Vendor: "W.CH",
	}

	applyArduino(ctx, d, info, g.variants)

	flags := familyMacros(info)
	if classified {
		flags = append(flags, macro)
	}
	for i, f := range flags {
		flags[i] = "-D" + f
	}
	flags = append(flags, b.ExtraFlags...)
	d.Build.ExtraFlags = strings.Join(flags, " ")

	ctx = log.WithBoard(ctx, b.ID)
	for _, p := range b.Patches {
		log.G(ctx).Tracef("applying patch %s", p)
		p.Apply(d)
	}

	return d, nil
}

// familyMacros returns the part, series-group and series macros, e.g.
// CH32V307VC, CH32V30X and CH32V307.
func familyMacros(info chip.Info) []string {
	name := strings.ToUpper(info.Name)
	if info.IsCH5() {
		return []string{info.WithoutPackage(), name[0:len("CH5X")] + "X", name[0:len("CH5XX")]}
	}
	return []string{info.WithoutPackage(), name[0:len("CH32VXX")] + "X", name[0:len("CH32VXXX")]}
}

// Plan resolves every board in memory. Nothing is written and the first
// failure aborts.
func (g *Generator) Plan(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(g.boards))

	for _, b := range g.boards {
		d, err := g.Describe(ctx, b)
		if err != nil {
			return nil, fmt.Errorf("could not generate board %s: %w", b.ID, err)
		}

		data, err := d.Encode()
		if err != nil {
			return nil, fmt.Errorf("could not encode board %s: %w", b.ID, err)
		}

		results = append(results, Result{
			Board:      b,
			Descriptor: d,
			Path:       filepath.Join(g.outDir, b.ID+".json"),
			Data:       data,
		})
	}

	return results, nil
}

// Write generates and persists every descriptor, returning the paths
// written. No file is touched unless every board resolves.
func (g *Generator) Write(ctx context.Context) ([]string, error) {
	results, err := g.Plan(ctx)
	if err != nil {
		return nil, err
	}

	if err := g.fs.MkdirAll(g.outDir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(results))
	for _, r := range results {
		if err := afero.WriteFile(g.fs, r.Path, r.Data, 0o644); err != nil {
			return paths, fmt.Errorf("could not write %s: %w", r.Path, err)
		}

		log.G(ctx).
			WithField("board", r.Board.ID).
			Debugf("wrote %s", r.Path)

		paths = append(paths, r.Path)
	}

	return paths, nil
}

// Drift is a descriptor whose file differs from the generated content.
type Drift struct {
	Path string
	Diff string
}

// Check compares every generated descriptor with the file on disk. A missing
// file is reported as a drift against empty content.
func (g *Generator) Check(ctx context.Context) ([]Drift, error) {
	results, err := g.Plan(ctx)
	if err != nil {
		return nil, err
	}

	var drifts []Drift
	for _, r := range results {
		var current []byte

		exists, err := afero.Exists(g.fs, r.Path)
		if err != nil {
			return nil, err
		}
		if exists {
			if current, err = afero.ReadFile(g.fs, r.Path); err != nil {
				return nil, err
			}
		}

		if bytes.Equal(current, r.Data) {
			continue
		}

		drifts = append(drifts, Drift{
			Path: r.Path,
			Diff: UnifiedDiff(string(current), string(r.Data)),
		})
	}

	return drifts, nil
}

// UnifiedDiff renders a line diff of a against b with '-', '+' and ' '
// prefixes.
func UnifiedDiff(a, b string) string {
	dmp := diffmatchpatch.New()

	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}

	return out.String()
}
