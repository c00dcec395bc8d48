// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2023, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package ch32v_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:stylecheck
	. "github.com/onsi/gomega"    //nolint:stylecheck

	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/cli/ch32v"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
)

func TestCh32v(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ch32v CLI")
}

// env is a sandbox of boards, packages and build directories.
type env struct {
	dir  string
	cfgm *config.ConfigManager
}

func newEnv() *env {
	dir, err := os.MkdirTemp("", "ch32v-cli-*")
	Expect(err).ToNot(HaveOccurred())
	DeferCleanup(func() error {
		return os.RemoveAll(dir)
	})

	cfgm, err := config.NewConfigManager()
	Expect(err).ToNot(HaveOccurred())

	cfgm.Config.NoColor = true
	cfgm.Config.Log.Type = "basic"
	cfgm.Config.Log.Level = "error"
	cfgm.Config.Paths.Boards = filepath.Join(dir, "boards")
	cfgm.Config.Paths.Packages = filepath.Join(dir, "packages")
	cfgm.Config.Paths.Build = filepath.Join(dir, "build")

	return &env{dir: dir, cfgm: cfgm}
}

// run executes the root command in-process and returns what it printed.
func (e *env) run(args ...string) (string, string, error) {
	io, _, stdout, stderr := iostreams.Test()

	copts := &cli.CliOptions{}
	for _, o := range []cli.CliOption{
		cli.WithConfigManager(e.cfgm),
		cli.WithIOStreams(io),
		cli.WithDefaultLogger(),
	} {
		Expect(o(copts)).To(Succeed())
	}

	ctx := ch32v.Prepare(context.Background(), copts)

	cmd := ch32v.NewCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)

	return stdout.String(), stderr.String(), err
}
