// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Community-PIO-CH32V/platform-ch32v/cmdfactory"
	"github.com/Community-PIO-CH32V/platform-ch32v/config"
	"github.com/Community-PIO-CH32V/platform-ch32v/iostreams"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

type CliOptions struct {
	IOStreams     *iostreams.IOStreams
	Logger        *logrus.Entry
	ConfigManager *config.ConfigManager
}

type CliOption func(*CliOptions) error

// WithConfigManager sets a previously instantiated ConfigManager to be used
// as part of the CLI options.
func WithConfigManager(cfgm *config.ConfigManager) CliOption {
	return func(copts *CliOptions) error {
		copts.ConfigManager = cfgm
		return nil
	}
}

// WithDefaultConfigManager instantiates a configuration manager from the
// default config file and the environment, and exposes every configuration
// key as a persistent flag of cmd.
func WithDefaultConfigManager(cmd *cobra.Command) CliOption {
	return func(copts *CliOptions) error {
		if copts.ConfigManager != nil {
			return nil
		}

		cfgm, err := config.NewConfigManager(
			config.WithDefaultConfigFile(),
			config.WithEnv(),
		)
		if err != nil {
			return err
		}

		if err := cmdfactory.AttributeFlags(cmd, cfgm.Config); err != nil {
			return fmt.Errorf("could not attribute configuration flags: %w", err)
		}

		copts.ConfigManager = cfgm

		return nil
	}
}

// WithIOStreams sets a previously instantiated iostreams.IOStreams structure to
// be used within the command.
func WithIOStreams(io *iostreams.IOStreams) CliOption {
	return func(copts *CliOptions) error {
		copts.IOStreams = io
		return nil
	}
}

// WithDefaultIOStreams instantiates new IO streams using environmental
// variables and host-provided configuration.
func WithDefaultIOStreams() CliOption {
	return func(copts *CliOptions) error {
		if copts.IOStreams != nil {
			return nil
		}

		io := iostreams.System()

		if copts.ConfigManager != nil && copts.ConfigManager.Config.NoColor {
			io.SetColorEnabled(false)
		}

		copts.IOStreams = io

		return nil
	}
}

// WithLogger sets a previously instantiated logger.
func WithLogger(logger *logrus.Entry) CliOption {
	return func(copts *CliOptions) error {
		copts.Logger = logger
		return nil
	}
}

// WithDefaultLogger sets up the built in logger based on provided config found
// from the ConfigManager.
func WithDefaultLogger() CliOption {
	return func(copts *CliOptions) error {
		if copts.Logger != nil {
			return nil
		}

		if copts.ConfigManager == nil {
			copts.Logger = log.L
			return nil
		}

		var out io.Writer
		if copts.IOStreams != nil {
			out = copts.IOStreams.ErrOut
		}

		copts.Logger = NewLogger(copts.ConfigManager.Config, out)

		return nil
	}
}

// NewLogger builds a logger honouring the log type, level and timestamp
// settings of cfg. A nil out keeps logrus' default of stderr. Unknown types
// and levels fall back to basic and info, they are reported by the root
// command once flags are parsed.
func NewLogger(cfg *config.Config, out io.Writer) *logrus.Entry {
	logger := logrus.New()

	typ, _ := log.ParseType(cfg.Log.Type)
	switch typ {
	case log.QUIET:
		logger.Formatter = new(logrus.TextFormatter)
		out = io.Discard

	case log.BASIC, log.FANCY:
		formatter := new(log.TextFormatter)
		formatter.DisableColors = typ == log.BASIC || cfg.NoColor
		formatter.DisableTimestamp = !cfg.Log.Timestamps

		logger.Formatter = formatter

	case log.JSON:
		formatter := new(logrus.JSONFormatter)
		formatter.DisableTimestamp = !cfg.Log.Timestamps

		logger.Formatter = formatter
	}

	logger.Level, _ = log.ParseLevel(cfg.Log.Level)

	if out != nil {
		logger.SetOutput(out)
	}

	return logrus.NewEntry(logger)
}
