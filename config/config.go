// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

// Config holds every user-tunable setting of the ch32v tool. Each attribute
// can be sourced from the YAML config file, the environment or a persistent
// command-line flag, in increasing order of precedence.
type Config struct {
	NoColor        bool   `yaml:"no_color" env:"CH32V_NO_COLOR" long:"no-color" usage:"Disable colours in console output" default:"false"`
	Host           string `yaml:"host,omitempty" env:"CH32V_HOST" long:"host" usage:"Override the host operating system used to select toolchains"`
	UploadProtocol string `yaml:"upload_protocol,omitempty" env:"CH32V_UPLOAD_PROTOCOL" long:"upload-protocol" usage:"Default upload protocol when the board does not pin one"`

	Paths struct {
		Config   string `yaml:"config,omitempty" env:"CH32V_PATHS_CONFIG" long:"config-dir" usage:"Path to the ch32v config directory"`
		Packages string `yaml:"packages,omitempty" env:"CH32V_PATHS_PACKAGES" long:"packages-dir" usage:"Path to installed toolchain and framework packages"`
		Boards   string `yaml:"boards,omitempty" env:"CH32V_PATHS_BOARDS" long:"boards-dir" usage:"Path to board descriptor files"`
		Build    string `yaml:"build,omitempty" env:"CH32V_PATHS_BUILD" long:"build-dir" usage:"Path to the project build directory"`
	} `yaml:"paths,omitempty"`

	Log struct {
		Level      string `yaml:"level" env:"CH32V_LOG_LEVEL" long:"log-level" usage:"Log level verbosity" default:"info"`
		Timestamps bool   `yaml:"timestamps" env:"CH32V_LOG_TIMESTAMPS" long:"log-timestamps" usage:"Enable log timestamps"`
		Type       string `yaml:"type" env:"CH32V_LOG_TYPE" long:"log-type" usage:"Log type" default:"fancy"`
	} `yaml:"log"`
}

type ConfigDetail struct {
	Key           string
	Description   string
	AllowedValues []string
}

// Descriptions of each configuration parameter as well as valid values
var configDetails = []ConfigDetail{
	{
		Key:         "no_color",
		Description: "disable colours in console output",
	},
	{
		Key:         "host",
		Description: "the host operating system used to select toolchain packages",
		AllowedValues: []string{
			"linux",
			"darwin",
			"windows",
		},
	},
	{
		Key:         "upload_protocol",
		Description: "the default upload protocol",
		AllowedValues: []string{
			"wch-link",
			"isp",
			"minichlink",
			"custom",
		},
	},
	{
		Key:         "paths.packages",
		Description: "directory holding installed packages",
	},
	{
		Key:         "paths.boards",
		Description: "directory holding board descriptors",
	},
	{
		Key:         "paths.build",
		Description: "directory receiving build products",
	},
	{
		Key:         "log.level",
		Description: "Set the logging verbosity",
		AllowedValues: []string{
			"fatal",
			"error",
			"warn",
			"info",
			"debug",
			"trace",
		},
	},
	{
		Key:         "log.type",
		Description: "Set the logging format",
		AllowedValues: []string{
			"quiet",
			"basic",
			"fancy",
			"json",
		},
	},
	{
		Key:         "log.timestamps",
		Description: "Show timestamps with log output",
	},
}

func ConfigDetails() []ConfigDetail {
	return configDetails
}
