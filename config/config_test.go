// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	c, err := NewDefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "fancy", c.Log.Type)
	assert.False(t, c.NoColor)
	assert.NotEmpty(t, c.Host)
	assert.NotEmpty(t, c.Paths.Packages)
}

func TestDefault(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"log.level", "info"},
		{"log.type", "fancy"},
		{"no_color", "false"},
		{"paths.packages", ""},
		{"does.not.exist", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, Default(tt.key))
		})
	}
}

func TestYamlFeeder(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/ch32v/config.yaml", []byte(`
log:
  level: debug
paths:
  packages: /opt/pio/packages
upload_protocol: isp
`), 0o644))

	cm, err := NewConfigManager(WithFileFs(fs, "/etc/ch32v/config.yaml", false))
	require.NoError(t, err)

	assert.Equal(t, "debug", cm.Config.Log.Level)
	assert.Equal(t, "fancy", cm.Config.Log.Type)
	assert.Equal(t, "/opt/pio/packages", cm.Config.Paths.Packages)
	assert.Equal(t, "isp", cm.Config.UploadProtocol)
}

func TestWithFileFsCreatesMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	cm, err := NewConfigManager(WithFileFs(fs, "/home/u/.config/ch32v/config.yaml", true))
	require.NoError(t, err)
	assert.Equal(t, "/home/u/.config/ch32v/config.yaml", cm.ConfigFile)

	data, err := afero.ReadFile(fs, "/home/u/.config/ch32v/config.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "level: info")
}

func TestWithFileFsRejectsExtension(t *testing.T) {
	_, err := NewConfigManager(WithFileFs(afero.NewMemMapFs(), "/config.toml", false))
	assert.Error(t, err)
}

func TestYamlFeederWriteMergeKeepsUnknownKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/c.yaml", []byte("custom: 1\nlog:\n  level: trace\n"), 0o644))

	c, err := NewDefaultConfig()
	require.NoError(t, err)
	c.Log.Level = "warn"

	require.NoError(t, YamlFeeder{File: "/c.yaml", Fs: fs}.Write(c, true))

	data, err := afero.ReadFile(fs, "/c.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "custom: 1")
	assert.Contains(t, string(data), "level: warn")
}

func TestEnvFeeder(t *testing.T) {
	env := map[string]string{
		"CH32V_LOG_LEVEL":       "trace",
		"CH32V_NO_COLOR":        "true",
		"CH32V_PATHS_BOARDS":    "/srv/boards",
		"CH32V_UPLOAD_PROTOCOL": "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	c, err := NewDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, EnvFeeder{Lookup: lookup}.Feed(c))

	assert.Equal(t, "trace", c.Log.Level)
	assert.True(t, c.NoColor)
	assert.Equal(t, "/srv/boards", c.Paths.Boards)
	assert.Empty(t, c.UploadProtocol)
}

func TestEnvFeederInvalidBool(t *testing.T) {
	lookup := func(k string) (string, bool) {
		if k == "CH32V_NO_COLOR" {
			return "sometimes", true
		}
		return "", false
	}

	c, err := NewDefaultConfig()
	require.NoError(t, err)
	assert.Error(t, EnvFeeder{Lookup: lookup}.Feed(c))
}

func TestFromContext(t *testing.T) {
	cm, err := NewConfigManager()
	require.NoError(t, err)
	cm.Config.Host = "darwin"

	ctx := WithConfigManager(context.Background(), cm)
	assert.Equal(t, "darwin", G(ctx).Host)
	assert.Same(t, C.Config, G(context.Background()))
}
