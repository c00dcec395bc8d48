// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package ldscript

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues(t *testing.T) {
	p := Params{
		RAM:        20 * 1024,
		Flash:      64 * 1024,
		FlashStart: 0,
		StackSize:  2048,
	}

	got := p.Values()

	assert.Equal(t, "0x20005000", got["stack"])
	assert.Equal(t, "20K", got["ram"])
	assert.Equal(t, "64K", got["flash"])
	assert.Equal(t, "0x0", got["flash_start"])
	assert.Equal(t, "2048", got["stack_size"])
}

func TestRender(t *testing.T) {
	p := Params{RAM: 2048, Flash: 16384, FlashStart: 0x08000000, StackSize: 256}

	tests := []struct {
		name string
		tpl  string
		want string
	}{
		{"bare", "LENGTH = #ram", "LENGTH = 2K"},
		{"braced", "#{flash}B", "16KB"},
		{"escape", "## #stack", "# 0x20000800"},
		{"longest name", "#stack_size/#stack", "256/0x20000800"},
		{"flash start", "ORIGIN = #flash_start", "ORIGIN = 0x8000000"},
		{"dollar untouched", "__global_pointer$ = .", "__global_pointer$ = ."},
		{"no placeholders", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.tpl, p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		tpl  string
		msg  string
	}{
		{"unknown name", "LENGTH = #heap", "unknown placeholder #heap"},
		{"unknown braced", "\n#{heap}", "line 2, col 1"},
		{"dangling", "ORIGIN = # 0", "invalid placeholder"},
		{"trailing", "end #", "invalid placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.tpl, Params{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestDefaultTemplateRenders(t *testing.T) {
	out, err := Render(DefaultTemplate(), Params{RAM: 64 * 1024, Flash: 256 * 1024, StackSize: 2048})
	require.NoError(t, err)

	assert.NotContains(t, out, "#")
	assert.Contains(t, out, "LENGTH = 256K")
	assert.Contains(t, out, "LENGTH = 64K")
	assert.Contains(t, out, "PROVIDE( _eusrstack = 0x20010000 );")
}

func TestDefaultStackSize(t *testing.T) {
	assert.Equal(t, 256, DefaultStackSize("ch32v003f4p6"))
	assert.Equal(t, 256, DefaultStackSize("CH32V006K8U6"))
	assert.Equal(t, 2048, DefaultStackSize("ch32v307vct6"))
	assert.Equal(t, 2048, DefaultStackSize("ch582f"))
}

func TestParseAddress(t *testing.T) {
	v, err := ParseAddress("0x08000000")
	require.NoError(t, err)
	assert.Equal(t, 0x08000000, v)

	v, err = ParseAddress("")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = ParseAddress("flash")
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	p := Params{RAM: 20 * 1024, Flash: 64 * 1024, StackSize: 2048}

	t.Run("package template", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/pkg/platformio/ldscripts/Link.tpl", []byte("RAM #ram top #stack\n"), 0o644))

		out, err := Generate(fs, "/pkg/platformio/ldscripts/Link.tpl", "/build/Link.ld", p)
		require.NoError(t, err)
		assert.Equal(t, "/build/Link.ld", out)

		raw, err := afero.ReadFile(fs, out)
		require.NoError(t, err)
		assert.Equal(t, "RAM 20K top 0x20005000\n", string(raw))
	})

	t.Run("embedded fallback", func(t *testing.T) {
		fs := afero.NewMemMapFs()

		out, err := Generate(fs, "/missing/Link.tpl", "/build/Link.ld", p)
		require.NoError(t, err)

		raw, err := afero.ReadFile(fs, out)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(raw), "ENTRY( _start )"))
	})

	t.Run("overwrites", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/build/Link.ld", []byte(strings.Repeat("x", 100000)), 0o644))
		require.NoError(t, afero.WriteFile(fs, "/tpl", []byte("#flash"), 0o644))

		_, err := Generate(fs, "/tpl", "/build/Link.ld", p)
		require.NoError(t, err)

		raw, err := afero.ReadFile(fs, "/build/Link.ld")
		require.NoError(t, err)
		assert.Equal(t, "64K", string(raw))
	})

	t.Run("bad template writes nothing", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/tpl", []byte("#nope"), 0o644))

		_, err := Generate(fs, "/tpl", "/build/Link.ld", p)
		require.Error(t, err)

		exists, _ := afero.Exists(fs, "/build/Link.ld")
		assert.False(t, exists)
	})
}
