// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package packages

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/pio/packages/framework-wch-noneos-sdk/Core", 0o755))
	require.NoError(t, afero.WriteFile(fs,
		"/pio/packages/framework-wch-noneos-sdk/package.json",
		[]byte(`{"name": "framework-wch-noneos-sdk", "version": "2.10000.0"}`),
		0o644,
	))
	require.NoError(t, afero.WriteFile(fs,
		"/pio/packages/tool-wchisp/package.json",
		[]byte(`{"name": `),
		0o644,
	))

	return &Resolver{Fs: fs, Root: "/pio/packages"}
}

func TestDir(t *testing.T) {
	r := newResolver(t)

	dir, err := r.Dir("framework-wch-noneos-sdk")
	require.NoError(t, err)
	assert.Equal(t, "/pio/packages/framework-wch-noneos-sdk", dir)
	assert.True(t, r.Has("framework-wch-noneos-sdk"))
}

func TestNewResolverRoot(t *testing.T) {
	r := NewResolver("/pio/packages")
	assert.Equal(t, "/pio/packages", r.Root)
	assert.NotNil(t, r.Fs)
}

func TestDirMissing(t *testing.T) {
	r := newResolver(t)

	_, err := r.Dir("framework-wch-freertos")
	require.Error(t, err)

	var merr *MissingPackageError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "framework-wch-freertos", merr.Name)
	assert.Equal(t, "/pio/packages", merr.Dir)
	assert.True(t, errs.IsMissingFrameworkPackageError(err))
	assert.Contains(t, err.Error(), "framework-wch-freertos")
	assert.False(t, r.Has("framework-wch-freertos"))
}

func TestVersion(t *testing.T) {
	r := newResolver(t)

	v, err := r.Version("framework-wch-noneos-sdk")
	require.NoError(t, err)
	assert.Equal(t, "2.10000.0", v)

	_, err = r.Version("tool-wchisp")
	assert.ErrorContains(t, err, "could not parse manifest")
}
