// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package packages locates installed PlatformIO packages.
package packages

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

// MissingPackageError is returned when a required package is not installed.
type MissingPackageError struct {
	Name string
	Dir  string
}

func (e *MissingPackageError) Error() string {
	return fmt.Sprintf("%s: %s (looked in %s)", errs.ErrMissingFrameworkPackage, e.Name, e.Dir)
}

func (e *MissingPackageError) Unwrap() error {
	return errs.ErrMissingFrameworkPackage
}

// Manifest is the subset of package.json read from an installed package.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Resolver maps package names to directories under Root.
type Resolver struct {
	Fs   afero.Fs
	Root string
}

// NewResolver returns a resolver over the OS filesystem.
func NewResolver(dir string) *Resolver {
	return &Resolver{Fs: afero.NewOsFs(), Root: dir}
}

// Dir returns the directory of the named package.
func (r *Resolver) Dir(name string) (string, error) {
	dir := filepath.Join(r.Root, name)

	ok, err := afero.DirExists(r.fs(), dir)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &MissingPackageError{Name: name, Dir: r.Root}
	}

	return dir, nil
}

// Has reports whether the named package is installed.
func (r *Resolver) Has(name string) bool {
	_, err := r.Dir(name)
	return err == nil
}

// Manifest reads the package.json of the named package.
func (r *Resolver) Manifest(name string) (*Manifest, error) {
	dir, err := r.Dir(name)
	if err != nil {
		return nil, err
	}

	raw, err := afero.ReadFile(r.fs(), filepath.Join(dir, "package.json"))
	if err != nil {
		return nil, fmt.Errorf("could not read manifest of %s: %w", name, err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("could not parse manifest of %s: %w", name, err)
	}

	return &m, nil
}

// Version returns the installed version of the named package.
func (r *Resolver) Version(name string) (string, error) {
	m, err := r.Manifest(name)
	if err != nil {
		return "", err
	}
	return m.Version, nil
}

func (r *Resolver) fs() afero.Fs {
	if r.Fs == nil {
		return afero.NewOsFs()
	}
	return r.Fs
}
