// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

// Load reads, validates and decodes the descriptor at path.
func Load(fs afero.Fs, path string) (*Descriptor, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	return Parse(raw)
}

// Parse validates and decodes a descriptor document.
func Parse(raw []byte) (*Descriptor, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("could not parse board descriptor: %w", err)
	}

	if err := Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid board descriptor: %w", err)
	}

	var d Descriptor
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &d,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("could not decode board descriptor: %w", err)
	}

	return &d, nil
}

// LoadByID reads <dir>/<id>.json.
func LoadByID(fs afero.Fs, dir, id string) (*Descriptor, error) {
	path := filepath.Join(dir, id+".json")

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s (looked in %s)", errs.ErrUnknownBoard, id, dir)
	}

	return Load(fs, path)
}

// List returns the identifiers of every descriptor in dir, sorted.
func List(fs afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(ids)

	return ids, nil
}
