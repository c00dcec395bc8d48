// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// YamlFeeder feeds using a YAML file.
type YamlFeeder struct {
	File string

	// Fs is the filesystem the file lives on, the host filesystem when nil.
	Fs afero.Fs
}

func (yf YamlFeeder) fs() afero.Fs {
	if yf.Fs == nil {
		return afero.NewOsFs()
	}
	return yf.Fs
}

func (yf YamlFeeder) Feed(structure interface{}) error {
	file, err := yf.fs().Open(filepath.Clean(yf.File))
	if err != nil {
		return fmt.Errorf("cannot open yaml file: %v", err)
	}

	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	// File is empty, ignore
	if stat.Size() == 0 {
		return nil
	}

	if err = yaml.NewDecoder(file).Decode(structure); err != nil {
		return fmt.Errorf("cannot feed config file: %v", err)
	}

	return nil
}

func (yf YamlFeeder) Write(structure interface{}, merge bool) error {
	if len(yf.File) == 0 {
		return fmt.Errorf("filename for YAML cannot be empty")
	}

	fs := yf.fs()

	if err := fs.MkdirAll(filepath.Dir(yf.File), 0o771); err != nil {
		return pathError(err)
	}

	f, err := fs.OpenFile(yf.File, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("could not open file: %v", err)
	}

	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("could not read file: %v", err)
	}

	from := yaml.Node{}
	if err := yaml.Unmarshal(data, &from); err != nil {
		return fmt.Errorf("could not unmarshal YAML: %s", err)
	}

	yml, err := yaml.Marshal(structure)
	if err != nil {
		return err
	}

	into := yaml.Node{}
	if err := yaml.Unmarshal(yml, &into); err != nil {
		return err
	}

	// Kind 0 is an uninitialised document, i.e. an empty file.
	if from.Kind != 0 && merge {
		if err := mergeMissing(&from, &into); err != nil {
			return fmt.Errorf("could not update config: %v", err)
		}
	}

	if err := f.Truncate(0); err != nil {
		return err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	return yaml.NewEncoder(f).Encode(&into)
}

// mergeMissing copies keys present in from but absent in into. Values already
// in into are left untouched.
func mergeMissing(from, into *yaml.Node) error {
	if from.Kind != into.Kind {
		return fmt.Errorf("cannot merge nodes of different kinds")
	}

	switch from.Kind {
	case yaml.DocumentNode:
		if len(from.Content) == 0 || len(into.Content) == 0 {
			return nil
		}
		return mergeMissing(from.Content[0], into.Content[0])

	case yaml.MappingNode:
		for i := 0; i+1 < len(from.Content); i += 2 {
			found := false
			for j := 0; j+1 < len(into.Content); j += 2 {
				if from.Content[i].Value != into.Content[j].Value {
					continue
				}
				found = true
				if from.Content[i+1].Kind == yaml.MappingNode && into.Content[j+1].Kind == yaml.MappingNode {
					if err := mergeMissing(from.Content[i+1], into.Content[j+1]); err != nil {
						return fmt.Errorf("at key %s: %w", from.Content[i].Value, err)
					}
				}
				break
			}
			if !found {
				into.Content = append(into.Content, from.Content[i:i+2]...)
			}
		}

	case yaml.ScalarNode, yaml.SequenceNode:
		// into wins

	default:
		return fmt.Errorf("can only merge mapping, sequence and scalar nodes")
	}

	return nil
}
