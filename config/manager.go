// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/afero"
)

// Feeder populates a configuration structure from some source and may write
// it back.
type Feeder interface {
	Feed(structure interface{}) error
	Write(structure interface{}, merge bool) error
}

// ConfigManager uses the package facilities, there should be at least one
// instance of it. It holds the configuration feeders and structs.
type ConfigManager struct {
	Config     *Config
	ConfigFile string
	Feeders    []Feeder
}

type ConfigManagerOption func(cm *ConfigManager) error

func WithFeeder(feeder Feeder) ConfigManagerOption {
	return func(cm *ConfigManager) error {
		cm.AddFeeder(feeder)
		return nil
	}
}

// WithFile feeds the configuration from the YAML file on the host filesystem.
func WithFile(file string, forceCreate bool) ConfigManagerOption {
	return WithFileFs(afero.NewOsFs(), file, forceCreate)
}

// WithFileFs feeds the configuration from a YAML file on the given
// filesystem. When forceCreate is set and the file is absent, it is written
// with the current values first.
func WithFileFs(fs afero.Fs, file string, forceCreate bool) ConfigManagerOption {
	return func(cm *ConfigManager) error {
		ext := strings.Split(file, ".")
		if len(ext) == 1 {
			return fmt.Errorf("unknown file extension for config file: %s", file)
		}

		switch ext[len(ext)-1] {
		case "yaml", "yml":
		default:
			return fmt.Errorf("unsupported file extension: %s", file)
		}

		yml := YamlFeeder{File: file, Fs: fs}
		cm.ConfigFile = file

		exists, err := afero.Exists(fs, file)
		if err != nil {
			return err
		}

		if !exists {
			if !forceCreate {
				return nil
			}
			if err := yml.Write(cm.Config, forceCreate); err != nil {
				return fmt.Errorf("could not write initial config: %v", err)
			}
		}

		return WithFeeder(yml)(cm)
	}
}

// WithDefaultConfigFile feeds from DefaultConfigFile when it exists.
func WithDefaultConfigFile() ConfigManagerOption {
	return func(cm *ConfigManager) error {
		return WithFile(DefaultConfigFile(), false)(cm)
	}
}

// WithEnv feeds from the process environment.
func WithEnv() ConfigManagerOption {
	return WithFeeder(EnvFeeder{Lookup: os.LookupEnv})
}

func NewConfigManager(opts ...ConfigManagerOption) (*ConfigManager, error) {
	cm := &ConfigManager{}

	c, err := NewDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("could not seed default values for config: %s", err)
	}

	cm.Config = c

	for _, o := range opts {
		if err := o(cm); err != nil {
			return nil, fmt.Errorf("could not apply config manager option: %v", err)
		}
	}

	// Feed the config, pass the manager anyway if this fails, we still have
	// defaults
	if err := cm.Feed(); err != nil {
		return cm, fmt.Errorf("could not feed config: %v", err)
	}

	return cm, nil
}

// AddFeeder adds a feeder that provides configuration data.
func (cm *ConfigManager) AddFeeder(f Feeder) *ConfigManager {
	cm.Feeders = append(cm.Feeders, f)
	return cm
}

// Feed binds configuration data from added feeders, in order, to the config.
func (cm *ConfigManager) Feed() error {
	for _, f := range cm.Feeders {
		if err := f.Feed(cm.Config); err != nil {
			return fmt.Errorf("failed to feed config: %v", err)
		}
	}

	return nil
}

func (cm *ConfigManager) Write(merge bool) error {
	for _, f := range cm.Feeders {
		if err := f.Write(cm.Config, merge); err != nil {
			return err
		}
	}

	return nil
}

func AllowedValues(key string) []string {
	for _, details := range ConfigDetails() {
		if details.Key == key {
			return details.AllowedValues
		}
	}

	return []string{}
}

// Default returns the `default` tag of the attribute addressed by the dotted
// YAML key, e.g. "log.level".
func Default(key string) string {
	def, _ := findConfigDefault(strings.Split(key, "."), reflect.TypeOf(Config{}))
	return def
}

func findConfigDefault(path []string, t reflect.Type) (string, bool) {
	if len(path) == 0 || t.Kind() != reflect.Struct {
		return "", false
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("yaml"), ",")[0]
		if name != path[0] {
			continue
		}

		if len(path) == 1 {
			return f.Tag.Get("default"), true
		}

		return findConfigDefault(path[1:], f.Type)
	}

	return "", false
}
