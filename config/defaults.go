// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
)

func NewDefaultConfig() (*Config, error) {
	c := &Config{}

	if err := setDefaults(c); err != nil {
		return nil, fmt.Errorf("could not set defaults for config: %s", err)
	}

	if len(c.Host) == 0 {
		c.Host = runtime.GOOS
	}

	// Add default path for configuration files..
	if len(c.Paths.Config) == 0 {
		c.Paths.Config = ConfigDir()
	}

	// ..for installed packages..
	if len(c.Paths.Packages) == 0 {
		c.Paths.Packages = filepath.Join(PlatformIODir(), "packages")
	}

	// ..for board descriptors..
	if len(c.Paths.Boards) == 0 {
		c.Paths.Boards = "boards"
	}

	// ..and for build products
	if len(c.Paths.Build) == 0 {
		c.Paths.Build = filepath.Join(".pio", "build")
	}

	return c, nil
}

func setDefaults(s interface{}) error {
	return setDefaultValue(reflect.ValueOf(s), "")
}

func setDefaultValue(v reflect.Value, def string) error {
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("not a pointer value")
	}

	v = reflect.Indirect(v)

	switch v.Kind() {
	case reflect.Int:
		if len(def) > 0 {
			i, err := strconv.ParseInt(def, 10, 64)
			if err != nil {
				return fmt.Errorf("could not parse default integer value: %s", err)
			}
			v.SetInt(i)
		}

	case reflect.String:
		if len(def) > 0 {
			v.SetString(def)
		}

	case reflect.Bool:
		if len(def) > 0 {
			b, err := strconv.ParseBool(def)
			if err != nil {
				return fmt.Errorf("could not parse default boolean value: %s", err)
			}
			v.SetBool(b)
		} else {
			v.SetBool(false)
		}

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			def = v.Type().Field(i).Tag.Get("default")
			if err := setDefaultValue(
				v.Field(i).Addr(),
				def,
			); err != nil {
				return err
			}
		}

	default:
		// Ignore this value and property entirely
		return nil
	}

	return nil
}
