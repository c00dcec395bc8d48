// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// EnvFeeder feeds using environment variables named by each attribute's `env`
// tag.
type EnvFeeder struct {
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// Feed the environment variables into the given structure.
func (f EnvFeeder) Feed(structure interface{}) error {
	lookup := f.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	v := reflect.ValueOf(structure)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fmt.Errorf("cannot feed nil structure")
		}
		v = v.Elem()
	}

	return feedEnv(v, lookup)
}

func feedEnv(v reflect.Value, lookup func(string) (string, bool)) error {
	if v.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		sf := v.Type().Field(i)

		if field.Kind() == reflect.Struct {
			if err := feedEnv(field, lookup); err != nil {
				return err
			}
			continue
		}

		name := sf.Tag.Get("env")
		if name == "" {
			continue
		}

		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			field.SetBool(b)
		case reflect.Int:
			n, err := strconv.ParseInt(value, 0, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			field.SetInt(n)
		}
	}

	return nil
}

// Do nothing, we do not set the environment variables based on the
// given interface.
func (f EnvFeeder) Write(structure interface{}, merge bool) error {
	return nil
}
