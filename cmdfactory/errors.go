// SPDX-License-Identifier: MIT
// Copyright (c) 2019 GitHub Inc.
// Copyright (c) 2022 Unikraft GmbH.
package cmdfactory

import (
	"fmt"
	"sort"
	"strings"
)

// FlagError marks an error caused by the command line itself, such as an
// unknown flag value or a missing argument, rather than by the work the
// command performs.
type FlagError struct {
	err error
}

// FlagErrorf formats a new FlagError.
func FlagErrorf(format string, args ...interface{}) error {
	return FlagErrorWrap(fmt.Errorf(format, args...))
}

// FlagErrorWrap marks err as a FlagError.
func FlagErrorWrap(err error) error {
	return &FlagError{err: err}
}

func (fe *FlagError) Error() string {
	return fe.err.Error()
}

func (fe *FlagError) Unwrap() error {
	return fe.err
}

// MutuallyExclusive fails when more than one of the named flags is set. Each
// entry of flags maps a flag name, without dashes, to whether it was given.
func MutuallyExclusive(flags map[string]bool) error {
	var given []string
	for name, ok := range flags {
		if ok {
			given = append(given, "--"+name)
		}
	}

	if len(given) < 2 {
		return nil
	}

	sort.Strings(given)

	return FlagErrorf("flags %s cannot be combined", strings.Join(given, " and "))
}
