// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package errs

import "errors"

var (
	// ErrUnknownChip is returned when a chip name has no matching architecture,
	// ABI or classification rule.
	ErrUnknownChip = errors.New("unknown chip")

	// ErrUnmappedStartupFile is returned when no startup assembly file can be
	// selected for a board.
	ErrUnmappedStartupFile = errors.New("unmapped startup file")

	// ErrMissingFrameworkPackage is returned when a package directory required
	// by a framework layer is absent.
	ErrMissingFrameworkPackage = errors.New("missing package")

	// ErrUnsupportedUploadProtocol is returned when the selected upload
	// protocol is not one of the recognized protocols.
	ErrUnsupportedUploadProtocol = errors.New("unsupported upload protocol")

	// ErrMultipleVariantMatches is returned when more than one Arduino variant
	// folder matches a chip.
	ErrMultipleVariantMatches = errors.New("multiple variant matches")

	// ErrUnknownFramework is returned when a framework name is not registered.
	ErrUnknownFramework = errors.New("unknown framework")

	// ErrUnknownBoard is returned when a board identifier cannot be found.
	ErrUnknownBoard = errors.New("unknown board")
)

// IsUnknownChipError returns true if the unwrapped error is ErrUnknownChip
func IsUnknownChipError(err error) bool {
	return errors.Is(err, ErrUnknownChip)
}

// IsUnmappedStartupFileError returns true if the unwrapped error is
// ErrUnmappedStartupFile
func IsUnmappedStartupFileError(err error) bool {
	return errors.Is(err, ErrUnmappedStartupFile)
}

// IsMissingFrameworkPackageError returns true if the unwrapped error is
// ErrMissingFrameworkPackage
func IsMissingFrameworkPackageError(err error) bool {
	return errors.Is(err, ErrMissingFrameworkPackage)
}

// IsUnsupportedUploadProtocolError returns true if the unwrapped error is
// ErrUnsupportedUploadProtocol
func IsUnsupportedUploadProtocolError(err error) bool {
	return errors.Is(err, ErrUnsupportedUploadProtocol)
}

// IsMultipleVariantMatchesError returns true if the unwrapped error is
// ErrMultipleVariantMatches
func IsMultipleVariantMatchesError(err error) bool {
	return errors.Is(err, ErrMultipleVariantMatches)
}

// IsFatal reports whether the error reflects a gap in one of the static
// tables, which must abort generation or the build.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnknownChip) ||
		errors.Is(err, ErrUnmappedStartupFile) ||
		errors.Is(err, ErrMissingFrameworkPackage)
}
