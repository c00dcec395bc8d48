// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package arch

import "strings"

// wchExtension is the vendor instruction set extension suffix.
const wchExtension = "xw"

// Hosts whose packaged toolchain cannot link the vendor extension.
var narrowingHosts = map[string]bool{
	"darwin": true,
}

// NarrowForHost strips the vendor extension from march when the toolchain
// for goos cannot handle it, e.g. rv32imacxw becomes rv32imac on darwin.
func NarrowForHost(march, goos string) string {
	if !narrowingHosts[goos] {
		return march
	}

	return strings.Replace(march, wchExtension, "", 1)
}
