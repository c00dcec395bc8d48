// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

import (
	"context"
	"strings"

	"github.com/Community-PIO-CH32V/platform-ch32v/ch32v/chip"
	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
	"github.com/Community-PIO-CH32V/platform-ch32v/log"
)

// ArduinoCoreOpenWCH is the build.core value of the openwch Arduino core.
const ArduinoCoreOpenWCH = "openwch"

// arduinoSeries are the exact series supported by the openwch core.
var arduinoSeries = []string{
	"ch32v003",
	"ch32v103",
	"ch32v203",
	"ch32v307",
	"ch32x035",
}

// ArduinoVariants are the variant folders shipped by the openwch core,
// relative to its variants directory. The leaf is a part-number prefix.
func ArduinoVariants() []string {
	return []string{
		"CH32V00x/CH32V003F4",
		"CH32V00x/CH32V003J4",
		"CH32V10x/CH32V103R8T6",
		"CH32V20x/CH32V203C6",
		"CH32V20x/CH32V203C8",
		"CH32V20x/CH32V203G6",
		"CH32V20x/CH32V203G8",
		"CH32V20x/CH32V203K8",
		"CH32V20x/CH32V203RB",
		"CH32V30x/CH32V307VCT6",
		"CH32X035/CH32X035C8T6",
		"CH32X035/CH32X035G8U",
		"CH32X035/CH32X035F8U",
	}
}

// SupportsArduino reports whether the openwch core covers info's series.
func SupportsArduino(info chip.Info) bool {
	return contains(arduinoSeries, info.Series())
}

// matchVariants returns every variant whose leaf is a prefix of the part
// number.
func matchVariants(variants []string, info chip.Info) []string {
	name := strings.ToUpper(info.Name)

	var ret []string
	for _, v := range variants {
		leaf := v
		if i := strings.LastIndex(v, "/"); i >= 0 {
			leaf = v[i+1:]
		}
		if leaf != "" && strings.HasPrefix(name, strings.ToUpper(leaf)) {
			ret = append(ret, v)
		}
	}

	return ret
}

// applyArduino attaches the openwch core to d when info supports it. An
// ambiguous variant match is logged and leaves the variant unset.
func applyArduino(ctx context.Context, d *Descriptor, info chip.Info, variants []string) {
	if !SupportsArduino(info) {
		return
	}

	d.Frameworks = append(d.Frameworks, FrameworkArduino)
	d.Build.Core = ArduinoCoreOpenWCH

	matches := matchVariants(variants, info)
	switch len(matches) {
	case 0:
		log.G(ctx).
			WithField("chip", info.Name).
			Debug("no arduino variant")
	case 1:
		d.Build.Variant = matches[0]
		d.Build.Arduino = &Arduino{OpenWCH: &ArduinoCore{Variant: matches[0]}}
	default:
		log.G(ctx).
			WithField("chip", info.Name).
			WithField("variants", strings.Join(matches, ",")).
			Warnf("%s: skipping arduino variant", errs.ErrMultipleVariantMatches)
	}
}
