// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package arch

import "strings"

// Sub-family codes from the CH32FV2x_V3x reference manual.
var classes = []struct {
	macro    string
	prefixes []string
}{
	{"CH32V20x_D6", []string{"CH32V203F6", "CH32V203G6", "CH32V203K6", "CH32V203F8", "CH32V203G8", "CH32V203K8", "CH32V203C6", "CH32V203C8"}},
	{"CH32V20x_D8", []string{"CH32V203RB"}},
	{"CH32V20x_D8W", []string{"CH32V208GB", "CH32V208CB", "CH32V208RB", "CH32V208WB"}},
	{"CH32V30x_D8", []string{"CH32V303CB", "CH32V303RB", "CH32V303RC", "CH32V303VC"}},
	{"CH32V30x_D8C", []string{"CH32V305FB", "CH32V305RB", "CH32V307RC", "CH32V307WC", "CH32V307VC"}},
}

// Families whose SDK headers need no classification macro.
var unclassified = []string{
	"CH32V00",
	"CH32V103",
	"CH32X035",
	"CH32L103",
	"CH56",
	"CH57",
	"CH58",
	"CH59",
}

// Macros returns every classification macro known to Classify.
func Macros() []string {
	ret := make([]string, 0, len(classes))
	for _, c := range classes {
		ret = append(ret, c.macro)
	}
	return ret
}

// Classify returns the classification macro of chip. Families documented to
// have none return ok == false. Any other chip is an *UnknownChipError.
func Classify(chip string) (macro string, ok bool, err error) {
	name := strings.ToUpper(chip)

	for _, c := range classes {
		for _, prefix := range c.prefixes {
			if strings.HasPrefix(name, prefix) {
				return c.macro, true, nil
			}
		}
	}

	for _, prefix := range unclassified {
		if strings.HasPrefix(name, prefix) {
			return "", false, nil
		}
	}

	return "", false, &UnknownChipError{Chip: chip, What: "classification"}
}
