// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package chip

import (
	"testing"

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

func TestLookup(t *testing.T) {
	info, err := Lookup("ch32v307vct6")
	if err != nil {
		t.Fatal(err)
	}

	if info.FlashKB != 256 || info.SRAMKB != 64 || info.FreqMHz != 144 {
		t.Errorf("unexpected info %+v", info)
	}

	if _, err := Lookup("CH32V999ZZ"); !errs.IsUnknownChipError(err) {
		t.Errorf("expected unknown chip error, got %v", err)
	}
}

func TestDatabaseIsCopy(t *testing.T) {
	db := Database()
	db[0].Name = "MUTATED"

	if Database()[0].Name == "MUTATED" {
		t.Error("Database must not expose the backing table")
	}
}

func TestDatabaseUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, info := range Database() {
		if seen[info.Lower()] {
			t.Errorf("duplicate chip %s", info.Name)
		}
		seen[info.Lower()] = true
	}
}

func TestSeriesAndFamily(t *testing.T) {
	tests := []struct {
		chip           string
		series         string
		family         string
		withoutPackage string
	}{
		{"CH32V307VCT6", "ch32v307", "ch32v30x", "CH32V307VC"},
		{"CH32V203C8T6", "ch32v203", "ch32v20x", "CH32V203C8"},
		{"CH32V208WBU6", "ch32v208", "ch32v20x", "CH32V208WB"},
		{"CH32V003F4P6", "ch32v003", "ch32v00x", "CH32V003F4"},
		{"CH32V006K8U6", "ch32v006", "ch32v00x", "CH32V006K8"},
		{"CH32V103R8T6", "ch32v103", "ch32v10x", "CH32V103R8"},
		{"CH32X035G8U6", "ch32x035", "ch32x035", "CH32X035G8"},
		{"CH32L103C8T6", "ch32l103", "ch32l103", "CH32L103C8"},
		{"CH582F", "ch58x", "ch58x", "CH58"},
		{"CH569W", "ch56x", "ch56x", "CH56"},
		{"CH592X", "ch59x", "ch59x", "CH59"},
	}

	for _, tt := range tests {
		t.Run(tt.chip, func(t *testing.T) {
			info, err := Lookup(tt.chip)
			if err != nil {
				t.Fatal(err)
			}

			if got := info.Series(); got != tt.series {
				t.Errorf("Series() = %q, want %q", got, tt.series)
			}
			if got := Family(info.Series()); got != tt.family {
				t.Errorf("Family() = %q, want %q", got, tt.family)
			}
			if got := info.WithoutPackage(); got != tt.withoutPackage {
				t.Errorf("WithoutPackage() = %q, want %q", got, tt.withoutPackage)
			}
		})
	}
}

func TestFamilyIsTotal(t *testing.T) {
	for _, info := range Database() {
		if f := Family(info.Series()); f == "" {
			t.Errorf("no family for %s", info.Name)
		}
	}
}

func TestSizes(t *testing.T) {
	info, err := Lookup("CH32V003F4P6")
	if err != nil {
		t.Fatal(err)
	}

	if info.FlashBytes() != 16384 || info.SRAMBytes() != 2048 || info.FreqHz() != 48000000 {
		t.Errorf("unexpected sizes for %s", info.Name)
	}
}
