// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package board

import "fmt"

// Patch overwrites a single field of a generated descriptor. Patches are
// applied after every other rule.
type Patch struct {
	Path  string
	Value any
	apply func(*Descriptor)
}

func (p Patch) String() string {
	return fmt.Sprintf("%s=%v", p.Path, p.Value)
}

// Apply mutates d.
func (p Patch) Apply(d *Descriptor) {
	if p.apply != nil {
		p.apply(d)
	}
}

func PatchURL(url string) Patch {
	return Patch{"url", url, func(d *Descriptor) { d.URL = url }}
}

func PatchVendor(vendor string) Patch {
	return Patch{"vendor", vendor, func(d *Descriptor) { d.Vendor = vendor }}
}

func PatchName(name string) Patch {
	return Patch{"name", name, func(d *Descriptor) { d.Name = name }}
}

// PatchFramework adds framework to the supported list unless present.
func PatchFramework(framework string) Patch {
	return Patch{"frameworks", framework, func(d *Descriptor) {
		if !d.HasFramework(framework) {
			d.Frameworks = append(d.Frameworks, framework)
		}
	}}
}

func PatchZephyrVariant(variant string) Patch {
	return Patch{"build.zephyr.variant", variant, func(d *Descriptor) {
		d.Build.Zephyr = &Zephyr{Variant: variant}
	}}
}

// PatchUploadProtocol sets the default protocol, adding it to the list of
// protocols if needed.
func PatchUploadProtocol(protocol string) Patch {
	return Patch{"upload.protocol", protocol, func(d *Descriptor) {
		d.Upload.Protocol = protocol
		for _, p := range d.Upload.Protocols {
			if p == protocol {
				return
			}
		}
		d.Upload.Protocols = append(d.Upload.Protocols, protocol)
	}}
}

func PatchOffsetAddress(addr string) Patch {
	return Patch{"upload.offset_address", addr, func(d *Descriptor) { d.Upload.OffsetAddress = addr }}
}

func PatchImageOffset(offset string) Patch {
	return Patch{"upload.image_offset", offset, func(d *Descriptor) { d.Upload.ImageOffset = offset }}
}

func PatchExtraFlags(flags string) Patch {
	return Patch{"build.extra_flags", flags, func(d *Descriptor) { d.Build.ExtraFlags = flags }}
}

func PatchOpenOCDTarget(target string) Patch {
	return Patch{"debug.openocd_target", target, func(d *Descriptor) {
		d.Debug.OpenOCDTarget = target
		d.Debug.OpenOCDConfig = ""
	}}
}
