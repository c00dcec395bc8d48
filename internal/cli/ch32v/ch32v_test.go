// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2023, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

package ch32v_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2" //nolint:stylecheck
	. "github.com/onsi/gomega"    //nolint:stylecheck

	"github.com/Community-PIO-CH32V/platform-ch32v/internal/errs"
)

var _ = Describe("ch32v", func() {
	var e *env

	BeforeEach(func() {
		e = newEnv()
	})

	Describe("help", func() {
		It("should list commands under their groups", func() {
			stdout, _, err := e.run("--help")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring("BUILD COMMANDS\n"))
			Expect(stdout).To(MatchRegexp(`(?m)^  ldscript +Generate the linker script of a board$`))
		})

		It("should suggest a subcommand close to a mistyped one", func() {
			_, stderr, err := e.run("boards", "lst")
			Expect(err).ToNot(HaveOccurred())
			Expect(stderr).To(ContainSubstring(`unknown command "lst" for "ch32v boards"`))
			Expect(stderr).To(ContainSubstring("\tlist\n"))
		})
	})

	Describe("configuration", func() {
		It("should reject an unknown log level", func() {
			e.cfgm.Config.Log.Level = "loud"

			_, _, err := e.run("version")
			Expect(err).To(MatchError(ContainSubstring(`unknown log level "loud"`)))
		})
	})

	Describe("version", func() {
		It("should print the version and exit gracefully", func() {
			stdout, _, err := e.run("version")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(MatchRegexp(`^ch32v .+\n$`))
		})

		It("should reject positional arguments", func() {
			_, _, err := e.run("version", "some-arg")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("boards generate", func() {
		It("should write one descriptor per board", func() {
			_, _, err := e.run("boards", "generate")
			Expect(err).ToNot(HaveOccurred())

			for _, id := range []string{"genericCH32V307VCT6", "genericCH32V003F4P6", "ch32v307_evt"} {
				Expect(filepath.Join(e.cfgm.Config.Paths.Boards, id+".json")).To(BeARegularFile())
			}
		})

		It("should write into the directory given with --output", func() {
			out := filepath.Join(e.dir, "elsewhere")

			_, _, err := e.run("boards", "generate", "--output", out)
			Expect(err).ToNot(HaveOccurred())
			Expect(filepath.Join(out, "ch32v003f4p6_evt_r0.json")).To(BeARegularFile())
		})

		When("invoked with --check", func() {
			BeforeEach(func() {
				_, _, err := e.run("boards", "generate")
				Expect(err).ToNot(HaveOccurred())
			})

			It("should pass on freshly generated descriptors", func() {
				stdout, _, err := e.run("boards", "generate", "--check")
				Expect(err).ToNot(HaveOccurred())
				Expect(stdout).To(BeEmpty())
			})

			It("should print a diff and fail on a stale descriptor", func() {
				path := filepath.Join(e.cfgm.Config.Paths.Boards, "ch32v307_evt.json")
				Expect(os.WriteFile(path, []byte("{}\n"), 0o644)).To(Succeed())

				stdout, _, err := e.run("boards", "generate", "--check")
				Expect(err).To(MatchError(ContainSubstring("1 board descriptors")))
				Expect(stdout).To(ContainSubstring(path))
				Expect(stdout).To(ContainSubstring("-{}\n"))
				Expect(stdout).To(ContainSubstring(`+  "name": "CH32V307 EVT",`))

				raw, err := os.ReadFile(path)
				Expect(err).ToNot(HaveOccurred())
				Expect(string(raw)).To(Equal("{}\n"))
			})
		})
	})

	Describe("boards list", func() {
		It("should list the built-in boards", func() {
			stdout, _, err := e.run("boards", "list", "-o", "list")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring("genericCH32V307VCT6"))
			Expect(stdout).To(ContainSubstring("ch32v307_evt"))
		})

		It("should filter by framework", func() {
			stdout, _, err := e.run("boards", "list", "-o", "json", "--framework", "zephyr")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring(`"id":"ch32v003f4p6_evt_r0"`))
			Expect(stdout).ToNot(ContainSubstring("genericCH32V307VCT6"))
		})

		It("should render memory and frequency in human units", func() {
			stdout, _, err := e.run("boards", "list", "-o", "json", "--series", "ch32v307")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring(`"frequency":"144 MHz"`))
			Expect(stdout).To(ContainSubstring(`"ram":"64 KiB"`))
			Expect(stdout).ToNot(ContainSubstring("CH32V003"))
		})

		It("should list generated descriptors with --installed", func() {
			_, _, err := e.run("boards", "generate")
			Expect(err).ToNot(HaveOccurred())

			stdout, _, err := e.run("boards", "list", "--installed", "-o", "list")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring("ch32v203c8t6_evt_r0"))
		})
	})

	Describe("boards show", func() {
		It("should print a built-in board", func() {
			stdout, _, err := e.run("boards", "show", "ch32v307_evt")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring(`"vendor": "SCDZ"`))
		})

		It("should prefer the descriptor file of the boards directory", func() {
			_, _, err := e.run("boards", "generate")
			Expect(err).ToNot(HaveOccurred())

			path := filepath.Join(e.cfgm.Config.Paths.Boards, "ch32v307_evt.json")
			raw, err := os.ReadFile(path)
			Expect(err).ToNot(HaveOccurred())

			stdout, _, err := e.run("boards", "show", "ch32v307_evt")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(Equal(string(raw)))
		})

		It("should fail on an unknown board", func() {
			_, _, err := e.run("boards", "show", "nosuchboard")
			Expect(errs.IsFatal(err)).To(BeFalse())
			Expect(err).To(MatchError(errs.ErrUnknownBoard))
		})
	})

	Describe("plan", func() {
		It("should print the bare flags as construction variables", func() {
			stdout, _, err := e.run("plan", "-o", "env", "genericCH32V003F4P6")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring("LINKFLAGS="))
			Expect(stdout).To(ContainSubstring("-msmall-data-limit=8"))
			Expect(stdout).To(ContainSubstring("F_CPU=48000000L"))
			Expect(stdout).To(ContainSubstring("LIBS=m\n"))
		})

		It("should print a tree by default", func() {
			stdout, _, err := e.run("plan", "genericCH32V003F4P6")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(HavePrefix("genericCH32V003F4P6\n"))
			Expect(stdout).To(ContainSubstring("CCFLAGS"))
		})

		It("should honour --small-data-limit", func() {
			stdout, _, err := e.run("plan", "-o", "env", "--small-data-limit", "4", "genericCH32V307VCT6")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring("-msmall-data-limit=4"))
		})

		It("should fail when the framework package is missing", func() {
			_, _, err := e.run("plan", "-f", "noneos-sdk", "genericCH32V307VCT6")
			Expect(errs.IsMissingFrameworkPackageError(err)).To(BeTrue())
		})

		It("should fail on an unknown framework", func() {
			_, _, err := e.run("plan", "-f", "mbed", "genericCH32V307VCT6")
			Expect(err).To(MatchError(errs.ErrUnknownFramework))
		})

		It("should reject an unknown output format", func() {
			_, _, err := e.run("plan", "-o", "xml", "genericCH32V307VCT6")
			Expect(err).To(MatchError(ContainSubstring("unsupported output format")))
		})
	})

	Describe("ldscript", func() {
		It("should print the script of a CH32V003 board", func() {
			stdout, _, err := e.run("ldscript", "--print", "ch32v003f4p6_evt_r0")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring("__stack_size = 256;"))
			Expect(stdout).To(ContainSubstring("LENGTH = 16K"))
			Expect(stdout).To(ContainSubstring("LENGTH = 2K"))
		})

		It("should write Link.ld into the build directory", func() {
			_, _, err := e.run("ldscript", "--stack-size", "1024", "genericCH32V307VCT6")
			Expect(err).ToNot(HaveOccurred())

			raw, err := os.ReadFile(filepath.Join(e.cfgm.Config.Paths.Build, "Link.ld"))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring("__stack_size = 1024;"))
		})

		It("should refuse to both print and write the script", func() {
			_, _, err := e.run("ldscript", "--print", "-o", "Link.ld", "genericCH32V307VCT6")
			Expect(err).To(MatchError("flags --output and --print cannot be combined"))
		})

		It("should report an unknown template placeholder", func() {
			tpl := filepath.Join(e.dir, "Link.tpl")
			Expect(os.WriteFile(tpl, []byte("RAM = #ram;\nROM = #rom;\n"), 0o644)).To(Succeed())

			_, _, err := e.run("ldscript", "--print", "-t", tpl, "genericCH32V307VCT6")
			Expect(err).To(MatchError(ContainSubstring("#rom")))
		})
	})

	Describe("upload", func() {
		It("should print the minichlink invocation", func() {
			stdout, _, err := e.run("upload", "--dry-run", "-p", "minichlink", "ch32v003f4p6_evt_r0", "fw.bin")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(Equal("minichlink -w fw.bin flash -b\n"))
		})

		It("should print the wchisp invocation", func() {
			stdout, _, err := e.run("upload", "--dry-run", "-p", "isp", "genericCH32V203C8T6", "fw.bin")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(Equal("wchisp flash fw.bin\n"))
		})

		It("should substitute the firmware into a custom command", func() {
			stdout, _, err := e.run("upload", "--dry-run", "-p", "custom", "-c", "flasher --file $SOURCE", "genericCH32V203C8T6", "fw.bin")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(Equal("flasher --file fw.bin\n"))
		})

		It("should drive openocd for the board protocol", func() {
			stdout, _, err := e.run("upload", "--dry-run", "ch32v307_evt", "fw.elf")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(HavePrefix("openocd -c 'debug_level 1'"))
			Expect(stdout).To(ContainSubstring("-f wch-riscv.cfg"))
			Expect(stdout).To(ContainSubstring("'load_image {fw.elf} 0x0 elf'"))
			Expect(stdout).ToNot(ContainSubstring(" -s "))
		})

		It("should skip an unsupported protocol", func() {
			stdout, _, err := e.run("upload", "--dry-run", "-p", "jlink", "ch32v307_evt", "fw.elf")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(BeEmpty())
		})
	})

	Describe("isp", func() {
		It("should run the actions in order", func() {
			stdout, _, err := e.run("isp", "--dry-run", "config-unprotect", "reset")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(Equal("wchisp config unprotect\nwchisp reset\n"))
		})

		It("should reject an unknown action", func() {
			_, _, err := e.run("isp", "--dry-run", "format")
			Expect(err).To(MatchError(ContainSubstring("unknown isp action")))
		})
	})

	Describe("firmware", func() {
		It("should convert the program and print its size", func() {
			stdout, _, err := e.run("firmware", "--dry-run")
			Expect(err).ToNot(HaveOccurred())

			build := e.cfgm.Config.Paths.Build
			elf := filepath.Join(build, "firmware.elf")

			Expect(stdout).To(Equal(
				"riscv-none-embed-objcopy -O binary " + elf + " " + filepath.Join(build, "firmware.bin") + "\n" +
					"riscv-none-embed-objcopy -O ihex " + elf + " " + filepath.Join(build, "firmware.hex") + "\n" +
					"riscv-none-embed-size --format=berkeley " + elf + "\n",
			))
		})
	})

	Describe("packages", func() {
		writePackage := func(name, version string) {
			dir := filepath.Join(e.cfgm.Config.Paths.Packages, name)
			Expect(os.MkdirAll(dir, 0o755)).To(Succeed())
			Expect(os.WriteFile(
				filepath.Join(dir, "package.json"),
				[]byte(`{"name": "`+name+`", "version": "`+version+`"}`),
				0o644,
			)).To(Succeed())
		}

		It("should report installed packages", func() {
			writePackage("framework-wch-noneos-sdk", "2.10000.0")

			stdout, _, err := e.run("packages", "-o", "json", "-f", "noneos-sdk", "ch32v307_evt")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring(`{"installed":"2.10000.0","name":"framework-wch-noneos-sdk","requirement":"~2.10000.0","status":"ok"}`))
		})

		It("should fail the check on an out of range package", func() {
			writePackage("framework-wch-noneos-sdk", "1.0.0")

			stdout, _, err := e.run("packages", "--check", "-o", "list", "-f", "noneos-sdk", "ch32v307_evt")
			Expect(err).To(MatchError(ContainSubstring("required packages")))
			Expect(stdout).To(ContainSubstring("does not satisfy"))
		})

		It("should only require the tool of the chosen protocol", func() {
			stdout, _, err := e.run("packages", "-o", "list", "-f", "noneos-sdk", "-p", "isp", "ch32v307_evt")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring("tool-wchisp"))
			Expect(stdout).ToNot(ContainSubstring("tool-minichlink"))
		})
	})

	Describe("debug", func() {
		It("should print the openocd setup", func() {
			stdout, _, err := e.run("debug", "ch32v307_evt")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring("tool: wch-link"))
			Expect(stdout).To(ContainSubstring("-f wch-riscv.cfg"))
			Expect(stdout).To(ContainSubstring("  target extended-remote $DEBUG_PORT\n"))
		})

		It("should set the adapter speed", func() {
			stdout, _, err := e.run("debug", "--speed", "1000", "ch32v307_evt")
			Expect(err).ToNot(HaveOccurred())
			Expect(stdout).To(ContainSubstring("-c 'adapter speed 1000'"))
		})

		It("should reject an unknown tool", func() {
			_, _, err := e.run("debug", "--tool", "jlink", "ch32v307_evt")
			Expect(err).To(MatchError(ContainSubstring(`unknown debug tool "jlink"`)))
		})
	})
})
