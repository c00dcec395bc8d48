// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package plan accumulates the compiler, assembler and linker configuration
// contributed by each framework layer for a single build.
package plan

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// Var names one of the flag lists of a plan.
type Var string

const (
	ASFLAGS   Var = "ASFLAGS"
	ASPPFLAGS Var = "ASPPFLAGS"
	CFLAGS    Var = "CFLAGS"
	CCFLAGS   Var = "CCFLAGS"
	CXXFLAGS  Var = "CXXFLAGS"
	LINKFLAGS Var = "LINKFLAGS"
)

// Vars lists the flag lists in rendering order.
func Vars() []Var {
	return []Var{ASFLAGS, ASPPFLAGS, CFLAGS, CCFLAGS, CXXFLAGS, LINKFLAGS}
}

// Define is a preprocessor macro, optionally with a value.
type Define struct {
	Name  string
	Value string
}

func (d Define) String() string {
	if d.Value == "" {
		return d.Name
	}
	return d.Name + "=" + d.Value
}

// SourceSet is a directory compiled into the build, either as objects linked
// directly or archived into a static library.
type SourceSet struct {
	BuildDir  string
	SourceDir string
	Filter    Filter
}

// Plan is the build configuration composed by the framework layers. Every
// mutation is additive except ReplaceLDScript.
type Plan struct {
	flags map[Var][]string

	CPPPath    []string
	CPPDefines []Define
	Libs       []string
	Sources    []SourceSet
	Libraries  []SourceSet
	LDScript   string

	// Scripts are external build scripts the plan delegates to, such as an
	// Arduino core's platformio-build.py.
	Scripts []string
}

// New returns an empty plan.
func New() *Plan {
	return &Plan{flags: map[Var][]string{}}
}

// Append adds flags to the end of v.
func (p *Plan) Append(v Var, flags ...string) {
	if p.flags == nil {
		p.flags = map[Var][]string{}
	}
	p.flags[v] = append(p.flags[v], flags...)
}

// Flags returns a copy of the flags accumulated in v.
func (p *Plan) Flags(v Var) []string {
	return append([]string{}, p.flags[v]...)
}

// AddInclude appends include directories.
func (p *Plan) AddInclude(dirs ...string) {
	p.CPPPath = append(p.CPPPath, dirs...)
}

// AddDefine appends a macro. A single "NAME=VALUE" argument is split.
func (p *Plan) AddDefine(name string, value ...string) {
	d := Define{Name: name}
	if len(value) > 0 {
		d.Value = value[0]
	} else if k, v, ok := strings.Cut(name, "="); ok {
		d = Define{Name: k, Value: v}
	}
	p.CPPDefines = append(p.CPPDefines, d)
}

// HasDefine reports whether a macro called name was added.
func (p *Plan) HasDefine(name string) bool {
	for _, d := range p.CPPDefines {
		if d.Name == name {
			return true
		}
	}
	return false
}

// AddLibs appends libraries passed to the linker as -l<name>.
func (p *Plan) AddLibs(libs ...string) {
	p.Libs = append(p.Libs, libs...)
}

// BuildSources queues srcDir to be compiled into buildDir and linked.
func (p *Plan) BuildSources(buildDir, srcDir string, filter Filter) {
	p.Sources = append(p.Sources, SourceSet{BuildDir: buildDir, SourceDir: srcDir, Filter: filter})
}

// BuildLibrary queues srcDir to be compiled into a static library.
func (p *Plan) BuildLibrary(buildDir, srcDir string, filter Filter) {
	p.Libraries = append(p.Libraries, SourceSet{BuildDir: buildDir, SourceDir: srcDir, Filter: filter})
}

// ReplaceLDScript sets the active linker script.
func (p *Plan) ReplaceLDScript(path string) {
	p.LDScript = path
}

// AddScript delegates part of the build to an external script.
func (p *Plan) AddScript(path string) {
	p.Scripts = append(p.Scripts, path)
}

// Env returns every non-empty variable in PlatformIO construction variable
// form, e.g. "CCFLAGS" => "-Os -Wall".
func (p *Plan) Env() map[string]string {
	env := map[string]string{}

	for _, v := range Vars() {
		if flags := p.flags[v]; len(flags) > 0 {
			env[string(v)] = strings.Join(flags, " ")
		}
	}

	if len(p.CPPPath) > 0 {
		env["CPPPATH"] = strings.Join(p.CPPPath, " ")
	}

	if len(p.CPPDefines) > 0 {
		defines := make([]string, len(p.CPPDefines))
		for i, d := range p.CPPDefines {
			defines[i] = d.String()
		}
		env["CPPDEFINES"] = strings.Join(defines, " ")
	}

	if len(p.Libs) > 0 {
		env["LIBS"] = strings.Join(p.Libs, " ")
	}

	if p.LDScript != "" {
		env["LDSCRIPT_PATH"] = p.LDScript
	}

	return env
}

// PrintInfo renders the plan as a tree rooted at name.
func (p *Plan) PrintInfo(name string) string {
	tree := treeprint.NewWithRoot(name)

	for _, v := range Vars() {
		flags := p.flags[v]
		if len(flags) == 0 {
			continue
		}

		branch := tree.AddBranch(fmt.Sprintf("%s (%d)", v, len(flags)))
		for _, f := range flags {
			branch.AddNode(f)
		}
	}

	if len(p.CPPPath) > 0 {
		branch := tree.AddBranch(fmt.Sprintf("CPPPATH (%d)", len(p.CPPPath)))
		for _, dir := range p.CPPPath {
			branch.AddNode(dir)
		}
	}

	if len(p.CPPDefines) > 0 {
		branch := tree.AddBranch(fmt.Sprintf("CPPDEFINES (%d)", len(p.CPPDefines)))
		for _, d := range p.CPPDefines {
			branch.AddNode(d.String())
		}
	}

	if len(p.Libs) > 0 {
		tree.AddNode(fmt.Sprintf("LIBS: %s", strings.Join(p.Libs, " ")))
	}

	for _, set := range []struct {
		title string
		sets  []SourceSet
	}{
		{"sources", p.Sources},
		{"libraries", p.Libraries},
	} {
		if len(set.sets) == 0 {
			continue
		}

		branch := tree.AddBranch(fmt.Sprintf("%s (%d)", set.title, len(set.sets)))
		for _, s := range set.sets {
			node := branch.AddBranch(s.BuildDir)
			node.AddNode(fmt.Sprintf("src:    %s", s.SourceDir))
			if len(s.Filter) > 0 {
				node.AddNode(fmt.Sprintf("filter: %s", s.Filter))
			}
		}
	}

	for _, script := range p.Scripts {
		tree.AddNode(fmt.Sprintf("script: %s", script))
	}

	if p.LDScript != "" {
		tree.AddNode(fmt.Sprintf("ldscript: %s", p.LDScript))
	}

	return tree.String()
}
