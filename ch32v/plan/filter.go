// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2024, The platform-ch32v Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package plan

import (
	"fmt"
	"path"
	"strings"

	"github.com/gobwas/glob"
)

// Rule is a single `+<pattern>` or `-<pattern>` entry of a source filter.
type Rule struct {
	Include bool
	Pattern string
}

func (r Rule) String() string {
	if r.Include {
		return "+<" + r.Pattern + ">"
	}
	return "-<" + r.Pattern + ">"
}

// Filter is an ordered list of include and exclude rules applied to paths
// relative to a source directory.
type Filter []Rule

// Include returns a filter including every pattern.
func Include(patterns ...string) Filter {
	f := make(Filter, 0, len(patterns))
	for _, p := range patterns {
		f = append(f, Rule{Include: true, Pattern: p})
	}
	return f
}

// Exclude appends an exclude rule for every pattern.
func (f Filter) Exclude(patterns ...string) Filter {
	out := append(Filter{}, f...)
	for _, p := range patterns {
		out = append(out, Rule{Include: false, Pattern: p})
	}
	return out
}

// Include appends an include rule for every pattern.
func (f Filter) Include(patterns ...string) Filter {
	out := append(Filter{}, f...)
	for _, p := range patterns {
		out = append(out, Rule{Include: true, Pattern: p})
	}
	return out
}

// ParseFilter reads the `+<a> -<b>` syntax.
func ParseFilter(s string) (Filter, error) {
	var f Filter

	rest := strings.TrimSpace(s)
	for rest != "" {
		if len(rest) < 3 || (rest[0] != '+' && rest[0] != '-') || rest[1] != '<' {
			return nil, fmt.Errorf("malformed source filter near %q", rest)
		}

		end := strings.IndexByte(rest, '>')
		if end < 0 {
			return nil, fmt.Errorf("unterminated source filter rule %q", rest)
		}

		f = append(f, Rule{Include: rest[0] == '+', Pattern: rest[2:end]})
		rest = strings.TrimSpace(rest[end+1:])
	}

	return f, nil
}

func (f Filter) String() string {
	rules := make([]string, len(f))
	for i, r := range f {
		rules[i] = r.String()
	}
	return strings.Join(rules, " ")
}

// Match reports whether relpath is selected. The last rule matching the
// path, or one of its parent directories, decides; paths matching no rule
// are excluded.
func (f Filter) Match(relpath string) (bool, error) {
	relpath = path.Clean(strings.TrimPrefix(relpath, "./"))

	candidates := []string{relpath}
	for dir := path.Dir(relpath); dir != "." && dir != "/"; dir = path.Dir(dir) {
		candidates = append(candidates, dir)
	}

	selected := false
	for _, r := range f {
		g, err := glob.Compile(r.Pattern, '/')
		if err != nil {
			return false, fmt.Errorf("invalid pattern in %s: %w", r, err)
		}

		if matchAny(g, candidates) {
			selected = r.Include
		}
	}

	return selected, nil
}

func matchAny(g glob.Glob, paths []string) bool {
	for _, p := range paths {
		if g.Match(p) {
			return true
		}
	}
	return false
}
