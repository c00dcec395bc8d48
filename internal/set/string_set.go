// SPDX-License-Identifier: MIT
//
// Copyright (c) 2019 GitHub Inc.
//               2022 Unikraft GmbH.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package set

import "sort"

var exists = struct{}{}

// StringSet is an insertion-ordered set of strings.
type StringSet struct {
	v []string
	m map[string]struct{}
}

// NewStringSet returns a new StringSet initialized with the given values, if
// any are provided.
func NewStringSet(values ...string) *StringSet {
	s := &StringSet{
		m: make(map[string]struct{}, len(values)),
		v: make([]string, 0, len(values)),
	}

	s.Add(values...)

	return s
}

func (s *StringSet) Add(values ...string) *StringSet {
	for _, value := range values {
		if s.Contains(value) {
			continue
		}
		s.m[value] = exists
		s.v = append(s.v, value)
	}

	return s
}

func (s *StringSet) Remove(values ...string) *StringSet {
	for _, value := range values {
		if !s.Contains(value) {
			continue
		}
		delete(s.m, value)
		s.v = sliceWithout(s.v, value)
	}

	return s
}

func sliceWithout(s []string, v string) []string {
	for i, item := range s {
		if item == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func (s *StringSet) Contains(value string) bool {
	_, ok := s.m[value]
	return ok
}

func (s *StringSet) ContainsAnyOf(values ...string) bool {
	for _, value := range values {
		if s.Contains(value) {
			return true
		}
	}
	return false
}

func (s *StringSet) Len() int {
	return len(s.m)
}

// ToSlice returns the members in insertion order.
func (s *StringSet) ToSlice() []string {
	return append([]string(nil), s.v...)
}

// Sorted returns the members in lexical order.
func (s *StringSet) Sorted() []string {
	out := s.ToSlice()
	sort.Strings(out)
	return out
}

func (s1 *StringSet) Equal(s2 *StringSet) bool {
	if s1.Len() != s2.Len() {
		return false
	}
	for _, v := range s1.v {
		if !s2.Contains(v) {
			return false
		}
	}
	return true
}
