// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package log

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// LoggerType selects how log entries are presented.
type LoggerType uint

const (
	// QUIET drops every entry.
	QUIET LoggerType = iota
	// BASIC prints plain, uncoloured lines.
	BASIC
	// FANCY prints lines with coloured level badges on a terminal.
	FANCY
	// JSON prints one JSON object per entry.
	JSON
)

var loggerTypeNames = map[LoggerType]string{
	QUIET: "quiet",
	BASIC: "basic",
	FANCY: "fancy",
	JSON:  "json",
}

func (t LoggerType) String() string {
	if name, ok := loggerTypeNames[t]; ok {
		return name
	}
	return loggerTypeNames[BASIC]
}

// ParseType returns the logger type called name, ignoring case. An empty
// name is BASIC.
func ParseType(name string) (LoggerType, error) {
	if name == "" {
		return BASIC, nil
	}

	for t, n := range loggerTypeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}

	return BASIC, fmt.Errorf("unknown log type %q, expected one of: quiet, basic, fancy, json", name)
}

// ParseLevel returns the logrus level called name. "warning" is accepted as
// an alias of "warn" and an empty name is the info level.
func ParseLevel(name string) (logrus.Level, error) {
	if name == "" {
		return logrus.InfoLevel, nil
	}

	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("unknown log level %q, expected one of: trace, debug, info, warn, error, fatal, panic", name)
	}

	return level, nil
}
