// SPDX-License-Identifier: MIT
// Copyright (c) 2017, Denis Parchenko.
// Copyright (c) 2022, Unikraft GmbH. All rights reserved.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const defaultTimestampFormat = time.RFC3339

type renderFunc func(...string) string

type ColorScheme struct {
	InfoLevel  renderFunc
	WarnLevel  renderFunc
	ErrorLevel renderFunc
	DebugLevel renderFunc
	TraceLevel renderFunc
	Timestamp  renderFunc
}

func levelStyle(bg string) renderFunc {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.AdaptiveColor{Light: "15", Dark: "0"}).
		Render
}

var (
	defaultColorScheme = &ColorScheme{
		InfoLevel:  levelStyle("8"),
		WarnLevel:  levelStyle("11"),
		ErrorLevel: levelStyle("9"),
		DebugLevel: levelStyle("12"),
		TraceLevel: lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("15")).Render,
		Timestamp:  lipgloss.NewStyle().Render,
	}
	noColorsColorScheme = &ColorScheme{
		InfoLevel:  lipgloss.NewStyle().Render,
		WarnLevel:  lipgloss.NewStyle().Render,
		ErrorLevel: lipgloss.NewStyle().Render,
		DebugLevel: lipgloss.NewStyle().Render,
		TraceLevel: lipgloss.NewStyle().Render,
		Timestamp:  lipgloss.NewStyle().Render,
	}
)

type TextFormatter struct {
	// Set to true to bypass checking for a TTY before outputting colors.
	ForceColors bool

	// Force disabling colors. For a TTY colors are enabled by default.
	DisableColors bool

	// Disable timestamp logging. useful when output is redirected to logging
	// system that already adds timestamps.
	DisableTimestamp bool

	// Timestamp format to use for display when a full timestamp is printed.
	TimestampFormat string

	isTerminal bool

	sync.Once
}

func (f *TextFormatter) init(entry *logrus.Entry) {
	if entry.Logger == nil {
		return
	}

	if v, ok := entry.Logger.Out.(*os.File); ok {
		f.isTerminal = term.IsTerminal(int(v.Fd()))
	}
}

func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	f.Do(func() { f.init(entry) })

	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	colorScheme := noColorsColorScheme
	if (f.ForceColors || f.isTerminal) && !f.DisableColors {
		colorScheme = defaultColorScheme
	}

	timestampFormat := f.TimestampFormat
	if timestampFormat == "" {
		timestampFormat = defaultTimestampFormat
	}

	if !f.DisableTimestamp {
		fmt.Fprintf(b, "%s ", colorScheme.Timestamp(entry.Time.Format(timestampFormat)))
	}

	var level string
	switch entry.Level {
	case logrus.InfoLevel:
		level = colorScheme.InfoLevel(" i ")
	case logrus.WarnLevel:
		level = colorScheme.WarnLevel(" W ")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		level = colorScheme.ErrorLevel(" E ")
	case logrus.DebugLevel:
		level = colorScheme.DebugLevel(" D ")
	default:
		level = colorScheme.TraceLevel(" T ")
	}

	fmt.Fprintf(b, "%s %s", level, strings.TrimSuffix(entry.Message, "\n"))

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		writeKeyValue(b, k, entry.Data[k])
	}

	b.WriteByte('\n')

	return b.Bytes(), nil
}

func writeKeyValue(w io.Writer, key string, value interface{}) {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case error:
		s = v.Error()
	default:
		s = fmt.Sprint(v)
	}

	if strings.ContainsAny(s, " \t") || s == "" {
		s = fmt.Sprintf("%q", s)
	}

	fmt.Fprintf(w, " %s=%s", key, s)
}
