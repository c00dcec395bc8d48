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

// Package tableprinter renders rows of board and package listings either as
// an aligned table, a key/value list or machine readable JSON or YAML.
package tableprinter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

type TableOutputFormat string

const (
	OutputFormatTable = TableOutputFormat("table")
	OutputFormatJSON  = TableOutputFormat("json")
	OutputFormatYAML  = TableOutputFormat("yaml")
	OutputFormatList  = TableOutputFormat("list")

	DefaultDelimeter = "  "
	DefaultMaxWidth  = 80

	// minColumnWidth is the narrowest a column is truncated to.
	minColumnWidth = 5
)

// Formats lists every supported output format.
func Formats() []TableOutputFormat {
	return []TableOutputFormat{
		OutputFormatTable,
		OutputFormatList,
		OutputFormatJSON,
		OutputFormatYAML,
	}
}

// ParseFormat returns the output format named s.
func ParseFormat(s string) (TableOutputFormat, error) {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
		names = append(names, string(f))
	}

	return "", fmt.Errorf("unsupported output format %q, expected one of: %s", s, strings.Join(names, ", "))
}

type field struct {
	text  string
	color func(string) string
}

func (f field) width() int {
	return ansi.PrintableRuneWidth(f.text)
}

func (f field) render(s string) string {
	if f.color == nil {
		return s
	}
	return f.color(s)
}

// Truncate shortens s to at most width printable cells, ending it with an
// ellipsis when anything was cut.
func Truncate(width int, s string) string {
	if width <= 0 || ansi.PrintableRuneWidth(s) <= width {
		return s
	}

	if width <= 3 {
		return truncate.String(s, uint(width))
	}

	return truncate.StringWithTail(s, uint(width), "...")
}

// TablePrinter accumulates a header row followed by data rows. The first row
// completed with EndRow is the header.
type TablePrinter struct {
	format       TableOutputFormat
	maxWidth     int
	delimeter    string
	truncateFunc func(int, string) string

	header  []field
	rows    [][]field
	pending []field
}

// NewTablePrinter returns a printer rendering in the table format unless an
// option says otherwise.
func NewTablePrinter(_ context.Context, topts ...TablePrinterOption) (*TablePrinter, error) {
	printer := &TablePrinter{
		format:       OutputFormatTable,
		delimeter:    DefaultDelimeter,
		maxWidth:     DefaultMaxWidth,
		truncateFunc: Truncate,
	}

	for _, opt := range topts {
		if err := opt(printer); err != nil {
			return nil, err
		}
	}

	return printer, nil
}

// AddField appends a cell to the current row. color, when set, decorates the
// cell in the table and list formats only.
func (printer *TablePrinter) AddField(s string, color func(string) string) {
	printer.pending = append(printer.pending, field{text: s, color: color})
}

// EndRow completes the current row.
func (printer *TablePrinter) EndRow() {
	if printer.header == nil {
		printer.header = printer.pending
	} else {
		printer.rows = append(printer.rows, printer.pending)
	}

	printer.pending = nil
}

// Render writes every completed row to w. A row still being filled is
// completed first.
func (printer *TablePrinter) Render(w io.Writer) error {
	if len(printer.pending) > 0 {
		printer.EndRow()
	}

	if len(printer.header) == 0 {
		return nil
	}

	switch printer.format {
	case OutputFormatList:
		return printer.renderList(w)
	case OutputFormatJSON:
		return printer.renderJSON(w)
	case OutputFormatYAML:
		return printer.renderYAML(w)
	default:
		return printer.renderTable(w)
	}
}
