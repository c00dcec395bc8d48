// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package tableprinter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/reflow/ansi"
	"gopkg.in/yaml.v3"
)

// columnWidths fits the widest cell of every column into maxWidth by
// repeatedly narrowing the widest column. The first column is never
// narrowed, nor is any column below minColumnWidth.
func (printer *TablePrinter) columnWidths() []int {
	widths := make([]int, len(printer.header))
	for _, row := range append([][]field{printer.header}, printer.rows...) {
		for col, f := range row {
			if col < len(widths) {
				widths[col] = max(widths[col], f.width())
			}
		}
	}

	if printer.maxWidth <= 0 {
		return widths
	}

	total := len(printer.delimeter) * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}

	for total > printer.maxWidth {
		widest := -1
		for col := 1; col < len(widths); col++ {
			if widths[col] > minColumnWidth && (widest == -1 || widths[col] > widths[widest]) {
				widest = col
			}
		}
		if widest == -1 {
			break
		}

		widths[widest]--
		total--
	}

	return widths
}

func (printer *TablePrinter) renderTable(w io.Writer) error {
	widths := printer.columnWidths()
	last := len(widths) - 1

	for _, row := range append([][]field{printer.header}, printer.rows...) {
		cells := make([]string, 0, len(row))

		for col, f := range row {
			if col > last {
				break
			}

			text := printer.truncateFunc(widths[col], f.text)
			if col < last {
				text += strings.Repeat(" ", max(0, widths[col]-ansi.PrintableRuneWidth(text)))
			}

			cells = append(cells, f.render(text))
		}

		if _, err := fmt.Fprintln(w, strings.Join(cells, printer.delimeter)); err != nil {
			return err
		}
	}

	return nil
}

// renderList prints every row as a block of "key: value" lines. Comma
// separated values are spread over consecutive lines.
func (printer *TablePrinter) renderList(w io.Writer) error {
	keyWidth := 0
	for _, h := range printer.header {
		keyWidth = max(keyWidth, h.width())
	}

	for i, row := range printer.rows {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		for col, f := range row {
			if col >= len(printer.header) {
				break
			}

			key := printer.header[col]
			label := key.render(strings.ToLower(key.text))

			for j, value := range strings.Split(f.text, ",") {
				prefix := strings.Repeat(" ", keyWidth-key.width()) + label + ": "
				if j > 0 {
					prefix = strings.Repeat(" ", keyWidth+2)
				}

				if _, err := fmt.Fprintf(w, "%s%s\n", prefix, f.render(strings.TrimSpace(value))); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// records keys every row by its lowercased header, with spaces replaced by
// underscores.
func (printer *TablePrinter) records() []map[string]string {
	keys := make([]string, len(printer.header))
	for i, h := range printer.header {
		keys[i] = strings.ReplaceAll(strings.ToLower(h.text), " ", "_")
	}

	records := []map[string]string{}
	for _, row := range printer.rows {
		record := map[string]string{}
		for col, f := range row {
			if col < len(keys) {
				record[keys[col]] = f.text
			}
		}
		records = append(records, record)
	}

	return records
}

func (printer *TablePrinter) renderJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return enc.Encode(printer.records())
}

func (printer *TablePrinter) renderYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(printer.records()); err != nil {
		return err
	}

	return enc.Close()
}
