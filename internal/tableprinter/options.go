// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package tableprinter

// TablePrinterOption configures a TablePrinter.
type TablePrinterOption func(*TablePrinter) error

// WithOutputFormat sets the output format.
func WithOutputFormat(format TableOutputFormat) TablePrinterOption {
	return func(printer *TablePrinter) error {
		printer.format = format
		return nil
	}
}

// WithOutputFormatFromString sets the output format by name, failing on a
// name that is not one of Formats.
func WithOutputFormatFromString(name string) TablePrinterOption {
	return func(printer *TablePrinter) error {
		format, err := ParseFormat(name)
		if err != nil {
			return err
		}

		printer.format = format

		return nil
	}
}

// WithTableDelimeter sets the text between two table columns.
func WithTableDelimeter(delim string) TablePrinterOption {
	return func(printer *TablePrinter) error {
		printer.delimeter = delim
		return nil
	}
}

// WithFieldTruncateFunc replaces Truncate for cells wider than their column.
func WithFieldTruncateFunc(fn func(int, string) string) TablePrinterOption {
	return func(printer *TablePrinter) error {
		printer.truncateFunc = fn
		return nil
	}
}

// WithMaxWidth sets the width the table format fits its columns into. A
// width of zero disables truncation.
func WithMaxWidth(width int) TablePrinterOption {
	return func(printer *TablePrinter) error {
		printer.maxWidth = width
		return nil
	}
}
