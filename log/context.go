// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package log

import (
	"context"

	"github.com/sirupsen/logrus"
)

// L is the logger used when a context carries none.
var L = logrus.NewEntry(logrus.StandardLogger())

// G is short for FromContext.
var G = FromContext

type loggerKey struct{}

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// WithBoard attaches a logger to ctx which tags every entry with the board
// being worked on.
func WithBoard(ctx context.Context, id string) context.Context {
	return WithLogger(ctx, FromContext(ctx).WithField("board", id))
}

// FromContext returns the logger attached to ctx, falling back to L.
func FromContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*logrus.Entry); ok && logger != nil {
			return logger
		}
	}

	return L
}
