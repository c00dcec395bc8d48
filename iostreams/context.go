// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package iostreams

import (
	"context"
	"sync"
)

// G is short for FromContext.
var G = FromContext

// system is created on first use so that importing the package does not
// probe the terminal.
var system = sync.OnceValue(System)

type streamsKey struct{}

// WithIOStreams attaches streams to ctx.
func WithIOStreams(ctx context.Context, streams *IOStreams) context.Context {
	return context.WithValue(ctx, streamsKey{}, streams)
}

// FromContext returns the streams attached to ctx, falling back to the
// process' standard streams.
func FromContext(ctx context.Context) *IOStreams {
	if ctx != nil {
		if streams, ok := ctx.Value(streamsKey{}).(*IOStreams); ok && streams != nil {
			return streams
		}
	}

	return system()
}
