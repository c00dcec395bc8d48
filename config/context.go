// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2022, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.
package config

import (
	"context"
)

var (
	// G is an alias for FromContext.
	G = FromContext

	// C is the default configuration manager
	C, _ = NewConfigManager()
)

// contextKey is used to retrieve the config manager from the context.
type contextKey struct{}

// WithConfigManager returns a new context with the provided config manager.
func WithConfigManager(ctx context.Context, cfgm *ConfigManager) context.Context {
	return context.WithValue(ctx, contextKey{}, cfgm)
}

// FromContext returns the config in the context, or the default
// configuration.
func FromContext(ctx context.Context) *Config {
	if ctx == nil {
		return C.Config
	}

	l, ok := ctx.Value(contextKey{}).(*ConfigManager)
	if !ok || l == nil {
		return C.Config
	}

	return l.Config
}
