//go:build tools

// SPDX-License-Identifier: BSD-3-Clause
// Copyright (c) 2023, Unikraft GmbH and The KraftKit Authors.
// Licensed under the BSD-3-Clause License (the "License").
// You may not use this file except in compliance with the License.

// Package hack pins the ginkgo CLI, used to run the command specs with
// `go run github.com/onsi/ginkgo/v2/ginkgo ./...`, to the version in go.mod.
package hack

import _ "github.com/onsi/ginkgo/v2/ginkgo"
