// SPDX-License-Identifier: Apache-2.0
//
// Copyright 2020 The Compose Specification Authors.
// Copyright 2022 Unikraft GmbH. All rights reserved.
// Copyright 2024 The platform-ch32v Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at:
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package board

import (
	// Enable support for embedded static resources
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is the board descriptor format in JSON schema.
//
//go:embed descriptor.schema.json
var Schema string

// Validate checks a decoded descriptor document against Schema.
func Validate(doc map[string]interface{}) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(Schema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return err
	}

	if !result.Valid() {
		return mostSpecificError(result.Errors())
	}

	return nil
}

func humanReadableType(definition string) string {
	switch definition {
	case "object":
		return "mapping"
	case "array":
		return "list"
	}
	return definition
}

type validationError struct {
	err gojsonschema.ResultError
}

func (v validationError) Error() string {
	description := v.err.Description()

	if v.err.Type() == "invalid_type" {
		if expected, ok := v.err.Details()["expected"].(string); ok {
			description = fmt.Sprintf("must be a %s", humanReadableType(expected))
		}
	}

	return fmt.Sprintf("%s %s", v.err.Field(), description)
}

// mostSpecificError picks the error on the deepest field; invalid types win
// ties.
func mostSpecificError(errors []gojsonschema.ResultError) error {
	best := 0
	for i, err := range errors {
		switch {
		case specificity(err) > specificity(errors[best]):
			best = i
		case specificity(err) == specificity(errors[best]) &&
			err.Type() == "invalid_type" && errors[best].Type() != "invalid_type":
			best = i
		}
	}

	return validationError{err: errors[best]}
}

func specificity(err gojsonschema.ResultError) int {
	return len(strings.Split(err.Field(), "."))
}
