// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound messages before the development backend
// stores them.
//
// A [Validator] accepts an arbitrary value and optional field names that
// restrict validation to a subset of the value's fields.
package validators

import "context"

// Validator validates input values, optionally restricted to named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
