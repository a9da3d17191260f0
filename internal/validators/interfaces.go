// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks daemon requests before the development session
// daemon acts on them.
//
// A [Validator] validates a whole value or only the named fields of it, so
// a handler can reject a malformed create_session without touching the
// rest of its state.
package validators

import "context"

// Validator validates request values.
type Validator interface {
	// Validate checks obj. When fields are given only those fields are
	// checked; an unknown field name is an error.
	Validate(ctx context.Context, obj any, fields ...string) error
}
