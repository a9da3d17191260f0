// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys and
// identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ConnIDCtxKey is the key used to store the connection identifier in the
// context. The daemon listener sets it for every accepted connection.
//
// Example of writing a value to the context:
//
//	ctx := utils.WithConnID(ctx, id)
var ConnIDCtxKey = contextKey("connID")

// WithConnID returns a copy of ctx carrying the connection identifier id.
func WithConnID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ConnIDCtxKey, id)
}

// GetConnIDFromContext retrieves the connection identifier from the context.
//
// Returns the identifier and an ok flag:
//   - ok == true:  value is found, is a string and is not empty
//   - ok == false: value is missing, empty or has an unexpected type
//
// Example usage:
//
//	id, ok := utils.GetConnIDFromContext(ctx)
//	if !ok {
//	    // handle missing connection id
//	}
func GetConnIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ConnIDCtxKey).(string)
	return id, ok && id != ""
}
