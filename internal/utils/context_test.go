// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestConnIDCtxKey(t *testing.T) {
	if ConnIDCtxKey.String() != "connID" {
		t.Errorf("expected 'connID', got '%s'", ConnIDCtxKey.String())
	}
}

func TestGetConnIDFromContext_Success(t *testing.T) {
	ctx := WithConnID(context.Background(), "0190d5a4-conn")

	id, ok := GetConnIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if id != "0190d5a4-conn" {
		t.Errorf("expected id=0190d5a4-conn, got %s", id)
	}
}

func TestGetConnIDFromContext_Missing(t *testing.T) {
	id, ok := GetConnIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if id != "" {
		t.Errorf("expected empty id, got %s", id)
	}
}

func TestGetConnIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ConnIDCtxKey, int64(42))

	if _, ok := GetConnIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetConnIDFromContext_Empty(t *testing.T) {
	ctx := WithConnID(context.Background(), "")

	if _, ok := GetConnIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for empty id, got true")
	}
}

func TestGetConnIDFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, "id")

	if _, ok := GetConnIDFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}

func TestUUIDGenerator_Unique(t *testing.T) {
	g := NewUUIDGenerator()

	a, b := g.Generate(), g.Generate()
	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Errorf("expected distinct ids, got %s twice", a)
	}
}
