// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"testing"

	"blockvote/docstore"
	"blockvote/testutil"
)

func TestCollectionLoadMissing(t *testing.T) {
	store := testutil.NewMemStore()
	c := NewCollection[string](store, "missing.json", testutil.FastRetrier())

	items, version, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("A never-written collection must read as empty, got %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected no items, got %d", len(items))
	}
	if version != docstore.NoVersion {
		t.Errorf("Expected NoVersion, got %q", version)
	}
}

func TestCollectionAppendCreates(t *testing.T) {
	store := testutil.NewMemStore()
	c := NewCollection[string](store, "used-voting-ids.json", testutil.FastRetrier())

	if err := c.Append(context.Background(), "ABC123"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	var ids []string
	store.MustGet(t, "used-voting-ids.json", &ids)
	if len(ids) != 1 || ids[0] != "ABC123" {
		t.Errorf("Unexpected items: %v", ids)
	}
}

func TestCollectionSaveStaleVersion(t *testing.T) {
	store := testutil.NewMemStore()
	store.Seed(t, "votes.json", []string{"a"})
	c := NewCollection[string](store, "votes.json", testutil.FastRetrier())

	items, v1, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := c.Save(context.Background(), append(items, "b"), v1); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// v1 is stale now
	err = c.Save(context.Background(), append(items, "c"), v1)
	if !errors.Is(err, docstore.ErrVersionConflict) {
		t.Fatalf("Expected ErrVersionConflict, got %v", err)
	}
}

func TestCollectionAppendRetriesOnConflict(t *testing.T) {
	store := testutil.NewMemStore()
	store.ConflictNextWrites(2)
	c := NewCollection[string](store, "votes.json", testutil.FastRetrier())

	if err := c.Append(context.Background(), "a"); err != nil {
		t.Fatalf("Append should survive transient conflicts: %v", err)
	}
	if store.WriteCount() != 3 {
		t.Errorf("Expected 3 write attempts, got %d", store.WriteCount())
	}
}

func TestCollectionAppendExhausts(t *testing.T) {
	store := testutil.NewMemStore()
	store.ConflictNextWrites(10)
	c := NewCollection[string](store, "votes.json", testutil.FastRetrier())

	err := c.Append(context.Background(), "a")
	if !errors.Is(err, docstore.ErrRetriesExhausted) {
		t.Fatalf("Expected ErrRetriesExhausted, got %v", err)
	}
	if store.Has("votes.json") {
		t.Error("No document should exist after exhausted retries")
	}
}

func TestCollectionAppendUnique(t *testing.T) {
	store := testutil.NewMemStore()
	store.Seed(t, "candidates.json", []string{"Red"})
	c := NewCollection[string](store, "candidates.json", testutil.FastRetrier())

	err := c.AppendUnique(context.Background(), "Red", func(s string) bool { return s == "Red" })
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("Expected ErrAlreadyExists, got %v", err)
	}
	if store.WriteCount() != 0 {
		t.Errorf("Duplicate must short-circuit before any write, got %d writes", store.WriteCount())
	}

	if err := c.AppendUnique(context.Background(), "Blue", func(s string) bool { return s == "Blue" }); err != nil {
		t.Fatalf("AppendUnique failed: %v", err)
	}
	var items []string
	store.MustGet(t, "candidates.json", &items)
	if len(items) != 2 {
		t.Errorf("Expected 2 items, got %v", items)
	}
}
