// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"blockvote/docstore"
)

// Document names for the four collections.
const (
	CandidatesDoc = "candidates.json"
	VotingIDsDoc  = "voting-ids.json"
	UsedIDsDoc    = "used-voting-ids.json"
	VotesDoc      = "votes.json"
)

// CollectionNames lists every document this service touches, in display
// order.
var CollectionNames = []string{CandidatesDoc, VotingIDsDoc, UsedIDsDoc, VotesDoc}

// ErrAlreadyExists is reported by AppendUnique when the uniqueness predicate
// matches an existing item. It is a business outcome, not a conflict, and is
// never retried.
var ErrAlreadyExists = errors.New("item already exists")

// Collection is a typed façade over one versioned JSON document holding an
// ordered sequence of T. It carries no state between calls; every operation
// re-reads the document, so the version token is never stale when a write
// is attempted.
type Collection[T any] struct {
	store docstore.Store
	name  string
	retry docstore.Retrier
}

// NewCollection binds a collection to its document.
func NewCollection[T any](store docstore.Store, name string, retry docstore.Retrier) *Collection[T] {
	return &Collection[T]{store: store, name: name, retry: retry}
}

// Load reads the current items and version. A document that has never been
// written behaves as an empty collection with the absent version marker.
func (c *Collection[T]) Load(ctx context.Context) ([]T, docstore.Version, error) {
	content, version, err := c.store.Read(ctx, c.name)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, docstore.NoVersion, nil
	}
	if err != nil {
		return nil, docstore.NoVersion, err
	}

	var items []T
	if err := json.Unmarshal(content, &items); err != nil {
		return nil, docstore.NoVersion, fmt.Errorf("parse %s: %w", c.name, err)
	}
	return items, version, nil
}

// Save writes items conditioned on the expected version. Documents are
// pretty-printed so the backing repository stays readable.
func (c *Collection[T]) Save(ctx context.Context, items []T, expected docstore.Version) error {
	content, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	return c.store.Write(ctx, c.name, content, expected)
}

// All returns the current items.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	items, _, err := c.Load(ctx)
	return items, err
}

// Find returns the first item matching the predicate.
func (c *Collection[T]) Find(ctx context.Context, match func(T) bool) (T, bool, error) {
	var zero T
	items, _, err := c.Load(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if match(item) {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Append adds an item, retrying the read-append-write cycle on version
// conflicts.
func (c *Collection[T]) Append(ctx context.Context, item T) error {
	return c.retry.Do(ctx, func(ctx context.Context) error {
		items, version, err := c.Load(ctx)
		if err != nil {
			return err
		}
		return c.Save(ctx, append(items, item), version)
	})
}

// AppendUnique adds an item unless the predicate matches an existing one,
// in which case it reports ErrAlreadyExists before attempting any write.
// The uniqueness check re-runs on every retry, so a duplicate committed by
// a concurrent writer between attempts is still caught.
func (c *Collection[T]) AppendUnique(ctx context.Context, item T, exists func(T) bool) error {
	return c.retry.Do(ctx, func(ctx context.Context) error {
		items, version, err := c.Load(ctx)
		if err != nil {
			return err
		}
		for _, existing := range items {
			if exists(existing) {
				return fmt.Errorf("%s: %w", c.name, ErrAlreadyExists)
			}
		}
		return c.Save(ctx, append(items, item), version)
	})
}
