// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document doesn't exist in the store.
// Collection readers treat it as an empty collection, not a failure.
var ErrNotFound = errors.New("document not found")

// ErrVersionConflict is returned when a conditional write loses a version
// race. It is the only retryable failure; callers must dispatch on it with
// errors.Is, never by message content.
var ErrVersionConflict = errors.New("document version conflict")

// Version is the opaque token identifying a document's current content.
// It changes on every successful write and supports only equality
// comparison.
type Version string

// NoVersion is the absent marker: a Read of a missing document reports it,
// and a Write with it means "create, fail if the document already exists".
const NoVersion Version = ""

// Store is the versioned-document interface every storage backend satisfies.
// All implementations must be safe for concurrent use.
type Store interface {
	// Read returns the document's content and current version.
	// Returns ErrNotFound (with NoVersion) if the document doesn't exist.
	Read(ctx context.Context, name string) ([]byte, Version, error)

	// Write stores content conditioned on the expected version.
	// Returns ErrVersionConflict if the stored version no longer matches,
	// or if expected is NoVersion and the document already exists.
	Write(ctx context.Context, name string, content []byte, expected Version) error
}
