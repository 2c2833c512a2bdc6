// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package docstore provides versioned-document storage with compare-and-swap
writes.

# The Store Interface

Every backend exposes two operations:

	content, version, err := store.Read(ctx, "votes.json")
	err = store.Write(ctx, "votes.json", content, version)

A write succeeds only if the document's current version still matches the
expected one; otherwise it fails with ErrVersionConflict. NoVersion is the
absent marker: reading a never-written document returns it alongside
ErrNotFound, and writing with it creates the document (failing if it
already exists). Version tokens are opaque and support only equality.

# Error Taxonomy

  - ErrNotFound: the document doesn't exist; callers treat it as empty
  - ErrVersionConflict: a concurrent writer got there first; retryable
  - ErrRetriesExhausted: every retry attempt lost its race
  - anything else: transport or structural failure, never retried

All three sentinels are dispatched with errors.Is. Retryability is a
property of the error value, never of its message text.

# Backends

GitHubStore stores each document as a file in a GitHub repository via the
Contents API. The blob SHA is the version token, and every write is a
commit, so the mutation history is auditable with git itself:

	store, err := docstore.NewGitHubStore(token, "owner/repo", "main")

SQLStore keeps documents in a single table for local deployments, using
either the sqlite or postgres driver:

	store, err := docstore.NewSQLStore(db)

# Retrying Conflicts

Retrier wraps a read-modify-write unit in a bounded retry loop:

	r := docstore.Retrier{}
	err := r.Do(ctx, func(ctx context.Context) error {
		items, version, err := load(ctx)
		// ... modify items ...
		return save(ctx, items, version)
	})

Only ErrVersionConflict is retried (3 attempts, 100ms × attempt linear
backoff by default). The unit must re-read on every attempt; version
tokens never survive a failed attempt.
*/
package docstore
