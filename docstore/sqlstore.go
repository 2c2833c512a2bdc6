// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// SQLStore implements Store on a SQL database, for deployments that want
// documents local instead of in a hosted repository. Works with both the
// sqlite and postgres drivers; $N placeholders are understood by each.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore creates the schema if needed and returns the store.
func NewSQLStore(db *sql.DB) (*SQLStore, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLStore{db: db}, nil
}

const schema = `
-- Versioned documents, one row per collection
CREATE TABLE IF NOT EXISTS document (
    name TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    version TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Read returns the document's content and version.
func (s *SQLStore) Read(ctx context.Context, name string) ([]byte, Version, error) {
	var content string
	var version string
	err := s.db.QueryRowContext(ctx, `
		SELECT content, version FROM document WHERE name = $1
	`, name).Scan(&content, &version)

	if err == sql.ErrNoRows {
		return nil, NoVersion, fmt.Errorf("read %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, NoVersion, fmt.Errorf("read %s: %w", name, err)
	}
	return []byte(content), Version(version), nil
}

// Write stores content under a fresh version token, conditioned on the
// expected one. Both the create and update paths decide the race with a
// single statement and RowsAffected, so no explicit locking is needed.
func (s *SQLStore) Write(ctx context.Context, name string, content []byte, expected Version) error {
	next := uuid.NewString()

	var res sql.Result
	var err error
	if expected == NoVersion {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO document (name, content, version)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM document WHERE name = $1)
		`, name, string(content), next)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE document
			SET content = $2, version = $3, updated_at = CURRENT_TIMESTAMP
			WHERE name = $1 AND version = $4
		`, name, string(content), next, string(expected))
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("write %s: %w", name, ErrVersionConflict)
	}
	return nil
}
