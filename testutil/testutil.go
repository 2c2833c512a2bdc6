// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"blockvote/cliparse"
	"blockvote/docstore"
)

// MemStore is an in-memory docstore.Store with real CAS semantics, plus
// hooks for injecting conflicts and terminal failures. Safe for concurrent
// use, so contention tests exercise the same races a hosted backend would.
type MemStore struct {
	mu   sync.Mutex
	docs map[string]memDoc
	seq  int

	conflictWrites int              // next N writes fail with ErrVersionConflict
	failWrites     map[string]error // writes to these documents fail terminally

	reads  int
	writes int
}

type memDoc struct {
	content []byte
	version docstore.Version
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		docs:       make(map[string]memDoc),
		failWrites: make(map[string]error),
	}
}

// Read implements docstore.Store.
func (m *MemStore) Read(ctx context.Context, name string) ([]byte, docstore.Version, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++

	doc, ok := m.docs[name]
	if !ok {
		return nil, docstore.NoVersion, fmt.Errorf("read %s: %w", name, docstore.ErrNotFound)
	}
	content := make([]byte, len(doc.content))
	copy(content, doc.content)
	return content, doc.version, nil
}

// Write implements docstore.Store.
func (m *MemStore) Write(ctx context.Context, name string, content []byte, expected docstore.Version) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++

	if err, ok := m.failWrites[name]; ok {
		return err
	}
	if m.conflictWrites > 0 {
		m.conflictWrites--
		return fmt.Errorf("write %s: %w", name, docstore.ErrVersionConflict)
	}

	doc, exists := m.docs[name]
	current := docstore.NoVersion
	if exists {
		current = doc.version
	}
	if current != expected {
		return fmt.Errorf("write %s: %w", name, docstore.ErrVersionConflict)
	}

	stored := make([]byte, len(content))
	copy(stored, content)
	m.seq++
	m.docs[name] = memDoc{content: stored, version: docstore.Version(fmt.Sprintf("v%d", m.seq))}
	return nil
}

// ConflictNextWrites makes the next n writes fail with a version conflict,
// regardless of the expected version.
func (m *MemStore) ConflictNextWrites(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflictWrites = n
}

// FailWritesTo makes every write to name fail with err (a terminal,
// non-retryable failure).
func (m *MemStore) FailWritesTo(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites[name] = err
}

// WriteCount returns the number of Write calls seen, including failed ones.
func (m *MemStore) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Seed stores v as a pretty-printed JSON document.
func (m *MemStore) Seed(t *testing.T, name string, v interface{}) {
	t.Helper()

	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal seed for %s: %v", name, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.docs[name] = memDoc{content: content, version: docstore.Version(fmt.Sprintf("v%d", m.seq))}
}

// MustGet unmarshals the current document into out, failing the test if the
// document is missing or malformed.
func (m *MemStore) MustGet(t *testing.T, name string, out interface{}) {
	t.Helper()

	content, _, err := m.Read(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	if err := json.Unmarshal(content, out); err != nil {
		t.Fatalf("Failed to unmarshal %s: %v", name, err)
	}
}

// Has reports whether the document exists.
func (m *MemStore) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[name]
	return ok
}

// FastRetrier returns a retrier with default attempts but millisecond
// backoff so conflict tests stay fast.
func FastRetrier() docstore.Retrier {
	return docstore.Retrier{MaxAttempts: docstore.DefaultMaxAttempts, Backoff: time.Millisecond}
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3000,
		StoreBackend: cliparse.BackendGitHub,
		GitHubToken:  "test-token",
		GitHubRepo:   "example/election-data",
		GitHubBranch: "main",
		AdminToken:   "test-admin-token",
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
