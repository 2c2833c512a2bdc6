// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGitHubStore(t *testing.T, handler http.HandlerFunc) *GitHubStore {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := NewGitHubStore("test-token", "example/election-data", "main")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	store.BaseURL = srv.URL
	return store
}

func TestNewGitHubStoreValidation(t *testing.T) {
	tests := []struct {
		name  string
		token string
		repo  string
	}{
		{name: "missing token", token: "", repo: "owner/repo"},
		{name: "repo without owner", token: "tok", repo: "repo"},
		{name: "empty repo name", token: "tok", repo: "owner/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGitHubStore(tt.token, tt.repo, "main"); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestGitHubStoreRead(t *testing.T) {
	content := `[{"id": "ABC123"}]`
	// The API wraps base64 payloads at 60 columns.
	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	wrapped := encoded[:8] + "\n" + encoded[8:] + "\n"

	store := newTestGitHubStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/repos/example/election-data/contents/voting-ids.json" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("ref") != "main" {
			t.Errorf("Expected ref=main, got %q", r.URL.Query().Get("ref"))
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Unexpected auth header: %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{
			"content":  wrapped,
			"encoding": "base64",
			"sha":      "abc123sha",
		})
	})

	got, version, err := store.Read(context.Background(), "voting-ids.json")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != content {
		t.Errorf("Content mismatch: %q", got)
	}
	if version != "abc123sha" {
		t.Errorf("Expected version abc123sha, got %q", version)
	}
}

func TestGitHubStoreReadNotFound(t *testing.T) {
	store := newTestGitHubStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, version, err := store.Read(context.Background(), "votes.json")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if version != NoVersion {
		t.Errorf("Expected NoVersion, got %q", version)
	}
}

func TestGitHubStoreReadServerError(t *testing.T) {
	store := newTestGitHubStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, _, err := store.Read(context.Background(), "votes.json")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrVersionConflict) {
		t.Errorf("Server error must not map to a retryable/empty outcome: %v", err)
	}
}

func TestGitHubStoreWriteCreate(t *testing.T) {
	store := newTestGitHubStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("Expected PUT, got %s", r.Method)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if _, hasSHA := body["sha"]; hasSHA {
			t.Error("Create must not send a sha")
		}
		if body["message"] != "Create votes.json" {
			t.Errorf("Unexpected commit message: %v", body["message"])
		}
		if body["branch"] != "main" {
			t.Errorf("Unexpected branch: %v", body["branch"])
		}

		raw, err := base64.StdEncoding.DecodeString(body["content"].(string))
		if err != nil {
			t.Fatalf("Content not base64: %v", err)
		}
		if string(raw) != "[]" {
			t.Errorf("Unexpected content: %q", raw)
		}

		w.WriteHeader(http.StatusCreated)
	})

	if err := store.Write(context.Background(), "votes.json", []byte("[]"), NoVersion); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
}

func TestGitHubStoreWriteWithVersion(t *testing.T) {
	store := newTestGitHubStore(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["sha"] != "oldsha" {
			t.Errorf("Expected sha oldsha, got %v", body["sha"])
		}
		if body["message"] != "Update votes.json" {
			t.Errorf("Unexpected commit message: %v", body["message"])
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := store.Write(context.Background(), "votes.json", []byte("[]"), Version("oldsha")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
}

func TestGitHubStoreWriteStaleVersionConflicts(t *testing.T) {
	store := newTestGitHubStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	err := store.Write(context.Background(), "votes.json", []byte("[]"), Version("stale"))
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("Expected ErrVersionConflict, got %v", err)
	}
}

func TestGitHubStoreWriteCreateExistingConflicts(t *testing.T) {
	// Creating a file that already exists: the API rejects the missing SHA
	// with 422, which is a lost create race.
	store := newTestGitHubStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	err := store.Write(context.Background(), "votes.json", []byte("[]"), NoVersion)
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("Expected ErrVersionConflict, got %v", err)
	}
}

func TestGitHubStoreWriteStructural422IsTerminal(t *testing.T) {
	// A 422 on an update carries our SHA, so it can't be a create race; a
	// bad branch or malformed request must not be retried as a conflict.
	store := newTestGitHubStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	err := store.Write(context.Background(), "votes.json", []byte("[]"), Version("currentsha"))
	if err == nil {
		t.Fatal("Expected an error")
	}
	if errors.Is(err, ErrVersionConflict) {
		t.Errorf("Structural 422 must not be retryable: %v", err)
	}
}

func TestGitHubStoreWriteServerError(t *testing.T) {
	store := newTestGitHubStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	err := store.Write(context.Background(), "votes.json", []byte("[]"), NoVersion)
	if err == nil {
		t.Fatal("Expected an error")
	}
	if errors.Is(err, ErrVersionConflict) {
		t.Errorf("Auth failure must not be retryable: %v", err)
	}
}
