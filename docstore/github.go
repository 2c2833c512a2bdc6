// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package docstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultGitHubBaseURL is the public GitHub REST API endpoint.
const DefaultGitHubBaseURL = "https://api.github.com"

var githubClient = &http.Client{Timeout: 10 * time.Second}

// GitHubStore implements Store on top of the GitHub Contents API. Each
// document is a file in a repository; the file's blob SHA is the version
// token, and every write lands as an attributed commit, so the full mutation
// history is auditable in the repo itself.
type GitHubStore struct {
	// BaseURL is overridable for tests; defaults to the public API.
	BaseURL string

	token  string
	owner  string
	repo   string
	branch string
	client *http.Client
}

// NewGitHubStore creates a store for the given "owner/name" repository.
// The token is a bearer credential with contents read/write permission.
func NewGitHubStore(token, repo, branch string) (*GitHubStore, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("repository must be owner/name, got %q", repo)
	}
	if token == "" {
		return nil, errors.New("github token required")
	}
	if branch == "" {
		branch = "main"
	}
	return &GitHubStore{
		BaseURL: DefaultGitHubBaseURL,
		token:   token,
		owner:   owner,
		repo:    name,
		branch:  branch,
		client:  githubClient,
	}, nil
}

type githubContent struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type githubWriteRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

// Read fetches the document at name on the configured branch.
func (s *GitHubStore) Read(ctx context.Context, name string) ([]byte, Version, error) {
	req, err := s.newRequest(ctx, http.MethodGet, name+"?ref="+s.branch, nil)
	if err != nil {
		return nil, NoVersion, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, NoVersion, fmt.Errorf("read %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return nil, NoVersion, fmt.Errorf("read %s: %w", name, ErrNotFound)
	default:
		return nil, NoVersion, fmt.Errorf("read %s: %s", name, httpError(resp))
	}

	var doc githubContent
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, NoVersion, fmt.Errorf("read %s: decode response: %w", name, err)
	}
	if doc.Encoding != "base64" {
		return nil, NoVersion, fmt.Errorf("read %s: unexpected encoding %q", name, doc.Encoding)
	}

	// The API wraps base64 content in newlines.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(doc.Content, "\n", ""))
	if err != nil {
		return nil, NoVersion, fmt.Errorf("read %s: decode content: %w", name, err)
	}
	return raw, Version(doc.SHA), nil
}

// Write commits content at name, conditioned on the expected blob SHA.
// NoVersion creates the file. A stale SHA comes back as 409, and creating a
// path that already exists as 422; both lost races map to ErrVersionConflict.
// Every other 422 is a structural failure and stays terminal.
func (s *GitHubStore) Write(ctx context.Context, name string, content []byte, expected Version) error {
	body := githubWriteRequest{
		Message: "Update " + name,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  s.branch,
		SHA:     string(expected),
	}
	if expected == NoVersion {
		body.Message = "Create " + name
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	req, err := s.newRequest(ctx, http.MethodPut, name, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return nil
	case resp.StatusCode == http.StatusConflict:
		// Stale SHA lost the race.
		return fmt.Errorf("write %s: %w", name, ErrVersionConflict)
	case resp.StatusCode == http.StatusUnprocessableEntity && expected == NoVersion:
		// The API demands the SHA we deliberately omitted: the file
		// already exists, so another writer won the create race. A 422
		// on an update carries a SHA and is a malformed request or bad
		// branch, which must not be retried.
		return fmt.Errorf("write %s: %w", name, ErrVersionConflict)
	default:
		return fmt.Errorf("write %s: %s", name, httpError(resp))
	}
}

func (s *GitHubStore) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", s.BaseURL, s.owner, s.repo, path)
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	return req, nil
}

// httpError summarizes an unexpected response without dumping whole bodies
// into logs.
func httpError(resp *http.Response) string {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
	return fmt.Sprintf("http %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
}
