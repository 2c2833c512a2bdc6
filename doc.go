// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Blockvote API server.

Blockvote is the backend for a Minecraft server election: players redeem
pre-provisioned voting ids to cast exactly one vote for a registered party.
All state lives in four JSON collections held by a versioned document store
(by default, files in a GitHub repository, where every write is a commit),
and all concurrency control is per-document compare-and-swap on the store's
version tokens.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	GITHUB_TOKEN=ghp_... GITHUB_REPO=owner/election-data ADMIN_TOKEN=... go run .

Or against a local SQL store:

	go run . -b sql -d file:blockvote.db -admin-token secret

# Configuration

Required settings:

  - GITHUB_TOKEN (-github-token): Contents API credential (github backend)
  - GITHUB_REPO (-repo): Repository holding the collections (github backend)
  - DATABASE_URL (-d): Connection string (sql backend)
  - ADMIN_TOKEN (-admin-token): Credential for admin endpoints

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - STORE_BACKEND (-b): github or sql (default: github)
  - GITHUB_BRANCH (-branch): Branch for commits (default: main)
  - DATABASE_DRIVER (-t): sqlite or postgres (default: sqlite)

A .env file in the working directory is loaded if present.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - docstore: versioned-document stores with CAS writes and bounded retry
  - election: vote and candidate orchestration over typed collections
  - handlers: HTTP request handlers (voting, candidates, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and collection types
  - auth: Admin token validation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
