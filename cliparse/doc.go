// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - StoreBackend: "github" (default) or "sql"
  - GitHubToken: Contents API bearer token (required for github backend)
  - GitHubRepo: Repository as owner/name (required for github backend)
  - GitHubBranch: Branch for document commits (default: main)
  - DatabaseURL: Connection string (required for sql backend)
  - DatabaseDriver: "sqlite" (default) or "postgres"
  - AdminToken: Static credential for admin endpoints (required)

# CLI Flags

	-p            Server port
	-b            Store backend
	-repo         GitHub repository
	-branch       GitHub branch
	-d            Database URL
	-t            Database driver
	-github-token GitHub token (prefer env)
	-admin-token  Admin token (prefer env)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	STORE_BACKEND   → -b
	GITHUB_REPO     → -repo
	GITHUB_BRANCH   → -branch
	DATABASE_URL    → -d
	DATABASE_DRIVER → -t
	GITHUB_TOKEN    → -github-token
	ADMIN_TOKEN     → -admin-token

CLI flags take precedence over environment variables.

# Validation

ParseFlags fails fast on missing required values, so a misconfigured
document-host credential is caught at startup rather than on the first
request:

  - github backend: GITHUB_TOKEN and GITHUB_REPO must be provided
  - sql backend: DATABASE_URL must be provided
  - ADMIN_TOKEN must always be provided
*/
package cliparse
