// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Blockvote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health:

	GET /health

Voting (public):

	POST /api/check-voting-id - Validate a voting id, report used state
	POST /api/submit-vote     - Cast a vote

Candidates (public):

	POST /api/register-candidate - Register a party
	GET  /api/candidates         - List candidates (no passwords)

Admin (require X-Admin-Token):

	GET /api/votes  - All vote records
	GET /api/status - Collection counts and sizes

# Wiring

The router builds the election services over the provided document store
with the default retry policy, then injects them into the handlers. The
store is the only stateful dependency; everything else is configuration.
*/
package router
