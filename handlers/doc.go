// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Blockvote API.

# Handler Types

Each handler is a struct with its service dependencies, created via a
constructor:

	votingHandler := handlers.NewVotingHandler(voteService)
	candidateHandler := handlers.NewCandidateHandler(candidateService)
	adminHandler := handlers.NewAdminHandler(voteService, store, cfg)

# Voting Flow

	POST /api/check-voting-id → CheckVotingID (is this id valid? used?)
	POST /api/submit-vote     → SubmitVote

Submission outcomes map to statuses as follows:

  - recorded, or id already used (idempotent): 200 {success:true, message}
  - unknown voting id: 400 {success:false, "Invalid Voting ID..."}
  - retries exhausted on contention: 503 "Please try again."
  - consumed credential without a recorded vote: 500, logged loudly
  - any other storage failure: 500

# Candidate Registration

	POST /api/register-candidate → Register (201, or 409 on duplicate party)
	GET  /api/candidates         → List (passwords never serialized)

# Admin Endpoints

Vote inspection and store status require the X-Admin-Token header:

	GET /api/votes  → Votes
	GET /api/status → Status (per-collection item counts and sizes)
*/
package handlers
