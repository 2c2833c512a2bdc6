// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CheckVotingIDRequest: votingId
  - SubmitVoteRequest: votingId, party, realName?, discordInsta?
  - RegisterCandidateRequest: partyName, candidateName, password, slogan?, color?

# Response Types

Types for JSON responses:

  - CheckVotingIDResponse: success, valid, used, playerName, gameEdition
  - SubmitVoteResponse: success, message
  - RegisterCandidateResponse: success, message
  - StatusResponse: per-collection item counts and sizes
  - ErrorResponse: error, message

# Domain Types

One type per stored collection:

  - Candidate: registered party (candidates.json)
  - VotingCredential: pre-provisioned voting id (voting-ids.json)
  - VoteRecord: cast vote (votes.json)

The used-voting-ids collection is a plain []string and has no struct.

Candidates carry a password that must never leave the server; use
Candidate.Public() for anything serialized into a response.
*/
package models
