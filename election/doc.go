// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the voting and registration logic over four
versioned JSON collections.

# Collections

Each collection is one document in a docstore.Store:

	candidates.json      []models.Candidate
	voting-ids.json      []models.VotingCredential (read-only here)
	used-voting-ids.json []string
	votes.json           []models.VoteRecord

Collection[T] is the typed façade: Load/Save expose the version token for
multi-step units, All/Find are plain reads, and Append/AppendUnique run
their own retried read-modify-write cycle.

# Vote Casting

VoteService.SubmitVote validates the credential, consumes it, then records
the vote:

	result, err := votes.SubmitVote(ctx, req)

The used-id CAS write is the single serialization point. For any number of
concurrent submissions with the same voting id, exactly one wins that write
and appends a vote record; every other submission observes the id as used
and returns the idempotent AlreadyVoted success. At most one VoteRecord per
voting id therefore holds across all interleavings, including retries of
the winning request itself.

The consume-then-record order fails closed: if the vote append fails after
the mark committed, the caller gets ErrVoteNotRecorded and the credential
stays consumed. The alternative (record first) could fail open, leaving a
counted vote behind a reusable credential.

# Candidate Registration

CandidateService.Register enforces case-insensitive party-name uniqueness
inside one retried unit and reports ErrDuplicateParty as a terminal
business outcome. List strips passwords via models.Candidate.Public.

# Error Semantics

Terminal outcomes (ErrInvalidCredential, ErrDuplicateParty,
ErrVoteNotRecorded) are sentinel errors for errors.Is dispatch in the HTTP
layer. Version conflicts never escape a service method except wrapped in
docstore.ErrRetriesExhausted.
*/
package election
