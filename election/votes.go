// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"blockvote/docstore"
	"blockvote/models"
)

// ErrInvalidCredential is returned when the submitted voting id is not in
// the credential collection. Terminal; nothing is written.
var ErrInvalidCredential = errors.New("invalid voting id")

// ErrVoteNotRecorded is returned when the credential was marked used but the
// vote record write failed afterwards. The credential is consumed and the
// vote is lost (fail closed); this is surfaced, never masked.
var ErrVoteNotRecorded = errors.New("voting id consumed but vote not recorded")

// VoteService coordinates vote casting across the credential, used-id, and
// vote collections. It holds no mutable state; all coordination lives in the
// document versions.
type VoteService struct {
	credentials *Collection[models.VotingCredential]
	usedIDs     *Collection[string]
	votes       *Collection[models.VoteRecord]
	retry       docstore.Retrier
	now         func() time.Time
}

// NewVoteService creates a service over the given store.
func NewVoteService(store docstore.Store, retry docstore.Retrier) *VoteService {
	return &VoteService{
		credentials: NewCollection[models.VotingCredential](store, VotingIDsDoc, retry),
		usedIDs:     NewCollection[string](store, UsedIDsDoc, retry),
		votes:       NewCollection[models.VoteRecord](store, VotesDoc, retry),
		retry:       retry,
		now:         time.Now,
	}
}

// CredentialStatus reports whether a voting id exists and has been consumed.
type CredentialStatus struct {
	Valid       bool
	Used        bool
	PlayerName  string
	GameEdition string
}

// CheckCredential looks up a voting id without mutating anything.
func (s *VoteService) CheckCredential(ctx context.Context, votingID string) (CredentialStatus, error) {
	cred, ok, err := s.credentials.Find(ctx, func(c models.VotingCredential) bool {
		return c.ID == votingID
	})
	if err != nil {
		return CredentialStatus{}, err
	}
	if !ok {
		return CredentialStatus{}, nil
	}

	used, err := s.usedIDs.All(ctx)
	if err != nil {
		return CredentialStatus{}, err
	}
	return CredentialStatus{
		Valid:       true,
		Used:        slices.Contains(used, votingID),
		PlayerName:  cred.PlayerName,
		GameEdition: cred.GameEdition,
	}, nil
}

// SubmitResult reports the outcome of a successful submission.
type SubmitResult struct {
	// AlreadyVoted means the id was consumed before this request took
	// effect. Reported as success so a client retry after a dropped
	// response doesn't alarm the voter.
	AlreadyVoted bool
}

// SubmitVote casts a vote:
//
//  1. Validate the voting id against the credential collection.
//  2. Mark the id consumed: a retried read-check-append cycle on the used-id
//     document. The CAS write is the serialization point; exactly one
//     concurrent submission per id wins it, and everyone else observes the
//     id as used and returns AlreadyVoted.
//  3. Append the vote record, retried independently. Once the mark from
//     step 2 committed, re-running step 2 could no longer duplicate the
//     vote, so this append is safe to retry on conflicts.
//
// Marking before recording makes the partial-failure window fail closed: if
// step 3 fails terminally the id is consumed with no recorded vote, which
// comes back as ErrVoteNotRecorded rather than a reusable credential.
func (s *VoteService) SubmitVote(ctx context.Context, req models.SubmitVoteRequest) (SubmitResult, error) {
	cred, ok, err := s.credentials.Find(ctx, func(c models.VotingCredential) bool {
		return c.ID == req.VotingID
	})
	if err != nil {
		return SubmitResult{}, err
	}
	if !ok {
		return SubmitResult{}, fmt.Errorf("%w: %q", ErrInvalidCredential, req.VotingID)
	}

	alreadyVoted := false
	err = s.retry.Do(ctx, func(ctx context.Context) error {
		used, version, err := s.usedIDs.Load(ctx)
		if err != nil {
			return err
		}
		if slices.Contains(used, req.VotingID) {
			alreadyVoted = true
			return nil
		}
		return s.usedIDs.Save(ctx, append(used, req.VotingID), version)
	})
	if err != nil {
		return SubmitResult{}, err
	}
	if alreadyVoted {
		slog.Info("duplicate vote submission", "voting_id", req.VotingID)
		return SubmitResult{AlreadyVoted: true}, nil
	}

	record := models.VoteRecord{
		ID:            uuid.NewString(),
		VotingID:      req.VotingID,
		Party:         req.Party,
		MinecraftName: cred.PlayerName,
		GameEdition:   cred.GameEdition,
		RealName:      req.RealName,
		DiscordInsta:  req.DiscordInsta,
		Timestamp:     s.now().UTC(),
	}
	if err := s.votes.Append(ctx, record); err != nil {
		slog.Error("vote lost after credential consumed", "voting_id", req.VotingID, "error", err)
		return SubmitResult{}, fmt.Errorf("%w: %v", ErrVoteNotRecorded, err)
	}

	slog.Info("vote recorded", "voting_id", req.VotingID, "party", req.Party)
	return SubmitResult{}, nil
}

// Records returns all cast votes.
func (s *VoteService) Records(ctx context.Context) ([]models.VoteRecord, error) {
	return s.votes.All(ctx)
}
