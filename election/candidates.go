// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"blockvote/docstore"
	"blockvote/models"
)

// ErrDuplicateParty is returned when a party name is already registered,
// compared case-insensitively. Terminal business rule, never retried.
var ErrDuplicateParty = errors.New("party name already registered")

// CandidateService handles candidate registration and listing.
type CandidateService struct {
	candidates *Collection[models.Candidate]
	now        func() time.Time
}

// NewCandidateService creates a service over the given store.
func NewCandidateService(store docstore.Store, retry docstore.Retrier) *CandidateService {
	return &CandidateService{
		candidates: NewCollection[models.Candidate](store, CandidatesDoc, retry),
		now:        time.Now,
	}
}

// Register appends a candidate unless the party name is taken. The
// uniqueness check and the CAS write run inside one retried unit, so a
// duplicate registered concurrently between attempts is still rejected.
func (s *CandidateService) Register(ctx context.Context, req models.RegisterCandidateRequest) error {
	candidate := models.Candidate{
		PartyName:     req.PartyName,
		CandidateName: req.CandidateName,
		Password:      req.Password,
		Slogan:        req.Slogan,
		Color:         req.Color,
		RegisteredAt:  s.now().UTC(),
	}

	err := s.candidates.AppendUnique(ctx, candidate, func(existing models.Candidate) bool {
		return strings.EqualFold(existing.PartyName, candidate.PartyName)
	})
	if errors.Is(err, ErrAlreadyExists) {
		return fmt.Errorf("%w: %q", ErrDuplicateParty, req.PartyName)
	}
	if err != nil {
		return err
	}

	slog.Info("candidate registered", "party", req.PartyName)
	return nil
}

// List returns all candidates with passwords stripped.
func (s *CandidateService) List(ctx context.Context) ([]models.CandidatePublic, error) {
	candidates, err := s.candidates.All(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]models.CandidatePublic, 0, len(candidates))
	for _, c := range candidates {
		public = append(public, c.Public())
	}
	return public, nil
}
