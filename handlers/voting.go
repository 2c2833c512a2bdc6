// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"blockvote/docstore"
	"blockvote/election"
	"blockvote/middleware"
	"blockvote/models"
)

type VotingHandler struct {
	votes *election.VoteService
}

func NewVotingHandler(votes *election.VoteService) *VotingHandler {
	return &VotingHandler{votes: votes}
}

// CheckVotingID handles POST /api/check-voting-id
func (h *VotingHandler) CheckVotingID(w http.ResponseWriter, r *http.Request) {
	var req models.CheckVotingIDRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.VotingID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "votingId is required")
		return
	}

	status, err := h.votes.CheckCredential(r.Context(), req.VotingID)
	if err != nil {
		slog.Error("failed to check voting id", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckVotingIDResponse{
		Success:     true,
		Valid:       status.Valid,
		Used:        status.Used,
		PlayerName:  status.PlayerName,
		GameEdition: status.GameEdition,
	})
}

// SubmitVote handles POST /api/submit-vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.JSONResponse(w, http.StatusBadRequest, models.SubmitVoteResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}
	if req.VotingID == "" || req.Party == "" {
		middleware.JSONResponse(w, http.StatusBadRequest, models.SubmitVoteResponse{
			Success: false,
			Message: "votingId and party are required",
		})
		return
	}

	result, err := h.votes.SubmitVote(r.Context(), req)
	if err != nil {
		h.submitError(w, req, err)
		return
	}

	if result.AlreadyVoted {
		middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
			Success: true,
			Message: "This Voting ID has already been used.",
		})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
		Success: true,
		Message: "Vote submitted successfully.",
	})
}

// submitError maps the vote service's terminal outcomes to responses.
// Order matters: the specific sentinels are checked before the generic
// storage fallback.
func (h *VotingHandler) submitError(w http.ResponseWriter, req models.SubmitVoteRequest, err error) {
	switch {
	case errors.Is(err, election.ErrInvalidCredential):
		middleware.JSONResponse(w, http.StatusBadRequest, models.SubmitVoteResponse{
			Success: false,
			Message: "Invalid Voting ID. Please check your ID and try again.",
		})
	case errors.Is(err, election.ErrVoteNotRecorded):
		// The credential is consumed but the vote is lost. Surface it
		// loudly; an admin must reconcile by hand.
		slog.Error("vote submission left a consumed credential without a vote",
			"voting_id", req.VotingID, "error", err)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.SubmitVoteResponse{
			Success: false,
			Message: "Your vote could not be recorded. Please contact an election admin.",
		})
	case errors.Is(err, docstore.ErrRetriesExhausted):
		middleware.JSONResponse(w, http.StatusServiceUnavailable, models.SubmitVoteResponse{
			Success: false,
			Message: "The election is receiving concurrent updates. Please try again.",
		})
	default:
		slog.Error("failed to submit vote", "voting_id", req.VotingID, "error", err)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.SubmitVoteResponse{
			Success: false,
			Message: "Storage error. Please try again later.",
		})
	}
}
