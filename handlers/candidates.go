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

type CandidateHandler struct {
	candidates *election.CandidateService
}

func NewCandidateHandler(candidates *election.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

// Register handles POST /api/register-candidate
func (h *CandidateHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.JSONResponse(w, http.StatusBadRequest, models.RegisterCandidateResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}
	if req.PartyName == "" || req.CandidateName == "" || req.Password == "" {
		middleware.JSONResponse(w, http.StatusBadRequest, models.RegisterCandidateResponse{
			Success: false,
			Message: "partyName, candidateName, and password are required",
		})
		return
	}

	err := h.candidates.Register(r.Context(), req)
	switch {
	case err == nil:
		middleware.JSONResponse(w, http.StatusCreated, models.RegisterCandidateResponse{
			Success: true,
			Message: "Candidate registered successfully.",
		})
	case errors.Is(err, election.ErrDuplicateParty):
		middleware.JSONResponse(w, http.StatusConflict, models.RegisterCandidateResponse{
			Success: false,
			Message: "A party with that name is already registered.",
		})
	case errors.Is(err, docstore.ErrRetriesExhausted):
		middleware.JSONResponse(w, http.StatusServiceUnavailable, models.RegisterCandidateResponse{
			Success: false,
			Message: "The election is receiving concurrent updates. Please try again.",
		})
	default:
		slog.Error("failed to register candidate", "party", req.PartyName, "error", err)
		middleware.JSONResponse(w, http.StatusInternalServerError, models.RegisterCandidateResponse{
			Success: false,
			Message: "Storage error. Please try again later.",
		})
	}
}

// List handles GET /api/candidates
func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.List(r.Context())
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	if candidates == nil {
		candidates = []models.CandidatePublic{}
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}
