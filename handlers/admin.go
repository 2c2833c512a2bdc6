// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"blockvote/auth"
	"blockvote/cliparse"
	"blockvote/docstore"
	"blockvote/election"
	"blockvote/middleware"
	"blockvote/models"
)

type AdminHandler struct {
	votes *election.VoteService
	store docstore.Store
	cfg   cliparse.Config
}

func NewAdminHandler(votes *election.VoteService, store docstore.Store, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{votes: votes, store: store, cfg: cfg}
}

func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.ValidateAdminToken(r.Header.Get("X-Admin-Token"), h.cfg.AdminToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin token")
		return false
	}
	return true
}

// Votes handles GET /api/votes (admin)
func (h *AdminHandler) Votes(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	votes, err := h.votes.Records(r.Context())
	if err != nil {
		slog.Error("failed to list votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	if votes == nil {
		votes = []models.VoteRecord{}
	}
	middleware.JSONResponse(w, http.StatusOK, votes)
}

// Status handles GET /api/status (admin)
func (h *AdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	resp := models.StatusResponse{Collections: make([]models.CollectionStatus, 0, len(election.CollectionNames))}
	for _, name := range election.CollectionNames {
		content, _, err := h.store.Read(r.Context(), name)
		if errors.Is(err, docstore.ErrNotFound) {
			resp.Collections = append(resp.Collections, models.CollectionStatus{
				Name: name,
				Size: humanize.IBytes(0),
			})
			continue
		}
		if err != nil {
			slog.Error("failed to read collection status", "collection", name, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
			return
		}

		var items []json.RawMessage
		if err := json.Unmarshal(content, &items); err != nil {
			slog.Error("malformed collection document", "collection", name, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Malformed collection document")
			return
		}
		resp.Collections = append(resp.Collections, models.CollectionStatus{
			Name:  name,
			Items: len(items),
			Size:  humanize.IBytes(uint64(len(content))),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
