// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"blockvote/cliparse"
	"blockvote/docstore"
	"blockvote/election"
	"blockvote/handlers"
	"blockvote/middleware"
)

func NewRouter(store docstore.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize services and handlers
	retry := docstore.Retrier{}
	voteService := election.NewVoteService(store, retry)
	candidateService := election.NewCandidateService(store, retry)

	votingHandler := handlers.NewVotingHandler(voteService)
	candidateHandler := handlers.NewCandidateHandler(candidateService)
	adminHandler := handlers.NewAdminHandler(voteService, store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting operations (public)
	mux.HandleFunc("POST /api/check-voting-id", middleware.WithLogging(votingHandler.CheckVotingID))
	mux.HandleFunc("POST /api/submit-vote", middleware.WithLogging(votingHandler.SubmitVote))

	// Candidate operations (public)
	mux.HandleFunc("POST /api/register-candidate", middleware.WithLogging(candidateHandler.Register))
	mux.HandleFunc("GET /api/candidates", middleware.WithLogging(candidateHandler.List))

	// Admin operations (require X-Admin-Token)
	mux.HandleFunc("GET /api/votes", middleware.WithLogging(adminHandler.Votes))
	mux.HandleFunc("GET /api/status", middleware.WithLogging(adminHandler.Status))

	// Root endpoint; {$} keeps it from swallowing unknown paths
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("blockvote API v1"))
	})

	return mux
}
