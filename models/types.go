// Copyright (c) 2025 The Blockvote Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Game edition constants
const (
	EditionJava    = "java"
	EditionBedrock = "bedrock"
)

// Request types

type CheckVotingIDRequest struct {
	VotingID string `json:"votingId"`
}

type SubmitVoteRequest struct {
	VotingID     string `json:"votingId"`
	Party        string `json:"party"`
	RealName     string `json:"realName,omitempty"`
	DiscordInsta string `json:"discordInsta,omitempty"`
}

type RegisterCandidateRequest struct {
	PartyName     string `json:"partyName"`
	CandidateName string `json:"candidateName"`
	Password      string `json:"password"`
	Slogan        string `json:"slogan,omitempty"`
	Color         string `json:"color,omitempty"`
}

// Response types

type CheckVotingIDResponse struct {
	Success     bool   `json:"success"`
	Valid       bool   `json:"valid"`
	Used        bool   `json:"used"`
	PlayerName  string `json:"playerName,omitempty"`
	GameEdition string `json:"gameEdition,omitempty"`
}

type SubmitVoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type RegisterCandidateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type CollectionStatus struct {
	Name  string `json:"name"`
	Items int    `json:"items"`
	Size  string `json:"size"`
}

type StatusResponse struct {
	Collections []CollectionStatus `json:"collections"`
}

// Domain types

// Candidate is a registered party entry. Created once at registration and
// never mutated afterwards. PartyName is unique across the collection,
// compared case-insensitively.
type Candidate struct {
	PartyName     string    `json:"partyName"`
	CandidateName string    `json:"candidateName"`
	Password      string    `json:"password"`
	Slogan        string    `json:"slogan,omitempty"`
	Color         string    `json:"color,omitempty"`
	RegisteredAt  time.Time `json:"registeredAt"`
}

// Public returns the candidate without its password for list responses.
func (c Candidate) Public() CandidatePublic {
	return CandidatePublic{
		PartyName:     c.PartyName,
		CandidateName: c.CandidateName,
		Slogan:        c.Slogan,
		Color:         c.Color,
		RegisteredAt:  c.RegisteredAt,
	}
}

type CandidatePublic struct {
	PartyName     string    `json:"partyName"`
	CandidateName string    `json:"candidateName"`
	Slogan        string    `json:"slogan,omitempty"`
	Color         string    `json:"color,omitempty"`
	RegisteredAt  time.Time `json:"registeredAt"`
}

// VotingCredential authorizes exactly one vote. Provisioned out of band;
// this system only reads the collection.
type VotingCredential struct {
	ID          string `json:"id"`
	PlayerName  string `json:"playerName"`
	GameEdition string `json:"gameEdition"`
}

// VoteRecord is one cast vote. Append-only; at most one record exists per
// voting id, enforced by the used-id mark protocol rather than by a
// uniqueness constraint here.
type VoteRecord struct {
	ID            string    `json:"id"`
	VotingID      string    `json:"votingId"`
	Party         string    `json:"party"`
	MinecraftName string    `json:"minecraftName"`
	GameEdition   string    `json:"gameEdition"`
	RealName      string    `json:"realName,omitempty"`
	DiscordInsta  string    `json:"discordInsta,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
