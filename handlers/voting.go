// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/chasingcats/api/challenge"
	"github.com/chasingcats/api/cliparse"
	"github.com/chasingcats/api/middleware"
	"github.com/chasingcats/api/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// CastVote handles POST /entries/{id}/votes
// One vote per voter per entry; a repeat vote surfaces 409 so the UI can
// flip to "already voted".
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")
	if entryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "entry id is required")
		return
	}

	voterID := middleware.UserID(r)
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID header required")
		return
	}

	vote, err := challenge.CastVote(h.db, time.Now(), entryID, voterID)
	if err != nil {
		writeEngineError(w, err, "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "entry_id", entryID, "vote_id", vote.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Vote: vote,
	})
}
