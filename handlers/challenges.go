// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/chasingcats/api/auth"
	"github.com/chasingcats/api/challenge"
	"github.com/chasingcats/api/cliparse"
	"github.com/chasingcats/api/middleware"
	"github.com/chasingcats/api/models"
)

type ChallengeHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewChallengeHandler(db *sql.DB, cfg cliparse.Config) *ChallengeHandler {
	return &ChallengeHandler{db: db, cfg: cfg}
}

// Create handles POST /challenges
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.CreateChallengeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := challenge.Create(h.db, time.Now(), h.cfg.SlugSalt, req)
	if err != nil {
		writeEngineError(w, err, "Failed to create challenge")
		return
	}

	slog.Info("challenge created", "challenge_id", c.ID, "slug", c.Slug, "status", c.Status)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateChallengeResponse{
		Challenge: c,
	})
}

// List handles GET /challenges
// Reconciles statuses first so the listing never shows a stale phase.
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, err := challenge.Reconcile(h.db, time.Now()); err != nil {
		slog.Error("failed to reconcile challenge statuses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT c.id, c.slug, c.title, c.theme, c.description, c.rules, c.banner_url,
		       c.start_date, c.end_date, c.voting_end, c.status, c.status_override, c.featured, c.created_at,
		       (SELECT COUNT(*) FROM challenge_entry e WHERE e.challenge_id = c.id) AS entry_count
		FROM photo_challenge c
		ORDER BY c.featured DESC, c.start_date DESC
	`)
	if err != nil {
		slog.Error("failed to query challenges", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	challenges := []models.ChallengeSummary{}
	for rows.Next() {
		var cs models.ChallengeSummary
		if err := rows.Scan(
			&cs.ID, &cs.Slug, &cs.Title, &cs.Theme, &cs.Description, &cs.Rules, &cs.BannerURL,
			&cs.StartDate, &cs.EndDate, &cs.VotingEnd, &cs.Status, &cs.StatusOverride, &cs.Featured, &cs.CreatedAt,
			&cs.EntryCount,
		); err != nil {
			slog.Error("failed to scan challenge", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		challenges = append(challenges, cs)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListChallengesResponse{
		Challenges: challenges,
	})
}

// Get handles GET /challenges/{slug}
// Returns the challenge plus its entries with vote counts. ?order=rank sorts
// entries by vote count (ties earliest-first); default is most recent first.
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	if _, err := challenge.Reconcile(h.db, time.Now()); err != nil {
		slog.Error("failed to reconcile challenge statuses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	c, err := challenge.GetBySlug(h.db, slug)
	if err != nil {
		writeEngineError(w, err, "Database error")
		return
	}

	var entries []models.EntryStats
	if r.URL.Query().Get("order") == "rank" {
		entries, err = challenge.RankEntries(h.db, c.ID)
		if err != nil {
			writeEngineError(w, err, "Database error")
			return
		}
	} else {
		entries, err = h.entriesByRecency(c.ID)
		if err != nil {
			slog.Error("failed to query entries", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.ChallengeDetailResponse{
		Challenge: c,
		Entries:   entries,
	})
}

// Update handles PATCH /challenges/{id}
// Administrator override of status/featured, and date edits. Forcing a status
// pins it until a date edit returns the challenge to automatic resolution.
func (h *ChallengeHandler) Update(w http.ResponseWriter, r *http.Request) {
	challengeID := r.PathValue("id")
	if challengeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "challenge id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.UpdateChallengeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := challenge.Update(h.db, time.Now(), challengeID, req)
	if err != nil {
		writeEngineError(w, err, "Failed to update challenge")
		return
	}

	slog.Info("challenge updated", "challenge_id", c.ID,
		"status", c.Status, "status_override", c.StatusOverride, "featured", c.Featured)

	middleware.JSONResponse(w, http.StatusOK, models.CreateChallengeResponse{
		Challenge: c,
	})
}

// Rankings handles GET /challenges/{slug}/rankings
// For completed challenges the top 3 are surfaced as the designated winners.
func (h *ChallengeHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	c, err := challenge.GetBySlug(h.db, slug)
	if err != nil {
		writeEngineError(w, err, "Database error")
		return
	}

	ranked, err := challenge.RankEntries(h.db, c.ID)
	if err != nil {
		writeEngineError(w, err, "Database error")
		return
	}

	resp := models.RankingsResponse{
		ChallengeID: c.ID,
		Rankings:    ranked,
	}
	if challenge.EffectiveStatus(time.Now(), c) == models.StatusCompleted {
		n := challenge.WinnerCount
		if len(ranked) < n {
			n = len(ranked)
		}
		resp.Winners = ranked[:n]
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

func (h *ChallengeHandler) entriesByRecency(challengeID string) ([]models.EntryStats, error) {
	rows, err := h.db.Query(`
		SELECT e.id, e.challenge_id, e.user_id, e.title, e.caption, e.image_url, e.created_at,
		       COUNT(v.id) AS vote_count
		FROM challenge_entry e
		LEFT JOIN challenge_vote v ON v.entry_id = e.id
		WHERE e.challenge_id = $1
		GROUP BY e.id, e.challenge_id, e.user_id, e.title, e.caption, e.image_url, e.created_at
		ORDER BY e.created_at DESC, e.id DESC
	`, challengeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.EntryStats{}
	for rows.Next() {
		var es models.EntryStats
		if err := rows.Scan(
			&es.ID, &es.ChallengeID, &es.UserID, &es.Title, &es.Caption, &es.ImageURL, &es.CreatedAt,
			&es.VoteCount,
		); err != nil {
			return nil, err
		}
		entries = append(entries, es)
	}

	return entries, rows.Err()
}
