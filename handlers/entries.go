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

type EntryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewEntryHandler(db *sql.DB, cfg cliparse.Config) *EntryHandler {
	return &EntryHandler{db: db, cfg: cfg}
}

// Submit handles POST /challenges/{slug}/entries
func (h *EntryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	userID := middleware.UserID(r)
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID header required")
		return
	}

	var req models.SubmitEntryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := challenge.GetBySlug(h.db, slug)
	if err != nil {
		writeEngineError(w, err, "Database error")
		return
	}

	// Audit trail, same treatment as the client IP on ballot rows
	clientIP := middleware.GetClientIP(r)
	audit := challenge.Audit{
		IPHash:    auth.HashIP(clientIP, h.cfg.AdminKeySalt),
		UserAgent: r.UserAgent(),
	}

	entry, err := challenge.SubmitEntry(h.db, time.Now(), c.ID, userID, req, audit)
	if err != nil {
		writeEngineError(w, err, "Failed to submit entry")
		return
	}

	slog.Info("entry submitted", "challenge_id", c.ID, "entry_id", entry.ID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitEntryResponse{
		Entry: entry,
	})
}

// Delete handles DELETE /entries/{id}
// Administrator-only; the entry's votes are removed with it.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entryID := r.PathValue("id")
	if entryID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "entry id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if err := challenge.DeleteEntry(h.db, entryID); err != nil {
		writeEngineError(w, err, "Failed to delete entry")
		return
	}

	slog.Info("entry deleted", "entry_id", entryID)

	w.WriteHeader(http.StatusNoContent)
}
