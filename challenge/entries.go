// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package challenge

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/chasingcats/api/models"
)

// Audit carries optional submission metadata recorded alongside an entry.
type Audit struct {
	IPHash    string
	UserAgent string
}

// SubmitEntry creates a participant's entry for a challenge.
//
// Fails with ErrNotFound if the challenge doesn't exist, ValidationError on
// malformed input, ErrInvalidState unless the challenge's effective status is
// active, and ErrConflict if the user already entered. The one-entry-per-user
// invariant is backed by the (challenge_id, user_id) unique constraint, so a
// concurrent duplicate loses the race and still surfaces ErrConflict.
func SubmitEntry(db *sql.DB, now time.Time, challengeID, userID string, req models.SubmitEntryRequest, audit Audit) (models.Entry, error) {
	if userID == "" {
		return models.Entry{}, &ValidationError{Field: "user_id", Reason: "is required"}
	}

	c, err := GetByID(db, challengeID)
	if err != nil {
		return models.Entry{}, err
	}

	if err := validateEntryFields(req); err != nil {
		return models.Entry{}, err
	}

	if status := EffectiveStatus(now, c); status != models.StatusActive {
		return models.Entry{}, fmt.Errorf("challenge is %s, not accepting entries: %w", status, ErrInvalidState)
	}

	e := models.Entry{
		ID:          uuid.NewString(),
		ChallengeID: c.ID,
		UserID:      userID,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
	}
	if req.Title != "" {
		e.Title = &req.Title
	}
	if req.Caption != "" {
		e.Caption = &req.Caption
	}
	if audit.IPHash != "" {
		e.IPHash = &audit.IPHash
	}
	if audit.UserAgent != "" {
		e.UserAgent = &audit.UserAgent
	}

	_, err = db.Exec(`
		INSERT INTO challenge_entry (id, challenge_id, user_id, title, caption, image_url, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.ChallengeID, e.UserID, e.Title, e.Caption, e.ImageURL, e.IPHash, e.UserAgent, e.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "challenge_entry_challenge_id_user_id_key") {
			return models.Entry{}, fmt.Errorf("user already entered this challenge: %w", ErrConflict)
		}
		return models.Entry{}, fmt.Errorf("failed to insert entry: %w", err)
	}

	return e, nil
}

// DeleteEntry removes an entry; its votes go with it via ON DELETE CASCADE.
// Administrator-only at the HTTP layer. Returns ErrNotFound if the entry
// doesn't exist.
func DeleteEntry(db *sql.DB, entryID string) error {
	res, err := db.Exec(`DELETE FROM challenge_entry WHERE id = $1`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
	}

	return nil
}

func validateEntryFields(req models.SubmitEntryRequest) error {
	if len(req.Title) > models.MaxEntryTitleLen {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("must be at most %d characters", models.MaxEntryTitleLen)}
	}
	if len(req.Caption) > models.MaxEntryCaptionLen {
		return &ValidationError{Field: "caption", Reason: fmt.Sprintf("must be at most %d characters", models.MaxEntryCaptionLen)}
	}
	if req.ImageURL == "" {
		return &ValidationError{Field: "image_url", Reason: "is required"}
	}
	u, err := url.Parse(req.ImageURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &ValidationError{Field: "image_url", Reason: "must be an absolute URL"}
	}
	return nil
}
