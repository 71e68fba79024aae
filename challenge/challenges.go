// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package challenge

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/chasingcats/api/auth"
	"github.com/chasingcats/api/models"
)

const challengeColumns = `id, slug, title, theme, description, rules, banner_url,
       start_date, end_date, voting_end, status, status_override, featured, created_at`

// Create validates and persists a new challenge. The initial status is derived
// from the dates, never taken from the caller. Slug must be URL-safe; when the
// request carries none, a deterministic base62 slug is derived from the new
// challenge ID and slugSalt. A duplicate slug surfaces ErrConflict.
func Create(db *sql.DB, now time.Time, slugSalt string, req models.CreateChallengeRequest) (models.Challenge, error) {
	if req.Title == "" {
		return models.Challenge{}, &ValidationError{Field: "title", Reason: "is required"}
	}
	if req.Theme == "" {
		return models.Challenge{}, &ValidationError{Field: "theme", Reason: "is required"}
	}
	if req.Slug != "" && !auth.ValidSlug(req.Slug) {
		return models.Challenge{}, &ValidationError{Field: "slug", Reason: "must be URL-safe (alphanumerics and hyphens)"}
	}
	if err := validateDates(req.StartDate, req.EndDate, req.VotingEnd); err != nil {
		return models.Challenge{}, err
	}

	id, err := auth.GenerateID(16)
	if err != nil {
		return models.Challenge{}, fmt.Errorf("failed to generate challenge ID: %w", err)
	}

	slug := req.Slug
	if slug == "" {
		slug = auth.GenerateSlug(id, slugSalt)
	}

	c := models.Challenge{
		ID:          id,
		Slug:        slug,
		Title:       req.Title,
		Theme:       req.Theme,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		VotingEnd:   req.VotingEnd,
		Status:      ResolveStatus(now, req.StartDate, req.EndDate, req.VotingEnd),
		Featured:    req.Featured,
		CreatedAt:   now,
	}
	if req.Rules != "" {
		c.Rules = &req.Rules
	}
	if req.BannerURL != "" {
		c.BannerURL = &req.BannerURL
	}

	_, err = db.Exec(`
		INSERT INTO photo_challenge (id, slug, title, theme, description, rules, banner_url,
		                             start_date, end_date, voting_end, status, status_override, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, $12, $13)
	`, c.ID, c.Slug, c.Title, c.Theme, c.Description, c.Rules, c.BannerURL,
		c.StartDate, c.EndDate, c.VotingEnd, c.Status, c.Featured, c.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "photo_challenge_slug_key") {
			return models.Challenge{}, fmt.Errorf("slug %q already in use: %w", c.Slug, ErrConflict)
		}
		return models.Challenge{}, fmt.Errorf("failed to insert challenge: %w", err)
	}

	return c, nil
}

// Update applies an administrator edit: status override, featured flag, and
// date changes. Setting a status pins it (reconciliation skips the challenge)
// and deliberately skips date validation - it is an explicit override. Editing
// any date revalidates the ordering, clears the override, and re-derives the
// status from the new dates.
func Update(db *sql.DB, now time.Time, challengeID string, req models.UpdateChallengeRequest) (models.Challenge, error) {
	c, err := GetByID(db, challengeID)
	if err != nil {
		return models.Challenge{}, err
	}

	if req.StartDate != nil || req.EndDate != nil || req.VotingEnd != nil {
		if req.StartDate != nil {
			c.StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			c.EndDate = *req.EndDate
		}
		if req.VotingEnd != nil {
			c.VotingEnd = *req.VotingEnd
		}
		if err := validateDates(c.StartDate, c.EndDate, c.VotingEnd); err != nil {
			return models.Challenge{}, err
		}
		// A date edit hands status back to automatic resolution.
		c.StatusOverride = false
		c.Status = ResolveStatus(now, c.StartDate, c.EndDate, c.VotingEnd)
	}

	if req.Status != nil {
		if !validStatus(*req.Status) {
			return models.Challenge{}, &ValidationError{Field: "status", Reason: "must be one of upcoming, active, voting, completed"}
		}
		c.Status = *req.Status
		c.StatusOverride = true
	}

	if req.Featured != nil {
		c.Featured = *req.Featured
	}

	_, err = db.Exec(`
		UPDATE photo_challenge
		SET start_date = $1, end_date = $2, voting_end = $3,
		    status = $4, status_override = $5, featured = $6
		WHERE id = $7
	`, c.StartDate, c.EndDate, c.VotingEnd, c.Status, c.StatusOverride, c.Featured, c.ID)

	if err != nil {
		return models.Challenge{}, fmt.Errorf("failed to update challenge: %w", err)
	}

	return c, nil
}

// GetByID fetches a challenge by its ID. Returns ErrNotFound if missing.
func GetByID(db *sql.DB, challengeID string) (models.Challenge, error) {
	return getChallenge(db, "id", challengeID)
}

// GetBySlug fetches a challenge by its slug. Returns ErrNotFound if missing.
func GetBySlug(db *sql.DB, slug string) (models.Challenge, error) {
	return getChallenge(db, "slug", slug)
}

func getChallenge(db *sql.DB, column, value string) (models.Challenge, error) {
	var c models.Challenge
	err := db.QueryRow(`
		SELECT `+challengeColumns+`
		FROM photo_challenge
		WHERE `+column+` = $1
	`, value).Scan(
		&c.ID, &c.Slug, &c.Title, &c.Theme, &c.Description, &c.Rules, &c.BannerURL,
		&c.StartDate, &c.EndDate, &c.VotingEnd, &c.Status, &c.StatusOverride, &c.Featured, &c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return models.Challenge{}, fmt.Errorf("challenge %s=%q: %w", column, value, ErrNotFound)
	}
	if err != nil {
		return models.Challenge{}, fmt.Errorf("failed to query challenge: %w", err)
	}

	return c, nil
}

func validateDates(start, end, votingEnd time.Time) error {
	if start.IsZero() || end.IsZero() || votingEnd.IsZero() {
		return &ValidationError{Field: "dates", Reason: "start_date, end_date and voting_end are required"}
	}
	if !start.Before(end) {
		return &ValidationError{Field: "end_date", Reason: "must be after start_date"}
	}
	if votingEnd.Before(end) {
		return &ValidationError{Field: "voting_end", Reason: "must not be before end_date"}
	}
	return nil
}

func validStatus(status string) bool {
	switch status {
	case models.StatusUpcoming, models.StatusActive, models.StatusVoting, models.StatusCompleted:
		return true
	}
	return false
}
