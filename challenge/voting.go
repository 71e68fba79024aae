// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package challenge

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chasingcats/api/models"
)

// CastVote records voterID's vote for an entry.
//
// Fails with ErrNotFound if the entry doesn't exist, ErrForbidden on a
// self-vote (checked before the phase, so owners get a consistent answer in
// every phase), ErrInvalidState unless the parent challenge's effective
// status is voting, and ErrConflict when (entry, voter) already has a vote.
// Retries by the same voter surface ErrConflict rather than silently
// succeeding; callers rely on that to flip UI state to "already voted".
//
// A voter may vote for many different entries in the same challenge; the
// uniqueness invariant is per entry, backed by the (entry_id, voter_id)
// unique constraint so concurrent duplicates lose the race cleanly.
func CastVote(db *sql.DB, now time.Time, entryID, voterID string) (models.Vote, error) {
	if voterID == "" {
		return models.Vote{}, &ValidationError{Field: "voter_id", Reason: "is required"}
	}

	var ownerID string
	var c models.Challenge
	err := db.QueryRow(`
		SELECT e.user_id,
		       c.id, c.start_date, c.end_date, c.voting_end, c.status, c.status_override
		FROM challenge_entry e
		JOIN photo_challenge c ON e.challenge_id = c.id
		WHERE e.id = $1
	`, entryID).Scan(
		&ownerID,
		&c.ID, &c.StartDate, &c.EndDate, &c.VotingEnd, &c.Status, &c.StatusOverride,
	)

	if err == sql.ErrNoRows {
		return models.Vote{}, fmt.Errorf("entry %q: %w", entryID, ErrNotFound)
	}
	if err != nil {
		return models.Vote{}, fmt.Errorf("failed to query entry: %w", err)
	}

	if voterID == ownerID {
		return models.Vote{}, fmt.Errorf("cannot vote for your own entry: %w", ErrForbidden)
	}

	if status := EffectiveStatus(now, c); status != models.StatusVoting {
		return models.Vote{}, fmt.Errorf("challenge is %s, not accepting votes: %w", status, ErrInvalidState)
	}

	v := models.Vote{
		ID:        uuid.NewString(),
		EntryID:   entryID,
		VoterID:   voterID,
		CreatedAt: now,
	}

	_, err = db.Exec(`
		INSERT INTO challenge_vote (id, entry_id, voter_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, v.ID, v.EntryID, v.VoterID, v.CreatedAt)

	if err != nil {
		if isUniqueViolation(err, "challenge_vote_entry_id_voter_id_key") {
			return models.Vote{}, fmt.Errorf("already voted for this entry: %w", ErrConflict)
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	return v, nil
}
