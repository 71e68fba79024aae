// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package challenge

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/chasingcats/api/models"
)

// ResolveStatus derives a challenge's lifecycle status from the current time
// and its three date boundaries:
//
//	now < start              → upcoming
//	start <= now < end       → active
//	end <= now < votingEnd   → voting
//	now >= votingEnd         → completed
//
// Callers are expected to pass start <= end <= votingEnd; with a malformed
// ordering the function still returns one of the four values (the first
// matching boundary wins). The result is monotonic in now.
func ResolveStatus(now, start, end, votingEnd time.Time) string {
	switch {
	case now.Before(start):
		return models.StatusUpcoming
	case now.Before(end):
		return models.StatusActive
	case now.Before(votingEnd):
		return models.StatusVoting
	default:
		return models.StatusCompleted
	}
}

// EffectiveStatus is the status a challenge should have right now: the stored
// status while an admin override is pinned, otherwise the date-derived one.
func EffectiveStatus(now time.Time, c models.Challenge) string {
	if c.StatusOverride {
		return c.Status
	}
	return ResolveStatus(now, c.StartDate, c.EndDate, c.VotingEnd)
}

// Reconcile recomputes the stored status of every challenge whose natural
// state may have changed with elapsed time, persisting only rows that differ.
// Challenges pinned by an admin override are skipped. Idempotent and safe to
// run concurrently from multiple requests (last write wins). Returns the
// number of rows updated.
func Reconcile(db *sql.DB, now time.Time) (int, error) {
	rows, err := db.Query(`
		SELECT id, start_date, end_date, voting_end, status
		FROM photo_challenge
		WHERE status_override = FALSE
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to query challenges for reconcile: %w", err)
	}
	defer rows.Close()

	type stale struct {
		id     string
		status string
	}
	var pending []stale

	for rows.Next() {
		var id, stored string
		var start, end, votingEnd time.Time
		if err := rows.Scan(&id, &start, &end, &votingEnd, &stored); err != nil {
			return 0, fmt.Errorf("failed to scan challenge: %w", err)
		}
		if computed := ResolveStatus(now, start, end, votingEnd); computed != stored {
			pending = append(pending, stale{id: id, status: computed})
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to iterate challenges: %w", err)
	}

	updated := 0
	for _, p := range pending {
		// Re-check the override flag in the UPDATE so a concurrent admin
		// pin between our read and this write is respected.
		res, err := db.Exec(`
			UPDATE photo_challenge
			SET status = $1
			WHERE id = $2 AND status_override = FALSE
		`, p.status, p.id)
		if err != nil {
			return updated, fmt.Errorf("failed to update challenge status: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			updated++
		}
	}

	return updated, nil
}
