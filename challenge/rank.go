// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package challenge

import (
	"database/sql"
	"fmt"

	"github.com/chasingcats/api/models"
)

// WinnerCount is how many top-ranked entries of a completed challenge are
// designated winners (1st/2nd/3rd). Ranks beyond it carry no special meaning.
const WinnerCount = 3

// RankEntries returns a challenge's entries ordered by vote count descending.
// Ties break by entry creation time ascending (earlier submissions rank
// higher), then by entry ID, so winner lists never reorder between renders on
// equal counts. Ranks are 1-indexed. Returns ErrNotFound for an unknown
// challenge; a challenge with no entries yields an empty slice.
func RankEntries(db *sql.DB, challengeID string) ([]models.EntryStats, error) {
	// Existence check first so an unknown challenge isn't mistaken for an
	// empty one.
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM photo_challenge WHERE id = $1)
	`, challengeID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check challenge: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("challenge %q: %w", challengeID, ErrNotFound)
	}

	rows, err := db.Query(`
		SELECT e.id, e.challenge_id, e.user_id, e.title, e.caption, e.image_url, e.created_at,
		       COUNT(v.id) AS vote_count
		FROM challenge_entry e
		LEFT JOIN challenge_vote v ON v.entry_id = e.id
		WHERE e.challenge_id = $1
		GROUP BY e.id, e.challenge_id, e.user_id, e.title, e.caption, e.image_url, e.created_at
		ORDER BY vote_count DESC, e.created_at ASC, e.id ASC
	`, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer rows.Close()

	ranked := []models.EntryStats{}
	for rows.Next() {
		var es models.EntryStats
		if err := rows.Scan(
			&es.ID, &es.ChallengeID, &es.UserID, &es.Title, &es.Caption, &es.ImageURL, &es.CreatedAt,
			&es.VoteCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ranked entry: %w", err)
		}
		es.Rank = len(ranked) + 1
		ranked = append(ranked, es)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rankings: %w", err)
	}

	return ranked, nil
}
