// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Photo challenges
CREATE TABLE IF NOT EXISTS photo_challenge (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    theme TEXT NOT NULL,
    description TEXT,
    rules TEXT,
    banner_url TEXT,
    start_date TIMESTAMP NOT NULL,
    end_date TIMESTAMP NOT NULL,
    voting_end TIMESTAMP NOT NULL,
    status TEXT NOT NULL DEFAULT 'upcoming' CHECK (status IN ('upcoming', 'active', 'voting', 'completed')),
    status_override BOOLEAN NOT NULL DEFAULT FALSE,
    featured BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_photo_challenge_slug ON photo_challenge(slug);
CREATE INDEX IF NOT EXISTS idx_photo_challenge_status ON photo_challenge(status);

-- Entries: one per user per challenge
CREATE TABLE IF NOT EXISTS challenge_entry (
    id TEXT PRIMARY KEY,
    challenge_id TEXT NOT NULL REFERENCES photo_challenge(id) ON DELETE CASCADE,
    user_id TEXT NOT NULL,
    title TEXT,
    caption TEXT,
    image_url TEXT NOT NULL,
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (challenge_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_challenge_entry_challenge_id ON challenge_entry(challenge_id);

-- Votes: one per voter per entry
CREATE TABLE IF NOT EXISTS challenge_vote (
    id TEXT PRIMARY KEY,
    entry_id TEXT NOT NULL REFERENCES challenge_entry(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (entry_id, voter_id)
);

CREATE INDEX IF NOT EXISTS idx_challenge_vote_entry_id ON challenge_vote(entry_id);

-- Push subscriptions: one row per browser push endpoint
CREATE TABLE IF NOT EXISTS push_subscription (
    endpoint TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    p256dh TEXT NOT NULL,
    auth TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_push_subscription_user_id ON push_subscription(user_id);
`
