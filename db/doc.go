// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - photo_challenge: Contest metadata, date boundaries, lifecycle status
  - challenge_entry: One photo submission per user per challenge
  - challenge_vote: One vote per voter per entry
  - push_subscription: Browser push endpoints keyed by endpoint URL

# Relationships

	photo_challenge 1──* challenge_entry
	challenge_entry 1──* challenge_vote

All foreign keys use ON DELETE CASCADE, so deleting an entry removes its
votes and deleting a challenge removes its entries and their votes.
push_subscription stands alone; user_id references the external identity
provider, not a local table.

# Uniqueness

The invariants the engine relies on are enforced here, not just checked in
application code, because two concurrent requests race and only one may win:

  - photo_challenge.slug UNIQUE
  - challenge_entry (challenge_id, user_id) UNIQUE
  - challenge_vote (entry_id, voter_id) UNIQUE
  - push_subscription.endpoint PRIMARY KEY (upsert target)
*/
package db
