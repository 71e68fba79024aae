// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Chasing Cats API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ChallengeHandler: Challenge lifecycle (create, list, detail, admin override, rankings)
  - EntryHandler: Entry submission and admin deletion
  - VotingHandler: Vote casting
  - PushHandler: Push subscription registry and delivery

Handlers are created via constructor functions that accept *sql.DB and Config:

	challengeHandler := handlers.NewChallengeHandler(db, cfg)

PushHandler additionally takes a *push.Sender so tests can inject a fake
transport.

# Challenge Lifecycle

Challenges progress through four states driven by their dates:

	upcoming → active → voting → completed

	POST  /challenges        → Create (admin)
	GET   /challenges        → List (reconciles statuses first)
	GET   /challenges/{slug} → Get (entries with vote counts, ?order=rank)
	PATCH /challenges/{id}   → Update (admin status/featured override, date edits)

Admin operations require the X-Admin-Key header. Participant operations
require X-User-ID, which the external session provider sets.

# Entries and Voting

	POST   /challenges/{slug}/entries → Submit (active phase only)
	DELETE /entries/{id}              → Delete (admin, votes cascade)
	POST   /entries/{id}/votes        → CastVote (voting phase only, no self-votes)

# Error Mapping

Engine errors translate to distinct statuses so clients can tell the cases
apart: validation 400, not found 404, forbidden 403, conflict 409 (already
entered / already voted), invalid state 422 (phase not open).

# Push

	POST   /push/subscriptions    → Subscribe (upsert by endpoint)
	DELETE /push/subscriptions    → Unsubscribe (idempotent)
	POST   /push/send             → Send (admin; targeted or broadcast)
	GET    /push/vapid-public-key → VAPIDPublicKey

Send always responds with {sent, failed} counts; per-endpoint delivery
failures never fail the request.
*/
package handlers
