// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Chasing Cats API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Challenge management (admin writes require X-Admin-Key):

	POST  /challenges                 - Create challenge
	GET   /challenges                 - List with entry counts (reconciles first)
	GET   /challenges/{slug}          - Detail with entries (?order=rank|recent)
	PATCH /challenges/{id}            - Status/featured override, date edits
	GET   /challenges/{slug}/rankings - Ranked entries, winners when completed

Participation (requires X-User-ID from the session provider):

	POST   /challenges/{slug}/entries - Submit entry (active phase)
	POST   /entries/{id}/votes        - Cast vote (voting phase)

	DELETE /entries/{id}              - Delete entry (admin)

Push notifications:

	POST   /push/subscriptions    - Register browser subscription
	DELETE /push/subscriptions    - Unregister by endpoint
	POST   /push/send             - Deliver to one user or broadcast (admin)
	GET    /push/vapid-public-key - Public key for client subscription

# Handler Initialization

The router creates handler instances with dependency injection:

	challengeHandler := handlers.NewChallengeHandler(db, cfg)
	entryHandler := handlers.NewEntryHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	pushHandler := handlers.NewPushHandler(db, cfg, push.NewSender(db, cfg))

All handlers receive the database connection and configuration; the push
handler also gets the delivery sender.
*/
package router
