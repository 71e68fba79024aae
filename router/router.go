// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/chasingcats/api/cliparse"
	"github.com/chasingcats/api/handlers"
	"github.com/chasingcats/api/middleware"
	"github.com/chasingcats/api/push"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	challengeHandler := handlers.NewChallengeHandler(db, cfg)
	entryHandler := handlers.NewEntryHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	pushHandler := handlers.NewPushHandler(db, cfg, push.NewSender(db, cfg))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Challenge management
	mux.HandleFunc("POST /challenges", middleware.WithLogging(challengeHandler.Create))
	mux.HandleFunc("GET /challenges", middleware.WithLogging(challengeHandler.List))
	mux.HandleFunc("GET /challenges/{slug}", middleware.WithLogging(challengeHandler.Get))
	mux.HandleFunc("PATCH /challenges/{id}", middleware.WithLogging(challengeHandler.Update))
	mux.HandleFunc("GET /challenges/{slug}/rankings", middleware.WithLogging(challengeHandler.Rankings))

	// Entries and voting
	mux.HandleFunc("POST /challenges/{slug}/entries", middleware.WithLogging(entryHandler.Submit))
	mux.HandleFunc("DELETE /entries/{id}", middleware.WithLogging(entryHandler.Delete))
	mux.HandleFunc("POST /entries/{id}/votes", middleware.WithLogging(votingHandler.CastVote))

	// Push notifications
	mux.HandleFunc("POST /push/subscriptions", middleware.WithLogging(pushHandler.Subscribe))
	mux.HandleFunc("DELETE /push/subscriptions", middleware.WithLogging(pushHandler.Unsubscribe))
	mux.HandleFunc("POST /push/send", middleware.WithLogging(pushHandler.Send))
	mux.HandleFunc("GET /push/vapid-public-key", middleware.WithLogging(pushHandler.VAPIDPublicKey))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chasing-cats API v1"))
	})

	return mux
}
