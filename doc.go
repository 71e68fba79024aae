// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Chasing Cats API server.

Chasing Cats is a membership photo-challenge platform: timed photo contests
with community voting, winner rankings, and web push notifications.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3318 -d "postgres://..."

A .env file in the working directory is loaded automatically when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - SLUG_SALT (--slug-salt): Secret for derived challenge slugs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - VAPID_PUBLIC_KEY / VAPID_PRIVATE_KEY / VAPID_SUBSCRIBER: web push
    credentials; without them push delivery degrades to a logged no-op

# Architecture

The server uses a handler-based architecture with dependency injection:

  - challenge: Challenge lifecycle, entry, voting, and ranking engine
  - push: Subscription registry and fan-out notification delivery
  - handlers: HTTP request handlers (challenges, entries, voting, push)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Admin key and slug generation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
