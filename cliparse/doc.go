// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string (required)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - SlugSalt: Secret for derived challenge slugs (required)
  - VAPIDPublicKey / VAPIDPrivateKey / VAPIDSubscriber: web push transport
    credentials (optional)

# CLI Flags

	-p                Server port
	-d                Database URL
	--admin-salt      Admin key salt
	--slug-salt       Challenge slug salt
	--vapid-public    VAPID public key
	--vapid-private   VAPID private key
	--vapid-subscriber VAPID subscriber contact

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	ADMIN_KEY_SALT    → --admin-salt
	SLUG_SALT         → --slug-salt
	VAPID_PUBLIC_KEY  → --vapid-public
	VAPID_PRIVATE_KEY → --vapid-private
	VAPID_SUBSCRIBER  → --vapid-subscriber

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_KEY_SALT must be provided
  - SLUG_SALT must be provided

The VAPID settings are deliberately NOT required. Push is an optional feature:
a missing keypair is a valid degraded configuration, surfaced as a warning at
send time rather than a startup failure. Config.PushConfigured reports whether
the keypair is present.
*/
package cliparse
