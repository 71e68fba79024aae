// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package push

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/chasingcats/api/models"
)

// SaveSubscription registers (or re-registers) a browser push endpoint for a
// user. Upsert keyed by endpoint: re-registering an existing endpoint
// reassigns ownership and refreshes the encryption keys instead of creating a
// duplicate row. Returns a success signal rather than an error because
// registration failures are non-fatal to the caller's UI flow.
func SaveSubscription(db *sql.DB, userID string, req models.SaveSubscriptionRequest) bool {
	if userID == "" || req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		slog.Warn("rejecting incomplete push subscription",
			"user_id", userID, "has_endpoint", req.Endpoint != "")
		return false
	}

	_, err := db.Exec(`
		INSERT INTO push_subscription (endpoint, user_id, p256dh, auth, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (endpoint) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			p256dh = EXCLUDED.p256dh,
			auth = EXCLUDED.auth
	`, req.Endpoint, userID, req.Keys.P256dh, req.Keys.Auth, time.Now())

	if err != nil {
		slog.Error("failed to save push subscription", "error", err, "user_id", userID)
		return false
	}

	slog.Info("push subscription saved", "user_id", userID)
	return true
}

// RemoveSubscription deletes a subscription by endpoint. Idempotent: a
// missing endpoint is treated as success.
func RemoveSubscription(db *sql.DB, endpoint string) bool {
	if endpoint == "" {
		return false
	}

	_, err := db.Exec(`DELETE FROM push_subscription WHERE endpoint = $1`, endpoint)
	if err != nil {
		slog.Error("failed to remove push subscription", "error", err)
		return false
	}

	return true
}
