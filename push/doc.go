// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package push manages web push subscriptions and best-effort notification
delivery.

# Subscription Registry

One row per browser push endpoint, keyed by the endpoint URL:

	ok := push.SaveSubscription(db, userID, req)   // upsert
	ok = push.RemoveSubscription(db, endpoint)     // idempotent delete

Re-registering an endpoint reassigns its owner and refreshes the p256dh/auth
keypair. Both functions report success as a bool - registration is best
effort and must never fail a caller's request.

# Delivery

Sender fans a payload out to subscriptions, one goroutine per endpoint, with
isolated per-item failure handling:

	sender := push.NewSender(db, cfg)
	res, err := sender.SendToUser(userID, payload)
	res, err = sender.SendToAll(payload)

The returned Result carries sent/failed counts. Failure classification:

  - HTTP 404/410 - endpoint permanently gone; counted as failed AND the
    subscription is deleted (self-healing registry)
  - any other transport error or non-2xx - counted as failed, subscription
    retained for the next pass

There is no retry or backoff inside a single call; each call is one pass over
current subscriptions.

# Degraded configuration

Delivery requires a VAPID keypair (VAPID_PUBLIC_KEY / VAPID_PRIVATE_KEY).
When absent the Sender logs a warning and reports zero sent instead of
erroring - push is an optional feature and must not destabilize callers that
invoke it inline with a user-facing request.

# Transport

The transport defaults to webpush.SendNotification from
github.com/SherClockHolmes/webpush-go; tests swap in a fake TransportFunc to
script success / 410 / 500 responses.
*/
package push
