// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package push

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/chasingcats/api/cliparse"
	"github.com/chasingcats/api/models"
)

// TransportFunc delivers an encrypted payload to one push endpoint. Matches
// webpush.SendNotification so tests can substitute a fake.
type TransportFunc func(message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error)

// Result summarizes one best-effort delivery pass.
type Result struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Sender performs fan-out delivery of notification payloads to registered
// subscriptions. Stateless between calls; no retry or backoff within a call -
// scheduling repeated sends is the caller's concern.
type Sender struct {
	db        *sql.DB
	cfg       cliparse.Config
	transport TransportFunc
}

func NewSender(db *sql.DB, cfg cliparse.Config) *Sender {
	return &Sender{db: db, cfg: cfg, transport: webpush.SendNotification}
}

// SendToUser delivers payload to every subscription owned by userID.
func (s *Sender) SendToUser(userID string, payload models.PushPayload) (Result, error) {
	return s.send(`
		SELECT endpoint, user_id, p256dh, auth
		FROM push_subscription
		WHERE user_id = $1
	`, []any{userID}, payload)
}

// SendToAll broadcasts payload to every subscription in the store.
func (s *Sender) SendToAll(payload models.PushPayload) (Result, error) {
	return s.send(`
		SELECT endpoint, user_id, p256dh, auth
		FROM push_subscription
	`, nil, payload)
}

// deliveryState classifies one delivery attempt.
type deliveryState int

const (
	delivered deliveryState = iota
	failedTransient
	failedGone // endpoint permanently invalid, prune it
)

type deliveryResult struct {
	endpoint string
	state    deliveryState
}

func (s *Sender) send(query string, args []any, payload models.PushPayload) (Result, error) {
	// Missing credentials is a valid degraded configuration: warn and
	// report zero sent instead of erroring, so an inline caller's request
	// never fails because push happens to be unconfigured.
	if !s.cfg.PushConfigured() {
		slog.Warn("push not configured, skipping delivery (set VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY)")
		return Result{}, nil
	}

	subs, err := s.loadSubscriptions(query, args)
	if err != nil {
		return Result{}, err
	}
	if len(subs) == 0 {
		return Result{}, nil
	}

	message, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode push payload: %w", err)
	}

	// Independent dispatch: one goroutine per subscription, results
	// collected over a channel and reduced afterwards. A slow or failing
	// endpoint never blocks or aborts the others.
	results := make(chan deliveryResult, len(subs))
	var wg sync.WaitGroup

	for _, sub := range subs {
		wg.Add(1)
		go func(sub models.PushSubscription) {
			defer wg.Done()
			results <- deliveryResult{
				endpoint: sub.Endpoint,
				state:    s.deliver(message, sub),
			}
		}(sub)
	}

	wg.Wait()
	close(results)

	var res Result
	var gone []string
	for r := range results {
		switch r.state {
		case delivered:
			res.Sent++
		case failedTransient:
			res.Failed++
		case failedGone:
			res.Failed++
			gone = append(gone, r.endpoint)
		}
	}

	// Self-healing registry: endpoints the transport reported as gone are
	// pruned so the next pass doesn't retry them.
	for _, endpoint := range gone {
		if !RemoveSubscription(s.db, endpoint) {
			slog.Warn("failed to prune dead push subscription")
		}
	}

	slog.Info("push delivery pass complete",
		"sent", res.Sent, "failed", res.Failed, "pruned", len(gone))

	return res, nil
}

// deliver attempts delivery to a single subscription and classifies the
// outcome. 404/410 means the endpoint no longer exists (permanent); any other
// transport error is transient and the subscription is retained.
func (s *Sender) deliver(message []byte, sub models.PushSubscription) deliveryState {
	resp, err := s.transport(message, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.cfg.VAPIDSubscriber,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             60 * 60 * 24,
	})

	if err != nil {
		slog.Warn("push delivery failed", "error", err)
		return failedTransient
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		slog.Info("push endpoint gone, will prune", "status", resp.StatusCode)
		return failedGone
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return delivered
	default:
		slog.Warn("push delivery rejected", "status", resp.StatusCode)
		return failedTransient
	}
}

func (s *Sender) loadSubscriptions(query string, args []any) ([]models.PushSubscription, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query push subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []models.PushSubscription
	for rows.Next() {
		var sub models.PushSubscription
		if err := rows.Scan(&sub.Endpoint, &sub.UserID, &sub.P256dh, &sub.Auth); err != nil {
			return nil, fmt.Errorf("failed to scan push subscription: %w", err)
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}
