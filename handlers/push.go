// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/chasingcats/api/auth"
	"github.com/chasingcats/api/cliparse"
	"github.com/chasingcats/api/middleware"
	"github.com/chasingcats/api/models"
	"github.com/chasingcats/api/push"
)

type PushHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	sender *push.Sender
}

func NewPushHandler(db *sql.DB, cfg cliparse.Config, sender *push.Sender) *PushHandler {
	return &PushHandler{db: db, cfg: cfg, sender: sender}
}

// Subscribe handles POST /push/subscriptions
// Upsert keyed by endpoint; re-registering reassigns ownership.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-User-ID header required")
		return
	}

	var req models.SaveSubscriptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ok := push.SaveSubscription(h.db, userID, req)

	middleware.JSONResponse(w, http.StatusOK, models.SaveSubscriptionResponse{
		Success: ok,
	})
}

// Unsubscribe handles DELETE /push/subscriptions
// Idempotent: removing an unknown endpoint still reports success.
func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.RemoveSubscriptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Endpoint == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "endpoint is required")
		return
	}

	ok := push.RemoveSubscription(h.db, req.Endpoint)

	middleware.JSONResponse(w, http.StatusOK, models.SaveSubscriptionResponse{
		Success: ok,
	})
}

// Send handles POST /push/send
// Admin-triggered delivery: targeted at one user when user_id is present,
// otherwise a broadcast to every subscription. Always answers with counts -
// delivery failures are folded in, never surfaced as request errors.
func (h *PushHandler) Send(w http.ResponseWriter, r *http.Request) {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.SendPushRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Payload.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "payload.title is required")
		return
	}

	var res push.Result
	var err error
	if req.UserID != "" {
		res, err = h.sender.SendToUser(req.UserID, req.Payload)
	} else {
		res, err = h.sender.SendToAll(req.Payload)
	}

	if err != nil {
		slog.Error("push send failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send notifications")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SendPushResponse{
		Sent:   res.Sent,
		Failed: res.Failed,
	})
}

// VAPIDPublicKey handles GET /push/vapid-public-key
// Clients need the public key to create a browser subscription. Empty when
// push is unconfigured; the frontend treats that as "push unavailable".
func (h *PushHandler) VAPIDPublicKey(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"public_key": h.cfg.VAPIDPublicKey,
	})
}
