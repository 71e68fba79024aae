// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chasingcats/api/auth"
	"github.com/chasingcats/api/models"
	"github.com/chasingcats/api/push"
)

func TestSubscribe(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	handler := NewPushHandler(db, cfg, push.NewSender(db, cfg))

	validReq := models.SaveSubscriptionRequest{
		Endpoint: "https://push.example.com/send/abc",
		Keys:     models.SubscriptionKeys{P256dh: "pkey", Auth: "asecret"},
	}

	tests := []struct {
		name           string
		userID         string
		requestBody    interface{}
		expectedStatus int
		wantSuccess    bool
	}{
		{"valid subscription", "user-1", validReq, http.StatusOK, true},
		{"anonymous request", "", validReq, http.StatusUnauthorized, false},
		{
			name:   "incomplete subscription",
			userID: "user-1",
			requestBody: models.SaveSubscriptionRequest{
				Endpoint: "https://push.example.com/send/no-keys",
			},
			expectedStatus: http.StatusOK,
			wantSuccess:    false,
		},
		{"invalid JSON", "user-1", "invalid json", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			var err error

			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("Failed to marshal request body: %v", err)
				}
			}

			req := httptest.NewRequest("POST", "/push/subscriptions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.userID != "" {
				req.Header.Set("X-User-ID", tt.userID)
			}
			w := httptest.NewRecorder()

			handler.Subscribe(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var resp models.SaveSubscriptionResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp.Success != tt.wantSuccess {
					t.Errorf("Expected success %v, got %v", tt.wantSuccess, resp.Success)
				}
			}
		})
	}

	// Registered subscription landed in the database
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM push_subscription WHERE user_id = 'user-1'`).Scan(&count); err != nil {
		t.Fatalf("Failed to count subscriptions: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 subscription, got %d", count)
	}
}

func TestUnsubscribe(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	handler := NewPushHandler(db, cfg, push.NewSender(db, cfg))

	_, err := db.Exec(`
		INSERT INTO push_subscription (endpoint, user_id, p256dh, auth, created_at)
		VALUES ('https://push.example.com/send/bye', 'user-1', 'k', 'a', NOW())
	`)
	if err != nil {
		t.Fatalf("Failed to insert subscription: %v", err)
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid unsubscribe",
			requestBody:    models.RemoveSubscriptionRequest{Endpoint: "https://push.example.com/send/bye"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown endpoint is idempotent",
			requestBody:    models.RemoveSubscriptionRequest{Endpoint: "https://push.example.com/send/never-seen"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing endpoint",
			requestBody:    models.RemoveSubscriptionRequest{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("DELETE", "/push/subscriptions", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Unsubscribe(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM push_subscription`).Scan(&count); err != nil {
		t.Fatalf("Failed to count subscriptions: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 subscriptions after unsubscribe, got %d", count)
	}
}

func TestSendPush(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	// Push deliberately unconfigured: the handler must still answer with
	// zero counts, never an error.
	cfg := getTestConfig()
	handler := NewPushHandler(db, cfg, push.NewSender(db, cfg))
	adminKey := auth.GenerateAdminKey(cfg.AdminKeySalt)

	tests := []struct {
		name           string
		adminKey       string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "broadcast with degraded config",
			adminKey:       adminKey,
			requestBody:    models.SendPushRequest{Payload: models.PushPayload{Title: "New challenge!"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "targeted with degraded config",
			adminKey:       adminKey,
			requestBody:    models.SendPushRequest{UserID: "user-1", Payload: models.PushPayload{Title: "You won"}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing payload title",
			adminKey:       adminKey,
			requestBody:    models.SendPushRequest{Payload: models.PushPayload{Body: "no title"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing admin key",
			adminKey:       "",
			requestBody:    models.SendPushRequest{Payload: models.PushPayload{Title: "hi"}},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid JSON",
			adminKey:       adminKey,
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			var err error

			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatalf("Failed to marshal request body: %v", err)
				}
			}

			req := httptest.NewRequest("POST", "/push/send", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.adminKey != "" {
				req.Header.Set("X-Admin-Key", tt.adminKey)
			}
			w := httptest.NewRecorder()

			handler.Send(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var resp models.SendPushResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if resp.Sent != 0 || resp.Failed != 0 {
					t.Errorf("Expected zero counts with unconfigured push, got %+v", resp)
				}
			}
		})
	}
}

func TestVAPIDPublicKey(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	cfg.VAPIDPublicKey = "the-public-key"
	handler := NewPushHandler(db, cfg, push.NewSender(db, cfg))

	req := httptest.NewRequest("GET", "/push/vapid-public-key", nil)
	w := httptest.NewRecorder()

	handler.VAPIDPublicKey(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["public_key"] != "the-public-key" {
		t.Errorf("Expected public key echo, got %q", resp["public_key"])
	}
}
