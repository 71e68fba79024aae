// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/chasingcats/api/models"
	"github.com/chasingcats/api/testutil"
)

// TestConcurrentEntrySubmissions verifies that simultaneous submissions from
// different users all land without corruption or duplicates
func TestConcurrentEntrySubmissions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	entryHandler := NewEntryHandler(db, cfg)

	challengeID, slug := testutil.CreateTestChallenge(t, db, "active")

	numUsers := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numUsers; i++ {
		wg.Add(1)
		go func(userIdx int) {
			defer wg.Done()

			entryReq := models.SubmitEntryRequest{
				Title:    fmt.Sprintf("Entry %d", userIdx),
				ImageURL: fmt.Sprintf("https://cdn.example.com/photos/%d.jpg", userIdx),
			}
			body, _ := json.Marshal(entryReq)
			req := httptest.NewRequest("POST", "/challenges/"+slug+"/entries", bytes.NewReader(body))
			req.SetPathValue("slug", slug)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-ID", fmt.Sprintf("concurrent-user-%d", userIdx))
			w := httptest.NewRecorder()

			entryHandler.Submit(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numUsers {
		t.Errorf("Expected %d successful submissions, got %d", numUsers, successCount.Load())
	}

	var entryCount int
	err := db.QueryRow("SELECT COUNT(*) FROM challenge_entry WHERE challenge_id = $1", challengeID).Scan(&entryCount)
	if err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}
	if entryCount != numUsers {
		t.Errorf("Expected %d entries in database, got %d", numUsers, entryCount)
	}

	// No user ended up with two entries
	var uniqueUsers int
	err = db.QueryRow("SELECT COUNT(DISTINCT user_id) FROM challenge_entry WHERE challenge_id = $1", challengeID).Scan(&uniqueUsers)
	if err != nil {
		t.Fatalf("Failed to count unique users: %v", err)
	}
	if uniqueUsers != numUsers {
		t.Errorf("Expected %d unique users, got %d (possible duplicates)", numUsers, uniqueUsers)
	}
}

// TestConcurrentDuplicateEntries verifies that when one user races multiple
// submissions to the same challenge, exactly one wins
func TestConcurrentDuplicateEntries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	entryHandler := NewEntryHandler(db, cfg)

	challengeID, slug := testutil.CreateTestChallenge(t, db, "active")

	numAttempts := 10
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func(attempt int) {
			defer wg.Done()

			entryReq := models.SubmitEntryRequest{
				ImageURL: fmt.Sprintf("https://cdn.example.com/photos/attempt-%d.jpg", attempt),
			}
			body, _ := json.Marshal(entryReq)
			req := httptest.NewRequest("POST", "/challenges/"+slug+"/entries", bytes.NewReader(body))
			req.SetPathValue("slug", slug)
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-User-ID", "racing-user")
			w := httptest.NewRecorder()

			entryHandler.Submit(w, req)

			switch w.Code {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful submission, got %d", successCount.Load())
	}
	if int(conflictCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}

	var entryCount int
	err := db.QueryRow("SELECT COUNT(*) FROM challenge_entry WHERE challenge_id = $1 AND user_id = 'racing-user'", challengeID).Scan(&entryCount)
	if err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}
	if entryCount != 1 {
		t.Errorf("Expected 1 entry row, got %d", entryCount)
	}
}

// TestConcurrentVotes verifies that many voters hitting one entry at the same
// time are all recorded
func TestConcurrentVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	votingHandler := NewVotingHandler(db, cfg)

	challengeID, _ := testutil.CreateTestChallenge(t, db, "voting")
	entryID := testutil.AddTestEntry(t, db, challengeID, "entry-owner", time.Now().Add(-time.Hour))

	numVoters := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			req := httptest.NewRequest("POST", "/entries/"+entryID+"/votes", nil)
			req.SetPathValue("id", entryID)
			req.Header.Set("X-User-ID", fmt.Sprintf("concurrent-voter-%d", voterIdx))
			w := httptest.NewRecorder()

			votingHandler.CastVote(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	var voteCount int
	err := db.QueryRow("SELECT COUNT(*) FROM challenge_vote WHERE entry_id = $1", entryID).Scan(&voteCount)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if voteCount != numVoters {
		t.Errorf("Expected %d votes in database, got %d", numVoters, voteCount)
	}
}

// TestConcurrentReconciliation verifies that parallel listing requests racing
// to reconcile a stale status never corrupt it or error
func TestConcurrentReconciliation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	challengeHandler := NewChallengeHandler(db, cfg)

	// Stored upcoming, dates say voting
	challengeID, _ := testutil.CreateTestChallenge(t, db, "voting")
	_, err := db.Exec(`UPDATE photo_challenge SET status = 'upcoming' WHERE id = $1`, challengeID)
	if err != nil {
		t.Fatalf("Failed to make challenge stale: %v", err)
	}

	numRequests := 10
	var okCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := httptest.NewRequest("GET", "/challenges", nil)
			w := httptest.NewRecorder()

			challengeHandler.List(w, req)

			if w.Code == http.StatusOK {
				okCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(okCount.Load()) != numRequests {
		t.Errorf("Expected %d OK responses, got %d", numRequests, okCount.Load())
	}

	var status string
	if err := db.QueryRow(`SELECT status FROM photo_challenge WHERE id = $1`, challengeID).Scan(&status); err != nil {
		t.Fatalf("Failed to query challenge: %v", err)
	}
	if status != models.StatusVoting {
		t.Errorf("Expected status voting after racing reconciles, got %s", status)
	}
}
