// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared helpers for the test suite: a fresh
// database per test, fixture builders for challenges, entries, votes, and
// push subscriptions, and small HTTP assertion helpers.
//
// Tests expect a local Postgres reachable at TestDBURL. SetupTestDB drops
// and recreates every table, so each test starts from an empty database.
package testutil
