// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateChallengeRequest: title, slug, theme, description, dates, featured
  - UpdateChallengeRequest: optional status/featured override and date edits
  - SubmitEntryRequest: title, caption, image_url
  - SaveSubscriptionRequest: endpoint, keys{p256dh, auth}
  - RemoveSubscriptionRequest: endpoint
  - SendPushRequest: optional user_id plus payload

# Response Types

Types for JSON responses:

  - CreateChallengeResponse: challenge
  - ListChallengesResponse: challenges with entry counts
  - ChallengeDetailResponse: challenge plus entries with vote counts
  - RankingsResponse: ranked entries, winners for completed challenges
  - SubmitEntryResponse: entry
  - CastVoteResponse: vote
  - SaveSubscriptionResponse: success
  - SendPushResponse: sent, failed
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Challenge: contest metadata, date boundaries, lifecycle status
  - Entry: one photo submission per user per challenge
  - EntryStats: entry with vote count and rank
  - Vote: one vote per voter per entry
  - PushSubscription: browser push endpoint with encryption keys
  - PushPayload: notification content for the push transport

# Constants

Challenge status values:

	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusVoting    = "voting"
	StatusCompleted = "completed"

Entry field limits:

	MaxEntryTitleLen   = 100
	MaxEntryCaptionLen = 500
*/
package models
