package models

import "time"

// Challenge status constants
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusVoting    = "voting"
	StatusCompleted = "completed"
)

// Entry field limits
const (
	MaxEntryTitleLen   = 100
	MaxEntryCaptionLen = 500
)

// Request types

type CreateChallengeRequest struct {
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"`
	Theme       string    `json:"theme"`
	Description string    `json:"description"`
	Rules       string    `json:"rules,omitempty"`
	BannerURL   string    `json:"banner_url,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	VotingEnd   time.Time `json:"voting_end"`
	Featured    bool      `json:"featured"`
}

// UpdateChallengeRequest carries an admin override. All fields are optional;
// setting Status pins the challenge until a date edit clears the override.
type UpdateChallengeRequest struct {
	Status    *string    `json:"status,omitempty"`
	Featured  *bool      `json:"featured,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	VotingEnd *time.Time `json:"voting_end,omitempty"`
}

type SubmitEntryRequest struct {
	Title    string `json:"title,omitempty"`
	Caption  string `json:"caption,omitempty"`
	ImageURL string `json:"image_url"`
}

type SaveSubscriptionRequest struct {
	Endpoint string           `json:"endpoint"`
	Keys     SubscriptionKeys `json:"keys"`
}

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

type RemoveSubscriptionRequest struct {
	Endpoint string `json:"endpoint"`
}

type SendPushRequest struct {
	UserID  string      `json:"user_id,omitempty"` // empty = broadcast
	Payload PushPayload `json:"payload"`
}

// Response types

type CreateChallengeResponse struct {
	Challenge Challenge `json:"challenge"`
}

type ListChallengesResponse struct {
	Challenges []ChallengeSummary `json:"challenges"`
}

type ChallengeDetailResponse struct {
	Challenge Challenge    `json:"challenge"`
	Entries   []EntryStats `json:"entries"`
}

type RankingsResponse struct {
	ChallengeID string       `json:"challenge_id"`
	Rankings    []EntryStats `json:"rankings"`
	Winners     []EntryStats `json:"winners,omitempty"` // top 3, completed challenges only
}

type SubmitEntryResponse struct {
	Entry Entry `json:"entry"`
}

type CastVoteResponse struct {
	Vote Vote `json:"vote"`
}

type SaveSubscriptionResponse struct {
	Success bool `json:"success"`
}

type SendPushResponse struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// Domain types

type Challenge struct {
	ID             string    `json:"id"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Theme          string    `json:"theme"`
	Description    string    `json:"description"`
	Rules          *string   `json:"rules,omitempty"`
	BannerURL      *string   `json:"banner_url,omitempty"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	VotingEnd      time.Time `json:"voting_end"`
	Status         string    `json:"status"`
	StatusOverride bool      `json:"status_override"`
	Featured       bool      `json:"featured"`
	CreatedAt      time.Time `json:"created_at"`
}

type ChallengeSummary struct {
	Challenge
	EntryCount int `json:"entry_count"`
}

type Entry struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challenge_id"`
	UserID      string    `json:"user_id"`
	Title       *string   `json:"title,omitempty"`
	Caption     *string   `json:"caption,omitempty"`
	ImageURL    string    `json:"image_url"`
	IPHash      *string   `json:"-"` // Never expose in JSON
	UserAgent   *string   `json:"-"` // Never expose in JSON
	CreatedAt   time.Time `json:"created_at"`
}

// EntryStats is an entry together with its vote count and, when ranked,
// its 1-indexed rank.
type EntryStats struct {
	Entry
	VoteCount int `json:"vote_count"`
	Rank      int `json:"rank,omitempty"`
}

type Vote struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	VoterID   string    `json:"voter_id"`
	CreatedAt time.Time `json:"created_at"`
}

type PushSubscription struct {
	Endpoint  string    `json:"endpoint"`
	UserID    string    `json:"user_id"`
	P256dh    string    `json:"-"` // Never expose in JSON
	Auth      string    `json:"-"` // Never expose in JSON
	CreatedAt time.Time `json:"created_at"`
}

// PushPayload is the notification body handed to the web push transport.
type PushPayload struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Icon  string         `json:"icon,omitempty"`
	Badge string         `json:"badge,omitempty"`
	Tag   string         `json:"tag,omitempty"`
	URL   string         `json:"url,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
