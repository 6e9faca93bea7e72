package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserLoggedIn    EventType = "user_logged_in"
	EventUserLoggedOut   EventType = "user_logged_out"
	EventTokensSwept     EventType = "tokens_swept"
	EventFileFavorited   EventType = "file_favorited"
	EventFileUnfavorited EventType = "file_unfavorited"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionPayload accompanies login/logout events.
type SessionPayload struct {
	UserAgent string    `json:"user_agent,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// SweepPayload accompanies tokens_swept events.
type SweepPayload struct {
	Removed int64 `json:"removed"`
}

// FavoritePayload accompanies favorite/unfavorite events.
type FavoritePayload struct {
	FileID int64 `json:"file_id"`
}
