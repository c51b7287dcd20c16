package copilot

import "time"

// Session captures a transient anonymous conversation with the assistant.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// Snapshot is a session together with its transcript and typing state.
type Snapshot struct {
	Session  Session   `json:"session"`
	Messages []Message `json:"messages"`
	Typing   bool      `json:"typing"`
}
