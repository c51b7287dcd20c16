package copilot

import "time"

// Role identifies who authored a transcript turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one immutable turn of a Copilot conversation.
type Message struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	Role        Role      `json:"role"`
	Content     string    `json:"content"`
	Suggestions []string  `json:"suggestions,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
