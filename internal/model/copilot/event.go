package copilot

// EventType names a transcript change pushed to subscribers.
type EventType string

const (
	EventMessage EventType = "message"
	EventTyping  EventType = "typing"
)

// Event is delivered to live subscribers of a session.
type Event struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"sessionId"`
	Message   *Message  `json:"message,omitempty"`
	Typing    bool      `json:"typing"`
}
