package chat

import "time"

// Event names on the wire. These mirror the browser client exactly.
const (
	EventSession     = "session"
	EventChatHistory = "chat history"
	EventChatMessage = "chat message"
	EventError       = "error"
)

// Rejection codes sent back to the offending connection only. Invalid
// inbound messages are rejected loudly, never silently dropped.
const (
	RejectInvalidPayload   = "invalid_payload"
	RejectNotAuthenticated = "not_authenticated"
	RejectPseudoMismatch   = "pseudo_mismatch"
	RejectUnknownUser      = "unknown_user"
	RejectInactiveAccount  = "account_not_active"
	RejectEmptyMessage     = "empty_message"
)

type inboundEvent struct {
	Event   string `json:"event"`
	Pseudo  string `json:"pseudo"`
	Message string `json:"message"`
}

type sessionEvent struct {
	Event  string `json:"event"`
	Pseudo string `json:"pseudo"`
}

type historyEntry struct {
	Pseudo    string    `json:"pseudo"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type historyEvent struct {
	Event    string         `json:"event"`
	Messages []historyEntry `json:"messages"`
}

type messageEvent struct {
	Event     string    `json:"event"`
	Pseudo    string    `json:"pseudo"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorEvent struct {
	Event string `json:"event"`
	Error string `json:"error"`
}
