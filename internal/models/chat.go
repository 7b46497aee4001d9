package models

// Message roles. The relay only acts on the latest user entry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation. Timestamp is
// the client-side epoch milliseconds; the server never stores it.
type ChatMessage struct {
	Role      string `json:"role"` // "user" or "assistant"
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// ChatRequest is the payload sent to the relay endpoint. The message order
// is the chronological conversation order.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// ChatResponse is the normalized reply from the model provider. Text may be
// empty; that is a valid reply, not an error.
type ChatResponse struct {
	Text string `json:"text"`
}
