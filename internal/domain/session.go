// Package domain holds the shared value types for session and view tracking.
package domain

import "strconv"

// SessionKey uniquely identifies a conversation session.
// ConversationID 0 is the global/unscoped conversation — a first-class
// value, not a sentinel.
type SessionKey struct {
	ConversationID int64  `json:"conversationId"`
	SessionID      string `json:"sessionId"`
}

// String returns a canonical string form of the session key.
func (k SessionKey) String() string {
	return strconv.FormatInt(k.ConversationID, 10) + ":" + k.SessionID
}

// SessionState tracks the generation status of one session. The zero value
// is the idle state.
type SessionState struct {
	// IsStreaming is true while generation output is actively arriving.
	IsStreaming bool `json:"isStreaming"`

	// IsSending is true from request dispatch until the first output chunk
	// arrives or an error occurs.
	IsSending bool `json:"isSending"`

	// StreamingContent is the accumulated partial output for the in-flight
	// turn. Cleared whenever streaming transitions to false.
	StreamingContent string `json:"streamingContent"`

	// Error is the last generation error, empty if none. Cleared by the
	// next send, completion, or reset.
	Error string `json:"error,omitempty"`
}

// Idle reports whether the state carries no in-flight or error condition.
func (s SessionState) Idle() bool {
	return !s.IsStreaming && !s.IsSending && s.StreamingContent == "" && s.Error == ""
}
