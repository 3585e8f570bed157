package coordinator

import (
	"github.com/soyeahso/switchboard/internal/domain"
)

// ChunkMode selects how stream chunks are applied to StreamingContent.
type ChunkMode string

const (
	// ChunkCumulative means the engine supplies the full text so far;
	// each chunk replaces the stored snapshot.
	ChunkCumulative ChunkMode = "cumulative"

	// ChunkDelta means the engine supplies increments; chunks are
	// concatenated onto the stored snapshot.
	ChunkDelta ChunkMode = "delta"
)

// StateStore owns one SessionState per SessionKey, created lazily on first
// access. State lives until explicitly reset or cleared; idle state is
// meaningful and queryable.
//
// StateStore is not safe for concurrent use on its own — the Coordinator
// serializes all access under a single mutex.
type StateStore struct {
	mode   ChunkMode
	states map[domain.SessionKey]*domain.SessionState
}

// NewStateStore creates an empty store with the given chunk mode.
func NewStateStore(mode ChunkMode) *StateStore {
	if mode == "" {
		mode = ChunkCumulative
	}
	return &StateStore{
		mode:   mode,
		states: make(map[domain.SessionKey]*domain.SessionState),
	}
}

// get returns the backing record, creating an idle one if absent.
func (s *StateStore) get(key domain.SessionKey) *domain.SessionState {
	st, ok := s.states[key]
	if !ok {
		st = &domain.SessionState{}
		s.states[key] = st
	}
	return st
}

// Get returns a copy of the state for key, creating a fresh idle record if
// none exists. Callers never receive a shared mutable reference.
func (s *StateStore) Get(key domain.SessionKey) domain.SessionState {
	return *s.get(key)
}

// SetStreaming sets IsStreaming. Setting false also clears StreamingContent.
// IsSending is untouched.
func (s *StateStore) SetStreaming(key domain.SessionKey, on bool) domain.SessionState {
	st := s.get(key)
	st.IsStreaming = on
	if !on {
		st.StreamingContent = ""
	}
	return *st
}

// SetSending sets IsSending independently of the other fields.
func (s *StateStore) SetSending(key domain.SessionKey, on bool) domain.SessionState {
	st := s.get(key)
	st.IsSending = on
	return *st
}

// AppendStreamingContent records an output chunk: streaming turns on,
// sending turns off, and the content is replaced or concatenated depending
// on the store's chunk mode.
func (s *StateStore) AppendStreamingContent(key domain.SessionKey, text string) domain.SessionState {
	st := s.get(key)
	st.IsStreaming = true
	st.IsSending = false
	if s.mode == ChunkDelta {
		st.StreamingContent += text
	} else {
		st.StreamingContent = text
	}
	return *st
}

// SetError records a generation error and clears the in-flight flags.
func (s *StateStore) SetError(key domain.SessionKey, message string) domain.SessionState {
	st := s.get(key)
	st.Error = message
	st.IsStreaming = false
	st.IsSending = false
	st.StreamingContent = ""
	return *st
}

// ClearError drops a stored error without touching the in-flight flags.
func (s *StateStore) ClearError(key domain.SessionKey) domain.SessionState {
	st := s.get(key)
	st.Error = ""
	return *st
}

// Reset returns the key to the idle state as a single update.
func (s *StateStore) Reset(key domain.SessionKey) domain.SessionState {
	st := s.get(key)
	*st = domain.SessionState{}
	return *st
}

// ClearConversation drops all states for the conversation and returns the
// purged keys.
func (s *StateStore) ClearConversation(conversationID int64) []domain.SessionKey {
	var purged []domain.SessionKey
	for key := range s.states {
		if key.ConversationID == conversationID {
			purged = append(purged, key)
			delete(s.states, key)
		}
	}
	return purged
}

// StreamingCount returns how many sessions are currently streaming.
func (s *StateStore) StreamingCount() int {
	n := 0
	for _, st := range s.states {
		if st.IsStreaming {
			n++
		}
	}
	return n
}

// Len returns the number of tracked session records.
func (s *StateStore) Len() int {
	return len(s.states)
}
