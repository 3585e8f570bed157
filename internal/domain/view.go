package domain

// ViewState records which session a display surface is currently showing.
type ViewState struct {
	ViewID string     `json:"viewId"`
	Key    SessionKey `json:"key"`
}

// Bound reports whether the view is currently bound to a session.
// An empty SessionID means unbound; ConversationID 0 alone does not,
// since conversation 0 is a legitimate conversation.
func (v ViewState) Bound() bool {
	return v.Key.SessionID != ""
}

// Notification is delivered to bus subscribers after every state mutation.
// ViewIDs is resolved at publish time, never at subscription time.
type Notification struct {
	Key     SessionKey   `json:"key"`
	State   SessionState `json:"state"`
	ViewIDs []string     `json:"viewIds"`
}
