package websocket

// ─── Events (Server → Client) ───────────────────────────────────────

// StatePayload notifies a connected client of a session lifecycle change:
// runs starting/finishing/failing and quiz state transitions. The stream is
// advisory; the client re-fetches the session view for the full state.
type StatePayload struct {
	Event     string `json:"event"`
	Algorithm string `json:"algorithm,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Timestamp string `json:"timestamp"`
}
