package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// roomPresence tracks the live editing state each connection in a room has
// announced: pointer position, selected point ids, and which glyph the peer
// has open. Entries are keyed by client id rather than user id so two tabs
// on the same account show up as two separate cursors.
type roomPresence struct {
	mu       sync.RWMutex
	byClient map[string]*PresencePayload
}

func newRoomPresence() *roomPresence {
	return &roomPresence{byClient: make(map[string]*PresencePayload)}
}

// Set records the latest state a client reported, replacing the previous
// entry for that client.
func (rp *roomPresence) Set(clientID string, p *PresencePayload) {
	rp.mu.Lock()
	rp.byClient[clientID] = p
	rp.mu.Unlock()
}

// Drop forgets a client, leaving other connections of the same user alone.
func (rp *roomPresence) Drop(clientID string) {
	rp.mu.Lock()
	delete(rp.byClient, clientID)
	rp.mu.Unlock()
}

// Snapshot copies the presence table for marshaling.
func (rp *roomPresence) Snapshot() map[string]*PresencePayload {
	rp.mu.RLock()
	defer rp.mu.RUnlock()

	out := make(map[string]*PresencePayload, len(rp.byClient))
	for clientID, p := range rp.byClient {
		out[clientID] = p
	}
	return out
}

// StateMessage builds the full presence table sent to a client on join so it
// can draw every peer cursor immediately. Returns nil when the room has no
// presence to report.
func (rp *roomPresence) StateMessage() *Message {
	snap := rp.Snapshot()
	if len(snap) == 0 {
		return nil
	}
	payload, err := json.Marshal(PresenceStatePayload{Presences: snap})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{Type: TypePresenceState, Payload: payload}
}
