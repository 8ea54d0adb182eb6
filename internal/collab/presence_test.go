package collab

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPresenceKeyedByClient(t *testing.T) {
	rp := newRoomPresence()

	// Two connections from the same account stay distinct.
	rp.Set("client-a", &PresencePayload{UserID: "user_1", ActiveGlyph: "A"})
	rp.Set("client-b", &PresencePayload{UserID: "user_1", ActiveGlyph: "B"})

	snap := rp.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("got %d entries, want 2", len(snap))
	}
	if snap["client-a"].ActiveGlyph != "A" || snap["client-b"].ActiveGlyph != "B" {
		t.Errorf("entries = %+v", snap)
	}

	rp.Drop("client-a")
	snap = rp.Snapshot()
	if _, ok := snap["client-a"]; ok {
		t.Error("dropped client still present")
	}
	if _, ok := snap["client-b"]; !ok {
		t.Error("other connection of the same user was dropped too")
	}
}

func TestPresenceSetReplacesPriorState(t *testing.T) {
	rp := newRoomPresence()
	rp.Set("client-a", &PresencePayload{ActiveGlyph: "A", Selection: []string{"pt_1"}})
	rp.Set("client-a", &PresencePayload{ActiveGlyph: "g"})

	snap := rp.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("got %d entries, want 1", len(snap))
	}
	if got := snap["client-a"]; got.ActiveGlyph != "g" || got.Selection != nil {
		t.Errorf("entry = %+v, want only the latest report", got)
	}
}

func TestPresenceStateMessage(t *testing.T) {
	rp := newRoomPresence()
	if msg := rp.StateMessage(); msg != nil {
		t.Fatalf("state message for empty room = %+v, want nil", msg)
	}

	rp.Set("client-a", &PresencePayload{
		UserID:      "user_1",
		DisplayName: "Ada",
		Cursor:      &CursorPos{X: 3, Y: 4},
	})
	msg := rp.StateMessage()
	if msg == nil {
		t.Fatal("no state message")
	}
	if msg.Type != TypePresenceState {
		t.Errorf("type = %q, want %q", msg.Type, TypePresenceState)
	}

	var state PresenceStatePayload
	if err := json.Unmarshal(msg.Payload, &state); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	want := map[string]*PresencePayload{
		"client-a": {UserID: "user_1", DisplayName: "Ada", Cursor: &CursorPos{X: 3, Y: 4}},
	}
	if diff := cmp.Diff(want, state.Presences); diff != "" {
		t.Errorf("presence state mismatch (-want +got):\n%s", diff)
	}
}
