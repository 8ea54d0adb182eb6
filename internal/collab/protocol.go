package collab

import (
	"encoding/json"

	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

type Message struct {
	Type     string          `json:"type"`
	FontID   string          `json:"fontId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	UserID   string          `json:"userId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

// PresencePayload is a client's announced editing state. UserID and
// DisplayName are filled in server-side from the sender's session.
type PresencePayload struct {
	Cursor      *CursorPos `json:"cursor,omitempty"`
	Selection   []string   `json:"selection,omitempty"`
	ActiveGlyph string     `json:"activeGlyph,omitempty"`
	UserID      string     `json:"userId,omitempty"`
	DisplayName string     `json:"displayName,omitempty"`
}

type CursorPos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PresenceStatePayload maps client id to that connection's presence.
type PresenceStatePayload struct {
	Presences map[string]*PresencePayload `json:"presences"`
}

type PresenceJoinPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type PresenceLeavePayload struct {
	UserID string `json:"userId"`
}

const (
	TypePresenceUpdate = "presence.update"
	TypePresenceState  = "presence.state"
	TypePresenceJoin   = "presence.join"
	TypePresenceLeave  = "presence.leave"
	TypeError          = "error"

	// Connection
	TypeWelcome = "welcome"

	// Document sync
	TypeDocSync = "doc.sync"

	// Operation message types
	TypeOpSubmit    = "op.submit"
	TypeOpAck       = "op.ack"
	TypeOpNack      = "op.nack"
	TypeOpBroadcast = "op.broadcast"
)

// --- Operation Types ---

// Operation is one document mutation, scoped to a glyph unless it targets
// font metadata.
type Operation struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	ClientSeq int64  `json:"clientSeq"`
	GlyphName string `json:"glyphName,omitempty"`

	// For points.move
	PointIDs []string `json:"pointIds,omitempty"`
	Delta    *Delta   `json:"delta,omitempty"`

	// For points.add
	ContourID string                `json:"contourId,omitempty"`
	Index     *int                  `json:"index,omitempty"`
	Points    []glyph.PointSnapshot `json:"points,omitempty"`

	// For contour.close / contour.open
	Closed *bool `json:"closed,omitempty"`

	// For glyph.advance
	XAdvance *float64 `json:"xAdvance,omitempty"`

	// For glyph.replace: the full new outline (undo, paste, load)
	Snapshot json.RawMessage `json:"snapshot,omitempty"`

	// For font.rename
	FamilyName string `json:"familyName,omitempty"`
}

// Delta is a shared displacement in font units.
type Delta struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

const (
	OpPointsMove   = "points.move"
	OpPointsAdd    = "points.add"
	OpPointsRemove = "points.remove"
	OpContourClose = "contour.close"
	OpContourOpen  = "contour.open"
	OpGlyphAdvance = "glyph.advance"
	OpGlyphReplace = "glyph.replace"
	OpFontRename   = "font.rename"
)

// OperationSubmitPayload is the payload for op.submit messages
type OperationSubmitPayload struct {
	Operation Operation `json:"operation"`
}

// OperationAckPayload is the payload for op.ack messages
type OperationAckPayload struct {
	OperationID     string `json:"operationId"`
	ServerSeq       int64  `json:"serverSeq"`
	ServerTimestamp int64  `json:"serverTimestamp"`
}

// OperationNackPayload is the payload for op.nack messages
type OperationNackPayload struct {
	OperationID string `json:"operationId"`
	Reason      string `json:"reason"`
}

// OperationBroadcastPayload is the payload for op.broadcast messages
type OperationBroadcastPayload struct {
	Operation Operation `json:"operation"`
	UserID    string    `json:"userId"`
	ServerSeq int64     `json:"serverSeq"`
}

// DocSyncPayload carries the full authoritative document.
type DocSyncPayload struct {
	Document  json.RawMessage `json:"document"`
	ServerSeq int64           `json:"serverSeq"`
}
