package editor

import "github.com/glyphic/glyphic/backend-go/internal/glyph"

// Delta is one coordinate displacement in font units.
type Delta struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// Neg returns the opposite displacement.
func (d Delta) Neg() Delta { return Delta{-d.DX, -d.DY} }

// AppliedEdit records what one edit rule did: the point it targeted, every
// coordinate delta it applied (including cascaded ones), and every point
// moved as a side effect of the rule.
type AppliedEdit struct {
	Target      glyph.PointID   `json:"target"`
	Deltas      []Delta         `json:"deltas"`
	SideEffects []glyph.PointID `json:"sideEffects,omitempty"`
}

// Affected returns the target plus all side-effect points, deduplicated.
func (a AppliedEdit) Affected() []glyph.PointID {
	out := make([]glyph.PointID, 0, 1+len(a.SideEffects))
	out = append(out, a.Target)
	for _, id := range a.SideEffects {
		if id != a.Target {
			out = append(out, id)
		}
	}
	return out
}

// Result is the structured outcome of one committed command.
type Result struct {
	Success          bool              `json:"success"`
	AffectedPoints   []glyph.PointID   `json:"affectedPointIds,omitempty"`
	AffectedContours []glyph.ContourID `json:"affectedContourIds,omitempty"`
	Error            string            `json:"error,omitempty"`

	// Event names the bus event the engine publishes on success:
	// points:added, points:moved, or points:removed. Empty means a
	// plain acknowledgement with a generic glyph:changed notification.
	Event string `json:"-"`
}

// Ack is a plain success acknowledgement with no affected identities.
func Ack() Result {
	return Result{Success: true}
}

// Changed builds a success result carrying affected point identities.
func Changed(event string, points ...glyph.PointID) Result {
	return Result{Success: true, Event: event, AffectedPoints: dedupe(points)}
}

func dedupe(ids []glyph.PointID) []glyph.PointID {
	seen := make(map[glyph.PointID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
