package editor

import (
	"fmt"

	"github.com/glyphic/glyphic/backend-go/internal/glyph"
	"github.com/glyphic/glyphic/backend-go/internal/typeid"
)

// Session is one glyph's editing state. It owns the mutable glyph for the
// session's lifetime and is the only path to mutation; tools and render
// contributors see snapshots. Selection and hover are session-scoped and die
// with it when the active glyph changes.
type Session struct {
	id            string
	glyph         *glyph.Glyph
	activeContour glyph.ContourID
	selection     map[glyph.PointID]struct{}
	hover         glyph.PointID
}

// NewSession opens an editing session that takes ownership of the glyph.
func NewSession(g *glyph.Glyph) *Session {
	return &Session{
		id:        typeid.NewSessionID(),
		glyph:     g,
		selection: make(map[glyph.PointID]struct{}),
	}
}

func (s *Session) ID() string          { return s.id }
func (s *Session) Glyph() *glyph.Glyph { return s.glyph }

// Snapshot produces the immutable view of the session's glyph, including
// the pen tool's active contour.
func (s *Session) Snapshot() glyph.Snapshot {
	snap := s.glyph.Snapshot()
	snap.ActiveContourID = s.activeContour
	return snap
}

// --- Active contour (pen tool state) ---

// ActiveContour returns the contour currently receiving pen points.
func (s *Session) ActiveContour() (glyph.ContourID, bool) {
	return s.activeContour, s.activeContour != ""
}

// SetActiveContour marks a contour as the pen target.
func (s *Session) SetActiveContour(id glyph.ContourID) { s.activeContour = id }

// ClearActiveContour detaches the pen from its contour.
func (s *Session) ClearActiveContour() { s.activeContour = "" }

// AddEmptyContour appends a fresh open contour and makes it active.
func (s *Session) AddEmptyContour() glyph.ContourID {
	c := glyph.NewContour()
	s.glyph.AddContour(c)
	s.activeContour = c.ID()
	return c.ID()
}

// --- Selection and hover ---

// Selection returns a copy of the selected point identities.
func (s *Session) Selection() []glyph.PointID {
	out := make([]glyph.PointID, 0, len(s.selection))
	for id := range s.selection {
		out = append(out, id)
	}
	return out
}

// IsSelected reports whether the point is in the selection.
func (s *Session) IsSelected(id glyph.PointID) bool {
	_, ok := s.selection[id]
	return ok
}

// SetSelection replaces the selection. Identities that no longer exist in
// the glyph are silently dropped rather than failing; transient UI state may
// briefly lag the authoritative model.
func (s *Session) SetSelection(ids []glyph.PointID) {
	s.selection = make(map[glyph.PointID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.glyph.FindPointContour(id); ok {
			s.selection[id] = struct{}{}
		}
	}
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.selection = make(map[glyph.PointID]struct{})
}

// Hover returns the hovered point, if it still exists.
func (s *Session) Hover() (glyph.PointID, bool) {
	if s.hover == "" {
		return "", false
	}
	if _, ok := s.glyph.FindPointContour(s.hover); !ok {
		return "", false
	}
	return s.hover, true
}

// SetHover records the hovered point identity.
func (s *Session) SetHover(id glyph.PointID) { s.hover = id }

// --- Mutations (engine-only surface) ---

// AddPoint appends a point to the active contour.
func (s *Session) AddPoint(x, y float64, typ glyph.PointType, smooth bool) (glyph.PointID, error) {
	if s.activeContour == "" {
		return "", fmt.Errorf("%w: no active contour", ErrInvalidOperation)
	}
	return s.AddPointTo(s.activeContour, x, y, typ, smooth)
}

// AddPointTo appends a point to the named contour.
func (s *Session) AddPointTo(cid glyph.ContourID, x, y float64, typ glyph.PointType, smooth bool) (glyph.PointID, error) {
	c, err := s.glyph.Contour(cid)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}
	return c.AddPoint(x, y, typ, smooth), nil
}

// MovePoints translates each existing point by (dx, dy) and returns the
// identities actually moved. Unknown identities are skipped.
func (s *Session) MovePoints(ids []glyph.PointID, dx, dy float64) []glyph.PointID {
	moved := make([]glyph.PointID, 0, len(ids))
	for _, id := range ids {
		c, ok := s.glyph.FindPointContour(id)
		if !ok {
			continue
		}
		if p := c.PointAt(id); p != nil {
			p.Translate(dx, dy)
			moved = append(moved, id)
		}
	}
	return moved
}

// RemovePoints removes each existing point, prunes contours that collapse
// below two points, and returns the removed point identities plus the ids
// of any pruned contours.
func (s *Session) RemovePoints(ids []glyph.PointID) ([]glyph.PointID, []glyph.ContourID) {
	removed := make([]glyph.PointID, 0, len(ids))
	for _, id := range ids {
		c, ok := s.glyph.FindPointContour(id)
		if !ok {
			continue
		}
		if _, err := c.RemovePoint(id); err == nil {
			removed = append(removed, id)
			delete(s.selection, id)
			if s.hover == id {
				s.hover = ""
			}
		}
	}
	pruned := s.glyph.PruneDegenerate()
	for _, cid := range pruned {
		if s.activeContour == cid {
			s.activeContour = ""
		}
	}
	return removed, pruned
}

// CloseContour flips the contour's open flag to closed.
func (s *Session) CloseContour(cid glyph.ContourID) error {
	c, err := s.glyph.Contour(cid)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOperation, err)
	}
	c.Close()
	return nil
}

// clone deep-copies the whole session state for commit rollback.
func (s *Session) clone() *Session {
	out := &Session{
		id:            s.id,
		glyph:         s.glyph.Clone(),
		activeContour: s.activeContour,
		hover:         s.hover,
		selection:     make(map[glyph.PointID]struct{}, len(s.selection)),
	}
	for id := range s.selection {
		out.selection[id] = struct{}{}
	}
	return out
}

// restore copies another session's state back into s.
func (s *Session) restore(from *Session) {
	s.glyph = from.glyph
	s.activeContour = from.activeContour
	s.hover = from.hover
	s.selection = from.selection
}
