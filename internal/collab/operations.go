package collab

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/glyphic/glyphic/backend-go/internal/document"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// DocumentState holds the authoritative font document for a room. Every
// accepted operation mutates it under the lock; clients reconcile their
// local copies from the broadcast stream.
type DocumentState struct {
	mu        sync.RWMutex
	doc       *document.FontDocument
	serverSeq int64
	opLog     []Operation
}

// NewDocumentState wraps an initial document.
func NewDocumentState(doc *document.FontDocument) *DocumentState {
	return &DocumentState{
		doc:   doc,
		opLog: make([]Operation, 0),
	}
}

// Document returns the current document. Callers must not mutate it.
func (ds *DocumentState) Document() *document.FontDocument {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.doc
}

// ServerSeq returns the sequence of the last accepted operation.
func (ds *DocumentState) ServerSeq() int64 {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.serverSeq
}

// ApplyOperation applies an operation and returns its server sequence.
// A rejected operation leaves the document untouched.
func (ds *DocumentState) ApplyOperation(op Operation) (int64, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if err := ds.applyOperationLocked(op); err != nil {
		return 0, err
	}

	ds.serverSeq++
	ds.opLog = append(ds.opLog, op)
	return ds.serverSeq, nil
}

func (ds *DocumentState) applyOperationLocked(op Operation) error {
	switch op.Type {
	case OpPointsMove:
		return ds.applyPointsMove(op)
	case OpPointsAdd:
		return ds.applyPointsAdd(op)
	case OpPointsRemove:
		return ds.applyPointsRemove(op)
	case OpContourClose, OpContourOpen:
		return ds.applyContourClosed(op)
	case OpGlyphAdvance:
		return ds.applyGlyphAdvance(op)
	case OpGlyphReplace:
		return ds.applyGlyphReplace(op)
	case OpFontRename:
		ds.doc.Font.FamilyName = op.FamilyName
		return nil
	default:
		return fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

// targetGlyph fetches the named glyph or fails; ops never create glyphs
// implicitly.
func (ds *DocumentState) targetGlyph(op Operation) (glyph.Snapshot, error) {
	snap, ok := ds.doc.Glyph(op.GlyphName)
	if !ok {
		return glyph.Snapshot{}, fmt.Errorf("glyph not found: %s", op.GlyphName)
	}
	return snap, nil
}

func (ds *DocumentState) applyPointsMove(op Operation) error {
	snap, err := ds.targetGlyph(op)
	if err != nil {
		return err
	}
	if op.Delta == nil {
		return fmt.Errorf("missing delta")
	}

	wanted := make(map[glyph.PointID]bool, len(op.PointIDs))
	for _, id := range op.PointIDs {
		wanted[glyph.PointID(id)] = true
	}

	// Validate every target before touching anything.
	found := 0
	for _, c := range snap.Contours {
		for _, p := range c.Points {
			if wanted[p.ID] {
				found++
			}
		}
	}
	if found != len(op.PointIDs) {
		return fmt.Errorf("move targets %d points, found %d", len(op.PointIDs), found)
	}

	for ci := range snap.Contours {
		pts := snap.Contours[ci].Points
		for pi := range pts {
			if wanted[pts[pi].ID] {
				pts[pi].X += op.Delta.DX
				pts[pi].Y += op.Delta.DY
			}
		}
	}

	ds.doc.PutGlyph(op.GlyphName, snap)
	return nil
}

func (ds *DocumentState) applyPointsAdd(op Operation) error {
	snap, err := ds.targetGlyph(op)
	if err != nil {
		return err
	}
	if len(op.Points) == 0 {
		return fmt.Errorf("no points to add")
	}

	for ci := range snap.Contours {
		c := &snap.Contours[ci]
		if c.ID != glyph.ContourID(op.ContourID) {
			continue
		}
		at := len(c.Points)
		if op.Index != nil {
			if *op.Index < 0 || *op.Index > len(c.Points) {
				return fmt.Errorf("insert index %d out of range", *op.Index)
			}
			at = *op.Index
		}
		c.Points = append(c.Points[:at], append(append([]glyph.PointSnapshot{}, op.Points...), c.Points[at:]...)...)
		ds.doc.PutGlyph(op.GlyphName, snap)
		return nil
	}
	return fmt.Errorf("contour not found: %s", op.ContourID)
}

func (ds *DocumentState) applyPointsRemove(op Operation) error {
	snap, err := ds.targetGlyph(op)
	if err != nil {
		return err
	}

	wanted := make(map[glyph.PointID]bool, len(op.PointIDs))
	for _, id := range op.PointIDs {
		wanted[glyph.PointID(id)] = true
	}

	kept := snap.Contours[:0]
	for _, c := range snap.Contours {
		if !c.IsComposite() {
			pts := c.Points[:0]
			for _, p := range c.Points {
				if !wanted[p.ID] {
					pts = append(pts, p)
				}
			}
			c.Points = pts
			// A contour that collapses below two points is dropped.
			if len(c.Points) < 2 {
				continue
			}
		}
		kept = append(kept, c)
	}
	snap.Contours = kept

	ds.doc.PutGlyph(op.GlyphName, snap)
	return nil
}

func (ds *DocumentState) applyContourClosed(op Operation) error {
	snap, err := ds.targetGlyph(op)
	if err != nil {
		return err
	}

	for ci := range snap.Contours {
		if snap.Contours[ci].ID == glyph.ContourID(op.ContourID) {
			snap.Contours[ci].Closed = op.Type == OpContourClose
			ds.doc.PutGlyph(op.GlyphName, snap)
			return nil
		}
	}
	return fmt.Errorf("contour not found: %s", op.ContourID)
}

func (ds *DocumentState) applyGlyphAdvance(op Operation) error {
	snap, err := ds.targetGlyph(op)
	if err != nil {
		return err
	}
	if op.XAdvance == nil || *op.XAdvance < 0 {
		return fmt.Errorf("invalid advance")
	}
	snap.XAdvance = *op.XAdvance
	ds.doc.PutGlyph(op.GlyphName, snap)
	return nil
}

func (ds *DocumentState) applyGlyphReplace(op Operation) error {
	var snap glyph.Snapshot
	if err := json.Unmarshal(op.Snapshot, &snap); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	if op.GlyphName == "" {
		return fmt.Errorf("missing glyph name")
	}
	ds.doc.PutGlyph(op.GlyphName, snap)
	return nil
}

// GetServerTimestamp returns the current server timestamp
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
