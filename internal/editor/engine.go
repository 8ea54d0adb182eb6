package editor

import (
	"sync"

	"github.com/glyphic/glyphic/backend-go/internal/event"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// maxHistory caps the undo stack.
const maxHistory = 128

// Sink receives each committed snapshot for downstream consumption, e.g.
// persistence or collaboration broadcast.
type Sink interface {
	EmitGlyph(glyph.Snapshot)
}

// Operation is a commit closure: it issues one or more mutations against the
// session and returns a plain acknowledgement or a typed result. If it
// returns an error, none of its mutations survive.
type Operation func(*Session) (Result, error)

// ChangePayload travels on the bus after every committed command. Downstream
// recomputation is scoped to the affected identities, not the whole glyph.
type ChangePayload struct {
	Glyph    glyph.Snapshot    `json:"glyph"`
	Points   []glyph.PointID   `json:"pointIds,omitempty"`
	Contours []glyph.ContourID `json:"contourIds,omitempty"`
}

// Engine mediates tool-issued operations into atomic mutations of the
// model. Exactly one commit is in flight at a time; the mutex serializes
// callers so atomicity holds even when the mutation backend lives on
// another goroutine.
type Engine struct {
	mu      sync.Mutex
	session *Session
	bus     *event.Bus
	sink    Sink

	undo []*Session
	redo []*Session
}

// NewEngine creates an engine publishing to the given bus.
func NewEngine(bus *event.Bus) *Engine {
	return &Engine{bus: bus}
}

// SetSink attaches a snapshot consumer. Pass nil to detach.
func (e *Engine) SetSink(s Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sink = s
}

// OpenGlyph starts a fresh editing session for the glyph. Selection and
// hover state from any previous session are discarded.
func (e *Engine) OpenGlyph(g *glyph.Glyph) glyph.Snapshot {
	e.mu.Lock()
	e.session = NewSession(g)
	e.undo = nil
	e.redo = nil
	snap := e.session.Snapshot()
	e.mu.Unlock()

	e.emit(event.GlyphChanged, ChangePayload{Glyph: snap})
	return snap
}

// CloseGlyph ends the current session, if any.
func (e *Engine) CloseGlyph() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.session = nil
	e.undo = nil
	e.redo = nil
}

// Snapshot returns the current glyph snapshot.
func (e *Engine) Snapshot() (glyph.Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return glyph.Snapshot{}, false
	}
	return e.session.Snapshot(), true
}

// EditContext exposes the selection, hover, and session state edit rules and
// tools read from.
type EditContext struct {
	SessionID string
	Glyph     glyph.Snapshot
	Selection []glyph.PointID
	Hover     glyph.PointID
}

// EditContext returns the current edit context.
func (e *Engine) EditContext() (EditContext, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return EditContext{}, false
	}
	hover, _ := e.session.Hover()
	return EditContext{
		SessionID: e.session.ID(),
		Glyph:     e.session.Snapshot(),
		Selection: e.session.Selection(),
		Hover:     hover,
	}, true
}

// Commit executes the operation atomically. On success the session holds
// the mutated glyph, a new snapshot replaces the previous one downstream,
// and exactly one change event is published carrying every affected
// identity. On failure the previous state is retained unchanged and the
// result carries the error; no partial mutation is ever observable.
func (e *Engine) Commit(op Operation) Result {
	e.mu.Lock()

	if e.session == nil {
		e.mu.Unlock()
		return Result{Success: false, Error: ErrNoSession.Error()}
	}

	before := e.session.clone()
	res, err := op(e.session)
	if err != nil {
		e.session.restore(before)
		e.mu.Unlock()
		return Result{Success: false, Error: err.Error()}
	}
	res.Success = true

	e.undo = append(e.undo, before)
	if len(e.undo) > maxHistory {
		e.undo = e.undo[1:]
	}
	e.redo = nil

	snap := e.session.Snapshot()
	sink := e.sink
	e.mu.Unlock()

	// Publish outside the lock; handlers run synchronously and may query
	// the engine.
	if sink != nil {
		sink.EmitGlyph(snap)
	}
	name := res.Event
	if name == "" {
		name = event.GlyphChanged
	}
	e.emit(name, ChangePayload{
		Glyph:    snap,
		Points:   res.AffectedPoints,
		Contours: res.AffectedContours,
	})
	return res
}

// CanUndo reports whether an undo step exists.
func (e *Engine) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undo) > 0
}

// CanRedo reports whether a redo step exists.
func (e *Engine) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.redo) > 0
}

// Undo restores the state before the most recent commit.
func (e *Engine) Undo() Result {
	e.mu.Lock()
	if e.session == nil || len(e.undo) == 0 {
		e.mu.Unlock()
		return Result{Success: false, Error: "nothing to undo"}
	}
	e.redo = append(e.redo, e.session.clone())
	prev := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.session.restore(prev)
	return e.finishHistoryStep()
}

// Redo reapplies the most recently undone commit.
func (e *Engine) Redo() Result {
	e.mu.Lock()
	if e.session == nil || len(e.redo) == 0 {
		e.mu.Unlock()
		return Result{Success: false, Error: "nothing to redo"}
	}
	e.undo = append(e.undo, e.session.clone())
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.session.restore(next)
	return e.finishHistoryStep()
}

// finishHistoryStep publishes after an undo/redo. Called with e.mu held;
// releases it.
func (e *Engine) finishHistoryStep() Result {
	snap := e.session.Snapshot()
	sink := e.sink
	e.mu.Unlock()

	if sink != nil {
		sink.EmitGlyph(snap)
	}
	e.emit(event.GlyphChanged, ChangePayload{Glyph: snap})
	return Result{Success: true}
}

// --- Session UI state (not commits; no model mutation) ---

// SetSelection replaces the session selection.
func (e *Engine) SetSelection(ids []glyph.PointID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.session.SetSelection(ids)
	}
}

// SetHover records the hovered point.
func (e *Engine) SetHover(id glyph.PointID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.session.SetHover(id)
	}
}

func (e *Engine) emit(name string, payload ChangePayload) {
	if e.bus != nil {
		e.bus.Publish(name, payload)
	}
}
