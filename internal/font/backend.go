// Package font owns the document a glyph editing session writes back into.
// The edit engine stays font-format agnostic; a Backend receives every
// committed snapshot and decides how it persists.
package font

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/glyphic/glyphic/backend-go/internal/document"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

// Backend is the persistence boundary behind an editing session. EmitGlyph
// satisfies the engine's sink; the rest serves glyph lookup and font IO.
type Backend interface {
	Document() *document.FontDocument
	Glyph(name string) (glyph.Snapshot, bool)
	EmitGlyph(snap glyph.Snapshot)
	LoadFont(path string) error
	SaveFont(path string) error
}

// Memory is an in-memory backend over a font document. Safe for concurrent
// use; committed snapshots land under the glyph's name.
type Memory struct {
	mu  sync.RWMutex
	doc *document.FontDocument
}

// NewMemory wraps an existing document. A nil document starts empty.
func NewMemory(doc *document.FontDocument) *Memory {
	if doc == nil {
		doc = document.NewEmptyDocument("", "Untitled")
	}
	return &Memory{doc: doc}
}

// Document returns the backing document. Callers treat it as read-only
// while an engine is attached.
func (m *Memory) Document() *document.FontDocument {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc
}

// Glyph returns the named glyph's latest snapshot.
func (m *Memory) Glyph(name string) (glyph.Snapshot, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.Glyph(name)
}

// EmitGlyph stores a committed snapshot back into the document.
func (m *Memory) EmitGlyph(snap glyph.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.PutGlyph(snap.Name, snap)
	m.doc.Font.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// LoadFont replaces the document with one read from disk.
func (m *Memory) LoadFont(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font: %w", err)
	}
	var doc document.FontDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	if doc.Glyphs == nil {
		doc.Glyphs = map[string]glyph.Snapshot{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = &doc
	return nil
}

// SaveFont writes the document to disk.
func (m *Memory) SaveFont(path string) error {
	m.mu.RLock()
	data, err := json.MarshalIndent(m.doc, "", "  ")
	m.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode font: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write font: %w", err)
	}
	return nil
}
