package document

import "github.com/glyphic/glyphic/backend-go/internal/glyph"

// FontDocument is the serializable state of one font project: metrics plus
// the outline snapshot of every glyph, keyed by glyph name. This is what
// round-trips through storage and collaboration snapshots.
type FontDocument struct {
	Font   Font                      `json:"font"`
	Glyphs map[string]glyph.Snapshot `json:"glyphs"`
}

// Font carries the family metadata and vertical metrics, in font units.
type Font struct {
	ID         string  `json:"id"`
	FamilyName string  `json:"familyName"`
	StyleName  string  `json:"styleName"`
	Version    int     `json:"version"`
	UnitsPerEm int     `json:"unitsPerEm"`
	Ascender   float64 `json:"ascender"`
	Descender  float64 `json:"descender"`
	CapHeight  float64 `json:"capHeight"`
	XHeight    float64 `json:"xHeight"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`

	// GlyphOrder is the display order; every entry keys into Glyphs.
	GlyphOrder []string `json:"glyphOrder"`
}

// NewEmptyDocument creates a document with standard metrics and no glyphs.
func NewEmptyDocument(fontID, familyName string) *FontDocument {
	return &FontDocument{
		Font: Font{
			ID:         fontID,
			FamilyName: familyName,
			StyleName:  "Regular",
			Version:    1,
			UnitsPerEm: 1000,
			Ascender:   800,
			Descender:  -200,
			CapHeight:  700,
			XHeight:    500,
			GlyphOrder: []string{},
		},
		Glyphs: map[string]glyph.Snapshot{},
	}
}

// Glyph returns the named glyph's snapshot.
func (d *FontDocument) Glyph(name string) (glyph.Snapshot, bool) {
	snap, ok := d.Glyphs[name]
	return snap, ok
}

// PutGlyph stores a snapshot, appending to the glyph order on first write.
func (d *FontDocument) PutGlyph(name string, snap glyph.Snapshot) {
	if _, exists := d.Glyphs[name]; !exists {
		d.Font.GlyphOrder = append(d.Font.GlyphOrder, name)
	}
	d.Glyphs[name] = snap
}

// RemoveGlyph drops a glyph and its order entry.
func (d *FontDocument) RemoveGlyph(name string) {
	if _, exists := d.Glyphs[name]; !exists {
		return
	}
	delete(d.Glyphs, name)
	for i, n := range d.Font.GlyphOrder {
		if n == name {
			d.Font.GlyphOrder = append(d.Font.GlyphOrder[:i], d.Font.GlyphOrder[i+1:]...)
			break
		}
	}
}
