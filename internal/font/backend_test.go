package font

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/glyphic/glyphic/backend-go/internal/document"
	"github.com/glyphic/glyphic/backend-go/internal/glyph"
)

func TestEmitGlyphStoresUnderName(t *testing.T) {
	backend := NewMemory(nil)

	g := glyph.New("A", 'A', 600)
	c := glyph.NewContour()
	c.AddPoint(0, 0, glyph.OnCurve, false)
	c.AddPoint(100, 0, glyph.OnCurve, false)
	g.AddContour(c)

	backend.EmitGlyph(g.Snapshot())

	got, ok := backend.Glyph("A")
	if !ok {
		t.Fatal("emitted glyph not stored")
	}
	if got.XAdvance != 600 || len(got.Contours) != 1 {
		t.Errorf("stored glyph = %+v", got)
	}
	if backend.Document().Font.UpdatedAt == "" {
		t.Error("emit did not touch the document timestamp")
	}
}

func TestEmitGlyphReplacesPriorSnapshot(t *testing.T) {
	backend := NewMemory(document.NewSampleDocument("font_x"))

	snap, _ := backend.Glyph("L")
	snap.XAdvance = 999
	backend.EmitGlyph(snap)

	got, _ := backend.Glyph("L")
	if got.XAdvance != 999 {
		t.Errorf("advance = %v after emit, want 999", got.XAdvance)
	}
	// Re-emitting an existing name must not duplicate the order entry.
	if diff := cmp.Diff([]string{"L", "o"}, backend.Document().Font.GlyphOrder); diff != "" {
		t.Errorf("glyph order mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.glyphic")

	src := NewMemory(document.NewSampleDocument("font_rt"))
	if err := src.SaveFont(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	dst := NewMemory(nil)
	if err := dst.LoadFont(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if diff := cmp.Diff(src.Document().Font, dst.Document().Font); diff != "" {
		t.Errorf("font metadata mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(src.Document().Glyphs, dst.Document().Glyphs); diff != "" {
		t.Errorf("glyphs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.glyphic")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	backend := NewMemory(document.NewSampleDocument("font_keep"))
	if err := backend.LoadFont(path); err == nil {
		t.Fatal("loading garbage succeeded")
	}
	// The prior document survives a failed load.
	if _, ok := backend.Glyph("L"); !ok {
		t.Error("failed load discarded the previous document")
	}
}

func TestLoadFontMissingFileFails(t *testing.T) {
	backend := NewMemory(nil)
	if err := backend.LoadFont(filepath.Join(t.TempDir(), "absent.glyphic")); err == nil {
		t.Fatal("loading a missing file succeeded")
	}
}
