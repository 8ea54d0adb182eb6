package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixUser     = "user"
	PrefixFont     = "font"
	PrefixSnapshot = "snap"
	PrefixSession  = "sess"
	PrefixOp       = "op"
	PrefixGlyph    = "glyph"
	PrefixContour  = "ct"
	PrefixPoint    = "pt"
	PrefixUpload   = "upl"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewUserID() string     { return New(PrefixUser) }
func NewFontID() string     { return New(PrefixFont) }
func NewSnapshotID() string { return New(PrefixSnapshot) }
func NewSessionID() string  { return New(PrefixSession) }
func NewOpID() string       { return New(PrefixOp) }
func NewGlyphID() string    { return New(PrefixGlyph) }
func NewContourID() string  { return New(PrefixContour) }
func NewPointID() string    { return New(PrefixPoint) }
func NewUploadID() string   { return New(PrefixUpload) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
