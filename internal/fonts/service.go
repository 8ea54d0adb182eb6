package fonts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/glyphic/glyphic/backend-go/internal/document"
	"github.com/glyphic/glyphic/backend-go/internal/store"
	"github.com/glyphic/glyphic/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("font not found")
	ErrForbidden = errors.New("forbidden")
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

type Font struct {
	ID         string `json:"id"`
	FamilyName string `json:"familyName"`
	StyleName  string `json:"styleName"`
	OwnerID    string `json:"ownerId"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func (s *Service) Create(ctx context.Context, familyName, ownerID string) (*Font, error) {
	fontID := typeid.NewFontID()

	dbFont, err := s.store.CreateFont(ctx, store.CreateFontParams{
		ID:         fontID,
		OwnerID:    ownerID,
		FamilyName: familyName,
		StyleName:  "Regular",
	})
	if err != nil {
		return nil, fmt.Errorf("create font: %w", err)
	}

	// Seed the first snapshot with starter glyphs so the editor opens onto
	// something.
	doc := document.NewSampleDocument(fontID)
	doc.Font.FamilyName = familyName
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal sample document: %w", err)
	}
	if _, err := s.store.CreateSnapshot(ctx, typeid.NewSnapshotID(), fontID, docJSON); err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return dbFontToFont(dbFont), nil
}

func (s *Service) Get(ctx context.Context, fontID, userID string) (*Font, error) {
	dbFont, err := s.ownedFont(ctx, fontID, userID)
	if err != nil {
		return nil, err
	}
	return dbFontToFont(dbFont), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Font, error) {
	dbFonts, err := s.store.ListFontsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list fonts: %w", err)
	}

	fonts := make([]Font, len(dbFonts))
	for i, f := range dbFonts {
		fonts[i] = *dbFontToFont(f)
	}
	return fonts, nil
}

func (s *Service) Delete(ctx context.Context, fontID, userID string) error {
	if _, err := s.ownedFont(ctx, fontID, userID); err != nil {
		return err
	}
	return s.store.DeleteFont(ctx, fontID)
}

// GetLatestSnapshot returns the most recent stored document as raw JSON.
func (s *Service) GetLatestSnapshot(ctx context.Context, fontID, userID string) (json.RawMessage, error) {
	if _, err := s.ownedFont(ctx, fontID, userID); err != nil {
		return nil, err
	}

	snap, err := s.store.GetLatestSnapshot(ctx, fontID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return snap.Document, nil
}

// SaveSnapshot appends a document revision. The document must at least
// parse as a font document; garbage never reaches storage.
func (s *Service) SaveSnapshot(ctx context.Context, fontID, userID string, doc json.RawMessage) error {
	if _, err := s.ownedFont(ctx, fontID, userID); err != nil {
		return err
	}

	var parsed document.FontDocument
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	if _, err := s.store.CreateSnapshot(ctx, typeid.NewSnapshotID(), fontID, doc); err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	return s.store.TouchFont(ctx, fontID)
}

// ownedFont loads the font and enforces ownership.
func (s *Service) ownedFont(ctx context.Context, fontID, userID string) (store.Font, error) {
	dbFont, err := s.store.GetFont(ctx, fontID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return store.Font{}, ErrNotFound
		}
		return store.Font{}, fmt.Errorf("get font: %w", err)
	}
	if dbFont.OwnerID != userID {
		return store.Font{}, ErrForbidden
	}
	return dbFont, nil
}

func dbFontToFont(f store.Font) *Font {
	return &Font{
		ID:         f.ID,
		FamilyName: f.FamilyName,
		StyleName:  f.StyleName,
		OwnerID:    f.OwnerID,
		CreatedAt:  f.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:  f.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
