package store

import (
	"context"
	"time"
)

// Font is a stored font project row.
type Font struct {
	ID         string
	OwnerID    string
	FamilyName string
	StyleName  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateFontParams carries the fields for a new font project.
type CreateFontParams struct {
	ID         string
	OwnerID    string
	FamilyName string
	StyleName  string
}

func (s *Store) CreateFont(ctx context.Context, p CreateFontParams) (Font, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO fonts (id, owner_id, family_name, style_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, owner_id, family_name, style_name, created_at, updated_at`,
		p.ID, p.OwnerID, p.FamilyName, p.StyleName)

	var f Font
	err := row.Scan(&f.ID, &f.OwnerID, &f.FamilyName, &f.StyleName, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (s *Store) GetFont(ctx context.Context, id string) (Font, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, owner_id, family_name, style_name, created_at, updated_at
		FROM fonts WHERE id = $1`, id)

	var f Font
	err := row.Scan(&f.ID, &f.OwnerID, &f.FamilyName, &f.StyleName, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func (s *Store) ListFontsByOwner(ctx context.Context, ownerID string) ([]Font, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, owner_id, family_name, style_name, created_at, updated_at
		FROM fonts WHERE owner_id = $1
		ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fonts []Font
	for rows.Next() {
		var f Font
		if err := rows.Scan(&f.ID, &f.OwnerID, &f.FamilyName, &f.StyleName, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		fonts = append(fonts, f)
	}
	return fonts, rows.Err()
}

func (s *Store) TouchFont(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `UPDATE fonts SET updated_at = now() WHERE id = $1`, id)
	return err
}

func (s *Store) DeleteFont(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM fonts WHERE id = $1`, id)
	return err
}

// Snapshot is an append-only stored document revision.
type Snapshot struct {
	ID        string
	FontID    string
	Document  []byte
	CreatedAt time.Time
}

func (s *Store) CreateSnapshot(ctx context.Context, id, fontID string, document []byte) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO font_snapshots (id, font_id, document)
		VALUES ($1, $2, $3)
		RETURNING id, font_id, document, created_at`,
		id, fontID, document)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.FontID, &snap.Document, &snap.CreatedAt)
	return snap, err
}

func (s *Store) GetLatestSnapshot(ctx context.Context, fontID string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, font_id, document, created_at
		FROM font_snapshots
		WHERE font_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, fontID)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.FontID, &snap.Document, &snap.CreatedAt)
	return snap, err
}

// Upload is a stored font file upload row.
type Upload struct {
	ID        string
	FontID    string
	OwnerID   string
	Filename  string
	MimeType  string
	SizeBytes int64
	CreatedAt time.Time
}

// CreateUploadParams carries the fields for a new upload record.
type CreateUploadParams struct {
	ID        string
	FontID    string
	OwnerID   string
	Filename  string
	MimeType  string
	SizeBytes int64
}

func (s *Store) CreateUpload(ctx context.Context, p CreateUploadParams) (Upload, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO uploads (id, font_id, owner_id, filename, mime_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, font_id, owner_id, filename, mime_type, size_bytes, created_at`,
		p.ID, p.FontID, p.OwnerID, p.Filename, p.MimeType, p.SizeBytes)

	var u Upload
	err := row.Scan(&u.ID, &u.FontID, &u.OwnerID, &u.Filename, &u.MimeType, &u.SizeBytes, &u.CreatedAt)
	return u, err
}

func (s *Store) GetUpload(ctx context.Context, id string) (Upload, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, font_id, owner_id, filename, mime_type, size_bytes, created_at
		FROM uploads WHERE id = $1`, id)

	var u Upload
	err := row.Scan(&u.ID, &u.FontID, &u.OwnerID, &u.Filename, &u.MimeType, &u.SizeBytes, &u.CreatedAt)
	return u, err
}
