// Package fontfile handles uploaded font source files: validation, disk
// storage, and loading them back into editable documents.
package fontfile

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/glyphic/glyphic/backend-go/internal/auth"
	"github.com/glyphic/glyphic/backend-go/internal/document"
	"github.com/glyphic/glyphic/backend-go/internal/font"
	"github.com/glyphic/glyphic/backend-go/internal/store"
	"github.com/glyphic/glyphic/backend-go/internal/typeid"
)

const maxUploadSize = 16 << 20 // 16MB

// UploadResponse is returned from the upload endpoint.
type UploadResponse struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	FamilyName string `json:"familyName"`
	GlyphCount int    `json:"glyphCount"`
	Name       string `json:"name"`
}

// Handler serves font file upload and retrieval endpoints.
type Handler struct {
	dir   string
	store *store.Store
}

// NewHandler creates a handler that stores files in dir and records
// uploads in the store.
func NewHandler(dir string, st *store.Store) *Handler {
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Error("create font dir", "error", err, "dir", dir)
	}
	return &Handler{dir: dir, store: st}
}

// Upload handles POST /api/fonts/{fontId}/files (multipart form with a
// "file" field holding a font document JSON).
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	fontID := mux.Vars(r)["fontId"]

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "file too large (max 16MB)", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if !strings.HasSuffix(header.Filename, ".json") && !strings.HasSuffix(header.Filename, ".glyphic") {
		http.Error(w, "only .json and .glyphic font documents are supported", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read file: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Parse before anything touches disk so broken files never land.
	var doc document.FontDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		http.Error(w, "invalid font document: "+err.Error(), http.StatusBadRequest)
		return
	}

	uploadID := typeid.NewUploadID()
	path := filepath.Join(h.dir, uploadID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		slog.Error("write font file", "error", err)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}

	if _, err := h.store.CreateUpload(r.Context(), store.CreateUploadParams{
		ID:        uploadID,
		FontID:    fontID,
		OwnerID:   userID,
		Filename:  header.Filename,
		MimeType:  "application/json",
		SizeBytes: int64(len(data)),
	}); err != nil {
		slog.Error("record upload", "error", err)
		os.Remove(path)
		http.Error(w, "failed to record upload", http.StatusInternalServerError)
		return
	}

	resp := UploadResponse{
		ID:         uploadID,
		URL:        fmt.Sprintf("/files/%s.json", uploadID),
		FamilyName: doc.Font.FamilyName,
		GlyphCount: len(doc.Glyphs),
		Name:       header.Filename,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// Serve returns a handler for stored font files with caching headers.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/files/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Upload IDs are unique, so files are immutable
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

// Load reads an uploaded file back into a font backend.
func (h *Handler) Load(uploadID string, backend font.Backend) error {
	return backend.LoadFont(filepath.Join(h.dir, uploadID+".json"))
}

// Delete removes an uploaded file from disk.
func (h *Handler) Delete(uploadID string) error {
	path := filepath.Join(h.dir, uploadID+".json")
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("upload not found: %s", uploadID)
	}
	return nil
}
