package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/glyphic/glyphic/backend-go/internal/auth"
	"github.com/glyphic/glyphic/backend-go/internal/collab"
	"github.com/glyphic/glyphic/backend-go/internal/config"
	"github.com/glyphic/glyphic/backend-go/internal/document"
	"github.com/glyphic/glyphic/backend-go/internal/fontfile"
	"github.com/glyphic/glyphic/backend-go/internal/fonts"
	mw "github.com/glyphic/glyphic/backend-go/internal/middleware"
	"github.com/glyphic/glyphic/backend-go/internal/store"
	"github.com/glyphic/glyphic/backend-go/internal/typeid"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		slog.Error("migrate schema", "error", err)
		os.Exit(1)
	}

	authService := auth.NewService(st, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	fontService := fonts.NewService(st)
	fontHandler := fonts.NewHandler(fontService)

	// Document loader for the collaboration hub
	docLoader := func(fontID string) (*document.FontDocument, error) {
		// Use a background context since this runs in the hub goroutine
		snap, err := st.GetLatestSnapshot(context.Background(), fontID)
		if err != nil {
			return nil, err
		}
		var doc document.FontDocument
		if err := json.Unmarshal(snap.Document, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}

	// Document saver for the collaboration hub
	docSaver := func(fontID string, doc *document.FontDocument) error {
		docJSON, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document: %w", err)
		}
		if _, err := st.CreateSnapshot(context.Background(), typeid.NewSnapshotID(), fontID, docJSON); err != nil {
			return fmt.Errorf("create snapshot: %w", err)
		}
		return nil
	}

	hub := collab.NewHub(docLoader, docSaver, time.Duration(cfg.AutosaveInterval)*time.Second)
	go hub.Run()

	fileHandler := fontfile.NewHandler(cfg.FontDir, st)

	origins := strings.Split(cfg.AllowedOrigins, ",")

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(origins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Stored font files (public, immutable)
	r.PathPrefix("/files/").Handler(fileHandler.Serve()).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/fonts", fontHandler.List).Methods("GET")
	api.HandleFunc("/fonts", fontHandler.Create).Methods("POST")
	api.HandleFunc("/fonts/{fontId}", fontHandler.Get).Methods("GET")
	api.HandleFunc("/fonts/{fontId}", fontHandler.Delete).Methods("DELETE")
	api.HandleFunc("/fonts/{fontId}/snapshots/latest", fontHandler.GetLatestSnapshot).Methods("GET")
	api.HandleFunc("/fonts/{fontId}/snapshots", fontHandler.SaveSnapshot).Methods("POST")
	api.HandleFunc("/fonts/{fontId}/files", fileHandler.Upload).Methods("POST", "OPTIONS")

	// WebSocket endpoint
	r.HandleFunc("/ws/font/{fontId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, fontService, origins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first to save all dirty documents
		slog.Info("saving all documents...")
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *collab.Hub, authSvc *auth.Service, fontSvc *fonts.Service, origins []string) {
	fontID := mux.Vars(r)["fontId"]

	// Auth via query param; browsers cannot set headers on websockets.
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	userID, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// Ownership check doubles as existence check.
	if _, err := fontSvc.Get(r.Context(), fontID, userID); err != nil {
		http.Error(w, "font not found", http.StatusForbidden)
		return
	}

	user, err := authSvc.GetUser(r.Context(), userID)
	if err != nil {
		http.Error(w, "user not found", http.StatusInternalServerError)
		return
	}

	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		patterns = append(patterns, strings.TrimPrefix(strings.TrimPrefix(o, "http://"), "https://"))
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: patterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := collab.NewClient(hub, conn, userID, user.DisplayName, fontID, clientID)

	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
