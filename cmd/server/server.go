// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fankit/teamstudio/internal/api"
	"github.com/fankit/teamstudio/internal/api/documents"
	"github.com/fankit/teamstudio/internal/assets"
	"github.com/fankit/teamstudio/internal/config"
	"github.com/fankit/teamstudio/internal/store"
	"github.com/fankit/teamstudio/internal/web"
)

func newServer(cfg *config.Config, sessions *store.Store) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	resolver := assets.NewResolver(cfg.Assets.BaseURL)
	documents.InitHandlers(sessions, resolver)

	registerRoutes(router, resolver)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, resolver assets.Resolver) {
	// Editor shell
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if err := web.RenderIndex(w, resolver.Base); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render editor shell")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Document sessions
	mux.HandleFunc("POST /api/v1/documents", documents.HandleUpload)
	mux.HandleFunc("GET /api/v1/documents/{id}", documents.HandleGet)
	mux.HandleFunc("DELETE /api/v1/documents/{id}", documents.HandleDiscard)
	mux.HandleFunc("POST /api/v1/documents/{id}/edits", documents.HandleEdit)
	mux.HandleFunc("POST /api/v1/documents/{id}/teams/commit", documents.HandleCommitTeam)
	mux.HandleFunc("POST /api/v1/documents/{id}/export", documents.HandleExport)

	// Asset previews
	mux.HandleFunc("GET /api/v1/assets/resolve", documents.HandleResolveAsset)

	// Static file handling with logging and environment awareness
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "build/bin/static"
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
