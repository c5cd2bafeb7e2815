package main

import (
	"log"
	"os"

	"github.com/shoalhq/shoal/internal/api"
	"github.com/shoalhq/shoal/internal/assist"
	"github.com/shoalhq/shoal/internal/auth"
	"github.com/shoalhq/shoal/internal/config"
	"github.com/shoalhq/shoal/internal/report"
	"github.com/shoalhq/shoal/internal/species"
	"github.com/shoalhq/shoal/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger(os.Stdout, cfg.Level())

	logger.Info("shoal: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"species_path", cfg.SpeciesPath,
	)

	db, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	catalog, err := species.Load(cfg.SpeciesPath)
	if err != nil {
		log.Fatalf("failed to load species catalog: %v", err)
	}
	logger.Info("species catalog loaded", "count", catalog.Len())

	sessions := auth.NewSessions(cfg.SessionSecret)
	google := auth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectURL)
	if !google.Enabled() {
		logger.Warn("google sign-in is not configured; /auth/login will answer 503")
	}

	var provider assist.Provider = assist.Canned{}
	if cfg.GeminiAPIKey != "" {
		provider = assist.NewGemini(cfg.GeminiAPIKey, cfg.GeminiBaseURL)
	}
	assistant := assist.New(provider)
	logger.Info("assistant ready", "provider", assistant.ProviderName())

	srv := api.NewServer(cfg.ListenAddr, db, catalog, sessions, google, assistant, report.DefaultRegistry(), logger)

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
