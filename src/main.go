package main

import (
	"net/http"
	"os"

	"launderette-finder/src/ads"
	"launderette-finder/src/analytics"
	"launderette-finder/src/config"
	"launderette-finder/src/db"
	"launderette-finder/src/handlers"
	"launderette-finder/src/token"
	"launderette-finder/src/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	if cfg.SigningKey == "" {
		logger.Error("SIGNING_KEY environment variable is not set")
		os.Exit(1)
	}
	if cfg.AdminPasswordHash == "" {
		logger.Error("ADMIN_PASSWORD_HASH environment variable is not set")
		os.Exit(1)
	}

	store, err := db.NewElasticStore(cfg.ElasticURL)
	if err != nil {
		logger.Error("Failed to connect to Elasticsearch: %v", err)
		os.Exit(1)
	}
	defer store.Client.Stop()

	if err := store.EnsureIndexes(cfg.TemplateDir); err != nil {
		logger.Error("Failed to prepare indexes: %v", err)
		os.Exit(1)
	}

	if cfg.SeedPath != "" {
		store.LoadSeed(cfg.SeedPath)
		logger.Info("Seed data loaded from %s", cfg.SeedPath)
	}

	tmpl, err := handlers.LoadTemplates(cfg.TemplateDir)
	if err != nil {
		logger.Error("Failed to load templates: %v", err)
		os.Exit(1)
	}

	auth := token.New(cfg.SigningKey, map[string]string{
		cfg.AdminUser: cfg.AdminPasswordHash,
	})

	reporter := analytics.NewReporter(cfg.AnalyticsURL, logger)
	defer reporter.Flush()

	var adProvider ads.Provider = ads.Noop{}
	if cfg.AdSenseClient != "" {
		adProvider = ads.AdSense{Client: cfg.AdSenseClient}
	}

	server := &handlers.Server{
		Store:       store,
		Log:         logger,
		Events:      reporter,
		Ads:         adProvider,
		Tmpl:        tmpl,
		PageSize:    cfg.PageSize,
		NearbyLimit: cfg.NearbyLimit,
	}

	logger.Info("Server started at %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, server.Routes(auth)); err != nil {
		logger.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
