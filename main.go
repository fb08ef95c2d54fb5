package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aouyang1/mouseglass/api"
	"github.com/aouyang1/mouseglass/gallery"
	"github.com/aouyang1/mouseglass/session"
	"github.com/aouyang1/mouseglass/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	records, err := gallery.LoadCatalogRecords(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Initialize database
	database, err := store.NewDatabase(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.SeedImages(records); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	count, err := database.GetImageCount(gallery.CategoryAll)
	if err != nil {
		log.Fatalf("Failed to count images: %v", err)
	}
	slog.Info("loaded catalog", "images", count, "path", cfg.CatalogPath)

	webServer, err := api.NewWebServer(database, api.ServerOptions{
		BaseURL:    cfg.BaseURL,
		ImageDir:   cfg.ImageDir,
		S3Bucket:   cfg.S3Bucket,
		AWSProfile: cfg.AWSProfile,
		Sessions: session.Options{
			TTL:         cfg.SessionTTL,
			SubmitDelay: cfg.SubmitDelay,
			ResetDelay:  cfg.ResetDelay,
		},
	})
	if err != nil {
		log.Fatalf("Failed to initialize web server: %v", err)
	}
	defer webServer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := webServer.Start(ctx, cfg.Addr); err != nil {
		slog.Error("web server stopped", "error", err)
	}
}
