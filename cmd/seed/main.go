// Command seed imports a JSON profile document into the configured store.
//
//	seed profile.json
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cv-portfolio/internal/adapter/repository"
	"cv-portfolio/internal/app"
	"cv-portfolio/internal/config"
	"cv-portfolio/internal/model"
	"cv-portfolio/internal/storage"
	"cv-portfolio/internal/usecase"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <document.json>\n", os.Args[0])
		os.Exit(2)
	}
	if err := run(context.Background(), os.Args[1]); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read document: %w", err)
	}
	doc, err := model.ParseImport(raw)
	if err != nil {
		return err
	}

	db, err := app.OpenDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	store := repository.NewStore(db, storage.NewLocator(cfg.Media.Root, cfg.Media.BaseURL))
	sum, err := usecase.Import(ctx, store, doc, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("imported profile %d with %d entries and %d garage items\n", sum.ProfileID, sum.Entries, sum.GarageItems)
	return nil
}
