// Package app wires configuration into a running set of components.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	httpadapter "cv-portfolio/internal/adapter/http"
	"cv-portfolio/internal/adapter/repository"
	"cv-portfolio/internal/config"
	"cv-portfolio/internal/infrastructure/migration"
	"cv-portfolio/internal/storage"
	"cv-portfolio/internal/usecase"
	"cv-portfolio/pkg/document"
	infra "cv-portfolio/pkg/infrastructure"
)

// App holds the wired components. Close releases the database.
type App struct {
	DB        infra.DB
	Store     *repository.Store
	Exporter  *usecase.Exporter
	Portfolio *usecase.Portfolio
	Fiber     *fiber.App
}

// OpenDB connects to Postgres when a URL is configured, otherwise to the
// SQLite file, and runs migrations when enabled.
func OpenDB(ctx context.Context, cfg config.DatabaseConfig) (infra.DB, error) {
	var (
		db  infra.DB
		err error
	)
	if cfg.URL != "" {
		db, err = infra.NewPostgres(ctx, cfg.URL, cfg.MaxConns, cfg.ConnTimeout)
	} else {
		db, err = infra.NewSQLite(cfg.SQLitePath)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	slog.Info("database opened", "dialect", db.Dialect())

	if cfg.AutoMigrate {
		if err := migration.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}

// NewRenderer returns the configured document engine.
func NewRenderer(cfg config.RenderConfig) (document.Renderer, error) {
	if cfg.Engine == config.EngineChromedp {
		conv := infra.NewChromedpRenderer(cfg.ChromePath, cfg.Timeout, document.Assets())
		return document.NewHTMLRenderer(conv)
	}
	return document.NewCanvasRenderer(cfg.FontDir, cfg.FontFamilies), nil
}

// Build opens the store and wires the export pipeline and web surface.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := OpenDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	renderer, err := NewRenderer(cfg.Render)
	if err != nil {
		db.Close()
		return nil, err
	}

	loc := storage.NewLocator(cfg.Media.Root, cfg.Media.BaseURL)
	store := repository.NewStore(db, loc)
	fetcher := infra.NewFetcher(cfg.Media.Root, cfg.Fetch.ImageTimeout, cfg.Fetch.PDFTimeout)
	exporter := usecase.NewExporter(store, renderer, fetcher, document.NewMerger(), cfg.Fetch.Parallelism)
	portfolio := usecase.NewPortfolio(store)

	mediaRoot := cfg.Media.Root
	if loc.Remote() {
		mediaRoot = ""
	}
	h := httpadapter.NewHandler(portfolio, exporter, store.Ping)
	f := httpadapter.NewApp(httpadapter.AppConfig{
		MediaRoot:    mediaRoot,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, h)

	slog.Info("application wired",
		"engine", cfg.Render.Engine,
		"media_remote", loc.Remote(),
		"fetch_parallelism", cfg.Fetch.Parallelism)

	return &App{DB: db, Store: store, Exporter: exporter, Portfolio: portfolio, Fiber: f}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
