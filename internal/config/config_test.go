package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("RENDER_ENGINE", "")
	t.Setenv("FETCH_PDF_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Render.Engine != EngineCanvas {
		t.Fatalf("expected canvas engine got %q", cfg.Render.Engine)
	}
	if cfg.UsesPostgres() {
		t.Fatalf("expected sqlite store without DATABASE_URL")
	}
	if cfg.Fetch.PDFTimeout != 25*time.Second || cfg.Fetch.ImageTimeout != 20*time.Second {
		t.Fatalf("unexpected fetch timeouts %v / %v", cfg.Fetch.ImageTimeout, cfg.Fetch.PDFTimeout)
	}
}

func TestFetchTimeoutsAreClamped(t *testing.T) {
	t.Setenv("FETCH_IMAGE_TIMEOUT", "2s")
	t.Setenv("FETCH_PDF_TIMEOUT", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Fetch.ImageTimeout != 15*time.Second {
		t.Fatalf("image timeout not clamped up: %v", cfg.Fetch.ImageTimeout)
	}
	if cfg.Fetch.PDFTimeout != 25*time.Second {
		t.Fatalf("pdf timeout not clamped down: %v", cfg.Fetch.PDFTimeout)
	}
}

func TestUnknownEngineRejected(t *testing.T) {
	t.Setenv("RENDER_ENGINE", "wkhtmltopdf")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}

func TestFontFamiliesAndLevel(t *testing.T) {
	t.Setenv("FONT_FAMILIES", " Roboto , ,DejaVuSans")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Render.FontFamilies) != 2 || cfg.Render.FontFamilies[0] != "Roboto" || cfg.Render.FontFamilies[1] != "DejaVuSans" {
		t.Fatalf("unexpected families %v", cfg.Render.FontFamilies)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("expected debug level got %v", cfg.LogLevel)
	}
}
