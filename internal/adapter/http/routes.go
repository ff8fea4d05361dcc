package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"cv-portfolio/internal/domain"
)

type AppConfig struct {
	MediaRoot    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Quiet drops the access log.
	Quiet bool
}

// NewApp builds the fiber app with middleware and every route.
func NewApp(cfg AppConfig, h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cv-portfolio",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if !cfg.Quiet {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}

	app.Get("/", h.Home)
	app.Get("/datos-personales", h.PersonalData)
	app.Get("/experiencia", h.Section(domain.SectionExperience))
	app.Get("/cursos", h.Section(domain.SectionCourses))
	app.Get("/reconocimientos", h.Section(domain.SectionRecognitions))
	app.Get("/productos-academicos", h.Section(domain.SectionAcademic))
	app.Get("/productos-laborales", h.Section(domain.SectionWork))
	app.Get("/venta-garage", h.Garage)
	app.Get("/imprimir", h.Print)
	app.Get("/ver-certificado/:tipo/:id", h.Certificate)
	app.Get("/healthz", h.Health)
	app.Get("/readyz", h.Ready)

	if cfg.MediaRoot != "" {
		app.Static("/media", cfg.MediaRoot)
	}
	return app
}
